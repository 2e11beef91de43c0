// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbfmt

import (
	"bytes"
	"os"

	"github.com/brunoamaral/catavoz/internal/cverr"
	"github.com/edsrzf/mmap-go"
)

// Database is a voice database mapped read-only for the lifetime of one
// engine instance. It is the sole owner of unit audio; every accessor
// below decodes into fresh slices rather than aliasing the mapped memory,
// since the mapping is never mutated and Go's safety model has no typed
// reinterpret-cast over a byte slice (spec.md §9, design note on mmap).
type Database struct {
	f    *os.File
	mm   mmap.MMap
	hdr  Header
	idx  []byte // raw index section, decoded on demand
	tbl  []byte // raw hash table section
	strs []byte // string pool
	pcm  []byte // audio pool
}

// Open memory-maps path read-only and validates the header. The mapping
// outlives Open; call Close when the engine tears down.
func Open(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cverr.Wrap(cverr.FileNotFound, "open database", err)
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, cverr.Wrap(cverr.FileRead, "mmap database", err)
	}
	if len(mm) < HeaderSize {
		mm.Unmap()
		f.Close()
		return nil, cverr.New(cverr.InvalidFormat, "file too small for header")
	}
	hdr := decodeHeader(mm[:HeaderSize])
	if hdr.Magic != Magic {
		mm.Unmap()
		f.Close()
		return nil, cverr.New(cverr.InvalidFormat, "bad magic")
	}
	if hdr.Version != Version {
		mm.Unmap()
		f.Close()
		return nil, cverr.New(cverr.VersionMismatch, "unsupported version")
	}

	idxEnd := hdr.IndexOffset + hdr.UnitCount*IndexEntrySize
	tblEnd := hdr.HashTableOffset + hdr.HashTableSize*4
	if uint32(len(mm)) < idxEnd || uint32(len(mm)) < tblEnd || uint32(len(mm)) < hdr.AudioOffset {
		mm.Unmap()
		f.Close()
		return nil, cverr.New(cverr.InvalidFormat, "section bounds exceed file size")
	}

	db := &Database{
		f:    f,
		mm:   mm,
		hdr:  hdr,
		idx:  mm[hdr.IndexOffset:idxEnd],
		tbl:  mm[hdr.HashTableOffset:tblEnd],
		strs: mm[hdr.StringsOffset:hdr.AudioOffset],
		pcm:  mm[hdr.AudioOffset:],
	}
	return db, nil
}

// Close releases the mapping and closes the underlying file.
func (db *Database) Close() error {
	if err := db.mm.Unmap(); err != nil {
		db.f.Close()
		return cverr.Wrap(cverr.FileRead, "munmap database", err)
	}
	return db.f.Close()
}

// UnitCount returns the number of units in the database.
func (db *Database) UnitCount() int { return int(db.hdr.UnitCount) }

// MaxUnitChars returns the largest char_count of any unit — the selector's
// look-ahead span ceiling.
func (db *Database) MaxUnitChars() int { return int(db.hdr.MaxUnitChars) }

func (db *Database) entry(i int) IndexEntry {
	off := i * IndexEntrySize
	return decodeIndexEntry(db.idx[off : off+IndexEntrySize])
}

// Unit decodes and returns the i'th unit (0 <= i < UnitCount).
func (db *Database) Unit(i int) Unit {
	e := db.entry(i)
	text := string(db.strs[e.StringOffset : e.StringOffset+uint32(e.StringLen)])
	samples := decodeInt16LE(db.pcm, int(e.AudioOffset)*2, int(e.SampleCount))
	return Unit{Text: text, Hash: e.Hash, CharCount: int(e.CharCount), Samples: samples}
}

// Lookup hashes text and walks its bucket's chain, comparing hash, byte
// length, then bytes, returning the matching unit's index. Lookup never
// errors: a miss is reported via the second return, not via error — a
// failed lookup is not a failure mode of the codec (spec.md §7).
func (db *Database) Lookup(text []byte) (int, bool) {
	if db.hdr.HashTableSize == 0 {
		return 0, false
	}
	h := FNV1a(text)
	slot := h % db.hdr.HashTableSize
	cur := readUint32(db.tbl, int(slot)*4)
	for cur != NoChain {
		e := db.entry(int(cur))
		if e.Hash == h && int(e.StringLen) == len(text) {
			cand := db.strs[e.StringOffset : e.StringOffset+uint32(e.StringLen)]
			if bytes.Equal(cand, text) {
				return int(cur), true
			}
		}
		cur = e.NextHash
	}
	return 0, false
}

func readUint32(b []byte, off int) uint32 {
	return uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
}
