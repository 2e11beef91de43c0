// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbfmt

import (
	"encoding/binary"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/brunoamaral/catavoz/internal/cverr"
)

// minLoadFactor is the load factor the hash table must stay under; the
// table size is the next power of two >= unit_count / minLoadFactor.
const minLoadFactor = 0.7

// Write packs units into a voice database file at path, following the
// layout of spec.md §3 and §6: header, index (sorted by char count
// descending, ties broken lexicographically by text), hash table with
// chaining, null-terminated string pool, then the raw audio pool.
//
// The caller's units slice is not required to be pre-sorted or
// deduplicated; Write establishes the on-disk invariants itself so a
// single merged, owning slice of build units (see internal/dbbuild) is
// the only input this needs.
func Write(path string, units []BuildUnit) error {
	sorted := make([]BuildUnit, len(units))
	copy(sorted, units)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci := utf8.RuneCountInString(sorted[i].Text)
		cj := utf8.RuneCountInString(sorted[j].Text)
		if ci != cj {
			return ci > cj
		}
		return sorted[i].Text < sorted[j].Text
	})

	n := uint32(len(sorted))
	tableSize := nextPow2(uint32(float64(n)/minLoadFactor) + 1)
	if tableSize == 0 {
		tableSize = 1
	}

	entries := make([]IndexEntry, n)
	table := make([]uint32, tableSize)
	for i := range table {
		table[i] = NoChain
	}

	var stringPool []byte
	var audioPool []byte
	var audioOffsetSamples uint32
	var maxChars uint32

	for i, u := range sorted {
		h := FNV1a([]byte(u.Text))
		cc := utf8.RuneCountInString(u.Text)
		if uint32(cc) > maxChars {
			maxChars = uint32(cc)
		}
		e := IndexEntry{
			Hash:         h,
			StringOffset: uint32(len(stringPool)),
			StringLen:    uint16(len(u.Text)),
			CharCount:    uint16(cc),
			AudioOffset:  audioOffsetSamples,
			SampleCount:  uint32(len(u.Samples)),
			NextHash:     NoChain,
		}
		entries[i] = e
		stringPool = append(stringPool, []byte(u.Text)...)
		stringPool = append(stringPool, 0)
		audioPool = encodeInt16LE(audioPool, u.Samples)
		audioOffsetSamples += uint32(len(u.Samples))

		slot := h % tableSize
		if table[slot] == NoChain {
			table[slot] = uint32(i)
			continue
		}
		cur := table[slot]
		for entries[cur].NextHash != NoChain {
			cur = entries[cur].NextHash
		}
		entries[cur].NextHash = uint32(i)
	}

	indexOffset := uint32(HeaderSize)
	hashTableOffset := indexOffset + n*IndexEntrySize
	stringsOffset := hashTableOffset + tableSize*4
	audioSectionOffset := stringsOffset + uint32(len(stringPool))

	h := Header{
		Magic:           Magic,
		Version:         Version,
		UnitCount:       n,
		SampleRate:      SampleRate,
		BitsPerSample:   BitsPerSample,
		IndexOffset:     indexOffset,
		StringsOffset:   stringsOffset,
		AudioOffset:     audioSectionOffset,
		TotalSamples:    audioOffsetSamples,
		MaxUnitChars:    maxChars,
		HashTableSize:   tableSize,
		HashTableOffset: hashTableOffset,
	}

	f, err := os.Create(path)
	if err != nil {
		return cverr.Wrap(cverr.FileWrite, "create database file", err)
	}
	defer f.Close()

	if _, err := f.Write(h.encode()); err != nil {
		return cverr.Wrap(cverr.FileWrite, "write header", err)
	}
	for _, e := range entries {
		if _, err := f.Write(e.encode()); err != nil {
			return cverr.Wrap(cverr.FileWrite, "write index entry", err)
		}
	}
	tableBytes := make([]byte, tableSize*4)
	for i, v := range table {
		binary.LittleEndian.PutUint32(tableBytes[i*4:i*4+4], v)
	}
	if _, err := f.Write(tableBytes); err != nil {
		return cverr.Wrap(cverr.FileWrite, "write hash table", err)
	}
	if _, err := f.Write(stringPool); err != nil {
		return cverr.Wrap(cverr.FileWrite, "write string pool", err)
	}
	if _, err := f.Write(audioPool); err != nil {
		return cverr.Wrap(cverr.FileWrite, "write audio pool", err)
	}
	return nil
}
