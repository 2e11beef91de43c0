// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbfmt

import "encoding/binary"

// IndexEntrySize is the fixed byte size of one on-disk index entry.
const IndexEntrySize = 32

// NoChain is the sentinel value terminating a hash bucket's chain.
const NoChain uint32 = 0xFFFFFFFF

// IndexEntry describes one unit: its text (via the string pool), its
// audio (via the audio pool, offset in samples), and its position in the
// hash chain it belongs to.
type IndexEntry struct {
	Hash         uint32
	StringOffset uint32
	StringLen    uint16
	CharCount    uint16
	AudioOffset  uint32 // in samples, not bytes
	SampleCount  uint32
	Flags        uint32
	NextHash     uint32
}

func (e IndexEntry) encode() []byte {
	b := make([]byte, IndexEntrySize)
	binary.LittleEndian.PutUint32(b[0:4], e.Hash)
	binary.LittleEndian.PutUint32(b[4:8], e.StringOffset)
	binary.LittleEndian.PutUint16(b[8:10], e.StringLen)
	binary.LittleEndian.PutUint16(b[10:12], e.CharCount)
	binary.LittleEndian.PutUint32(b[12:16], e.AudioOffset)
	binary.LittleEndian.PutUint32(b[16:20], e.SampleCount)
	binary.LittleEndian.PutUint32(b[20:24], e.Flags)
	binary.LittleEndian.PutUint32(b[24:28], e.NextHash)
	// b[28:32] stays zero: reserved.
	return b
}

func decodeIndexEntry(b []byte) IndexEntry {
	return IndexEntry{
		Hash:         binary.LittleEndian.Uint32(b[0:4]),
		StringOffset: binary.LittleEndian.Uint32(b[4:8]),
		StringLen:    binary.LittleEndian.Uint16(b[8:10]),
		CharCount:    binary.LittleEndian.Uint16(b[10:12]),
		AudioOffset:  binary.LittleEndian.Uint32(b[12:16]),
		SampleCount:  binary.LittleEndian.Uint32(b[16:20]),
		Flags:        binary.LittleEndian.Uint32(b[20:24]),
		NextHash:     binary.LittleEndian.Uint32(b[24:28]),
	}
}
