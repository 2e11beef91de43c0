// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbfmt

import "encoding/binary"

// Magic identifies a catavoz voice database file (stored little-endian,
// so the first four bytes on disk read "CTTS").
const Magic uint32 = 0x53545443

// Version is the only on-disk format version this codec understands.
const Version uint32 = 1

// SampleRate is the fixed sample rate of every unit recording.
const SampleRate uint32 = 22050

// BitsPerSample is the fixed bit depth of every unit recording.
const BitsPerSample uint32 = 16

// HeaderSize is the fixed byte size of the on-disk header (spec.md §6).
const HeaderSize = 64

// Header is the first section of the on-disk voice database. All offsets
// are byte offsets from the start of the file, except the per-entry audio
// offsets in the index, which are in samples (see IndexEntry).
type Header struct {
	Magic           uint32
	Version         uint32
	UnitCount       uint32
	SampleRate      uint32
	BitsPerSample   uint32
	IndexOffset     uint32
	StringsOffset   uint32
	AudioOffset     uint32
	TotalSamples    uint32
	MaxUnitChars    uint32
	HashTableSize   uint32
	HashTableOffset uint32
}

// encode writes h into a HeaderSize-byte buffer, little-endian, with the
// trailing 16 reserved bytes left zero.
func (h Header) encode() []byte {
	b := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(b[0:4], h.Magic)
	binary.LittleEndian.PutUint32(b[4:8], h.Version)
	binary.LittleEndian.PutUint32(b[8:12], h.UnitCount)
	binary.LittleEndian.PutUint32(b[12:16], h.SampleRate)
	binary.LittleEndian.PutUint32(b[16:20], h.BitsPerSample)
	binary.LittleEndian.PutUint32(b[20:24], h.IndexOffset)
	binary.LittleEndian.PutUint32(b[24:28], h.StringsOffset)
	binary.LittleEndian.PutUint32(b[28:32], h.AudioOffset)
	binary.LittleEndian.PutUint32(b[32:36], h.TotalSamples)
	binary.LittleEndian.PutUint32(b[36:40], h.MaxUnitChars)
	binary.LittleEndian.PutUint32(b[40:44], h.HashTableSize)
	binary.LittleEndian.PutUint32(b[44:48], h.HashTableOffset)
	// b[48:64] stays zero: 16 reserved bytes.
	return b
}

// decodeHeader reads a Header from the first HeaderSize bytes of b.
func decodeHeader(b []byte) Header {
	return Header{
		Magic:           binary.LittleEndian.Uint32(b[0:4]),
		Version:         binary.LittleEndian.Uint32(b[4:8]),
		UnitCount:       binary.LittleEndian.Uint32(b[8:12]),
		SampleRate:      binary.LittleEndian.Uint32(b[12:16]),
		BitsPerSample:   binary.LittleEndian.Uint32(b[16:20]),
		IndexOffset:     binary.LittleEndian.Uint32(b[20:24]),
		StringsOffset:   binary.LittleEndian.Uint32(b[24:28]),
		AudioOffset:     binary.LittleEndian.Uint32(b[28:32]),
		TotalSamples:    binary.LittleEndian.Uint32(b[32:36]),
		MaxUnitChars:    binary.LittleEndian.Uint32(b[36:40]),
		HashTableSize:   binary.LittleEndian.Uint32(b[40:44]),
		HashTableOffset: binary.LittleEndian.Uint32(b[44:48]),
	}
}
