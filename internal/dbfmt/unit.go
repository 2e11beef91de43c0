// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbfmt

import "encoding/binary"

// Unit is an immutable record of one spoken fragment: its canonical,
// lowercased text and the PCM recording that produces it. Text and
// Samples are decoded into fresh memory at read time and alias nothing in
// the mapping, so a Unit stays valid after its Database is closed.
type Unit struct {
	Text      string
	Hash      uint32
	CharCount int
	Samples   []int16
}

// BuildUnit is the input shape the database builder consumes: a unit's
// canonical text paired with its mono PCM recording, before being sorted,
// hashed, and packed into a Database file.
type BuildUnit struct {
	Text    string
	Samples []int16
}

// decodeInt16LE reads n little-endian int16 samples starting at byte
// offset off within b.
func decodeInt16LE(b []byte, off, n int) []int16 {
	out := make([]int16, n)
	for i := 0; i < n; i++ {
		out[i] = int16(binary.LittleEndian.Uint16(b[off+2*i : off+2*i+2]))
	}
	return out
}

// encodeInt16LE appends samples to dst as little-endian int16 values.
func encodeInt16LE(dst []byte, samples []int16) []byte {
	for _, s := range samples {
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(s))
		dst = append(dst, buf[:]...)
	}
	return dst
}
