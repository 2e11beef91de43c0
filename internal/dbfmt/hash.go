// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbfmt

import "hash/fnv"

// FNV1a returns the 32-bit FNV-1a hash of data (offset basis 2166136261,
// prime 16777619), computed with the standard library's implementation —
// it is already the canonical byte-oriented FNV-1a and there is no
// third-party replacement worth taking on for it.
func FNV1a(data []byte) uint32 {
	h := fnv.New32a()
	h.Write(data) //nolint:errcheck // hash.Hash32.Write never fails
	return h.Sum32()
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	p := uint32(1)
	for p < n {
		p <<= 1
	}
	return p
}
