// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lower implements the Unicode-aware lowercaser used as the
// final text-preprocessing step (spec.md §4.2): ASCII A-Z plus a fixed
// set of Portuguese accented letters.
package lower

import "strings"

var accented = map[rune]rune{
	'É': 'é', 'Ó': 'ó', 'Ô': 'ô', 'Ç': 'ç',
}

// String lowercases s: ASCII letters A-Z, plus the
// explicit Portuguese accented set (other accented vowels are assumed
// already lowercase in typical input, per spec.md §4.2).
func String(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if lr, ok := accented[r]; ok {
			b.WriteRune(lr)
			continue
		}
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
