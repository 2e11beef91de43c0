// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package concat

import (
	"strings"

	"github.com/brunoamaral/catavoz/internal/phon"
)

// Class is the coarse phoneme category used to pick a crossfade length.
type Class int

const (
	Vowel Class = iota
	Plosive
	Fricative
	Nasal
	Liquid
	Other
)

var plosives = map[rune]bool{'p': true, 't': true, 'k': true, 'b': true, 'd': true, 'g': true}
var fricatives = map[rune]bool{'f': true, 'v': true, 's': true, 'z': true, 'x': true, 'j': true}
var nasals = map[rune]bool{'m': true, 'n': true}
var liquids = map[rune]bool{'l': true, 'r': true}

func classifyRune(r rune) Class {
	lr := toLower(r)
	switch {
	case phon.IsVowel(r):
		return Vowel
	case plosives[lr]:
		return Plosive
	case fricatives[lr]:
		return Fricative
	case nasals[lr]:
		return Nasal
	case liquids[lr]:
		return Liquid
	default:
		return Other
	}
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// ClassifyStart returns the phoneme class of a unit's first code point.
func ClassifyStart(text string) Class {
	r := []rune(text)
	if len(r) == 0 {
		return Other
	}
	return classifyRune(r[0])
}

// ClassifyEnd returns the phoneme class of a unit's last code point,
// with the terminal two-letter tails ch/nh/lh (recognised by
// lowercasing) overriding to fricative/nasal/liquid respectively.
func ClassifyEnd(text string) Class {
	r := []rune(text)
	if len(r) == 0 {
		return Other
	}
	if len(r) >= 2 {
		tail := strings.ToLower(string(r[len(r)-2:]))
		switch tail {
		case "ch":
			return Fricative
		case "nh":
			return Nasal
		case "lh":
			return Liquid
		}
	}
	return classifyRune(r[len(r)-1])
}
