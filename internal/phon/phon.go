// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package phon implements the Brazilian Portuguese phonotactic oracle:
// letter classification and candidate-span scoring used by the unit
// selector (spec.md §4.3).
package phon

import "strings"

var vowels = map[rune]bool{
	'a': true, 'e': true, 'i': true, 'o': true, 'u': true,
	'á': true, 'à': true, 'â': true, 'ã': true,
	'é': true, 'ê': true,
	'í': true,
	'ó': true, 'ô': true, 'õ': true,
	'ú': true, 'ü': true,
	'A': true, 'E': true, 'I': true, 'O': true, 'U': true,
	'Á': true, 'À': true, 'Â': true, 'Ã': true,
	'É': true, 'Ê': true,
	'Í': true,
	'Ó': true, 'Ô': true, 'Õ': true,
	'Ú': true, 'Ü': true,
}

// IsVowel reports whether r is one of the Portuguese vowels, including
// the accented forms.
func IsVowel(r rune) bool { return vowels[r] }

// IsLetter reports whether r is a letter for phonotactic purposes: any
// vowel, any ASCII consonant, or "ç"/"Ç".
func IsLetter(r rune) bool {
	if IsVowel(r) {
		return true
	}
	if r >= 'a' && r <= 'z' {
		return true
	}
	if r >= 'A' && r <= 'Z' {
		return true
	}
	return r == 'ç' || r == 'Ç'
}

// IsConsonant reports whether r is a letter and not a vowel.
func IsConsonant(r rune) bool { return IsLetter(r) && !IsVowel(r) }

var digraphs = map[string]bool{
	"ch": true, "lh": true, "nh": true, "qu": true, "gu": true,
}

// IsDigraph reports whether the first two ASCII-lowercased letters of s
// form one of the Portuguese digraphs ch, lh, nh, qu, gu.
func IsDigraph(s string) bool {
	r := []rune(s)
	if len(r) < 2 {
		return false
	}
	pair := strings.ToLower(string(r[0:2]))
	return digraphs[pair]
}

var onsetFirst = map[rune]bool{'p': true, 'b': true, 't': true, 'd': true, 'c': true, 'g': true, 'f': true, 'v': true}
var onsetFirstL = map[rune]bool{'p': true, 'b': true, 'c': true, 'g': true, 'f': true}

// IsOnsetCluster reports whether the first two ASCII-lowercased letters
// of s form a valid obstruent+liquid onset cluster: {p,b,t,d,c,g,f,v}+r,
// or {p,b,c,g,f}+l.
func IsOnsetCluster(s string) bool {
	r := []rune(s)
	if len(r) < 2 {
		return false
	}
	first := toLowerASCII(r[0])
	second := toLowerASCII(r[1])
	if second == 'r' && onsetFirst[first] {
		return true
	}
	if second == 'l' && onsetFirstL[first] {
		return true
	}
	return false
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// Rejected reports whether a single-character span must be rejected: a
// lone consonant at word start, or a consonant immediately followed by a
// letter with which it forms a digraph (spec.md §4.3's rejection rule).
// next is the rune immediately following the span in the source text, or
// 0 if the span ends the buffer.
func Rejected(span []rune, atWordStart bool, next rune) bool {
	if len(span) != 1 {
		return false
	}
	c := span[0]
	if !IsConsonant(c) {
		return false
	}
	if atWordStart {
		return true
	}
	if next != 0 && IsDigraph(string([]rune{c, next})) {
		return true
	}
	return false
}

// Score computes the syllable score for a candidate span, given as its
// code points, per spec.md §4.3.
func Score(span []rune, atWordStart bool) int {
	charCount := len(span)
	if charCount == 0 {
		return -1000
	}
	score := 10 * charCount
	text := string(span)
	if IsDigraph(text) {
		score += 20
	}
	if IsOnsetCluster(text) {
		score += 15
	}
	if atWordStart && IsConsonant(span[0]) {
		if charCount == 1 {
			score -= 100
		} else if IsVowel(span[1]) {
			score += 25
		}
	}
	if IsVowel(span[charCount-1]) {
		score += 10
	}
	return score
}
