// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prosody implements the word-counting, declination and
// question-rise overlay of spec.md §4.9 (C8).
package prosody

import (
	"math"
	"unicode"

	"github.com/brunoamaral/catavoz/internal/sig"
)

// Context is the prosodic snapshot of one input string, computed before
// synthesis starts.
type Context struct {
	WordCount     int
	IsQuestion    bool
	IsExclamation bool
}

// Analyze scans raw input text, counting words (maximal runs of
// non-whitespace) and inspecting the trailing non-whitespace character.
func Analyze(text string) Context {
	var ctx Context
	inWord := false
	var lastNonSpace rune
	for _, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			ctx.WordCount++
			inWord = true
		}
		lastNonSpace = r
	}
	switch lastNonSpace {
	case '?':
		ctx.IsQuestion = true
	case '!':
		ctx.IsExclamation = true
	}
	return ctx
}

// Overlay applies declination and (if applicable) question rise to one
// completed word's samples, in place. wordIndex is 0-based.
func Overlay(samples []int16, wordIndex int, ctx Context) {
	applyDeclination(samples, wordIndex, ctx.WordCount)
	if ctx.IsQuestion {
		applyQuestionRise(samples, wordIndex, ctx.WordCount)
	}
}

func applyDeclination(samples []int16, wordIndex, wordCount int) {
	denom := wordCount - 1
	if denom < 1 {
		denom = 1
	}
	progress := float64(wordIndex) / float64(denom)
	gain := 1 - 0.05*progress
	sig.ApplyGain(samples, gain)
}

func applyQuestionRise(samples []int16, wordIndex, wordCount int) {
	if wordCount < 1 {
		return
	}
	// Only the last two words get a rise.
	if wordIndex < wordCount-2 {
		return
	}
	delta := 0.08
	if wordIndex == wordCount-1 {
		delta = 0.15
	}
	n := len(samples)
	if n == 0 {
		return
	}
	for i, s := range samples {
		t := float64(i) / float64(n)
		gain := 1 + delta*t*t
		samples[i] = sig.Clip(int(math.Round(float64(s) * gain)))
	}
}
