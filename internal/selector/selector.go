// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selector implements the unit-selection algorithm: greedy
// longest-match candidate enumeration, phonotactic scoring and one-step
// look-ahead (spec.md §4.4, C5).
package selector

import (
	"unicode"

	"github.com/brunoamaral/catavoz/internal/dbfmt"
	"github.com/brunoamaral/catavoz/internal/phon"
)

// maxCandidates caps the candidate list enumerated at one position.
const maxCandidates = 64

type candidate struct {
	byteLen   int
	charCount int
	unitIndex int
	score     int
}

// Select finds the best database unit starting at byte offset pos within
// buf, given whether pos is a word start (affects phonotactic scoring
// and the single-consonant rejection rule). It returns the winning span's
// byte length and unit index, or ok=false if no candidate matched.
//
// buf is the full normalised input buffer the driver is walking; the
// database never contains whitespace or punctuation in a unit's text, so
// a candidate span cannot accidentally cross a word boundary — any span
// that would simply fails the database lookup.
func Select(db *dbfmt.Database, buf string, pos int, atWordStart bool) (byteLen, unitIndex int, ok bool) {
	remaining := []rune(buf[pos:])
	if len(remaining) == 0 {
		return 0, 0, false
	}

	maxSpan := db.MaxUnitChars()
	if maxSpan > len(remaining) {
		maxSpan = len(remaining)
	}

	var candidates []candidate
	for span := maxSpan; span >= 1; span-- {
		spanRunes := remaining[:span]
		spanBytes := []byte(string(spanRunes))
		idx, found := db.Lookup(spanBytes)
		if !found {
			continue
		}
		var next rune
		if span < len(remaining) {
			next = remaining[span]
		}
		if phon.Rejected(spanRunes, atWordStart, next) {
			continue
		}
		candidates = append(candidates, candidate{
			byteLen:   len(spanBytes),
			charCount: span,
			unitIndex: idx,
			score:     phon.Score(spanRunes, atWordStart),
		})
		if len(candidates) >= maxCandidates {
			break
		}
	}

	if len(candidates) == 0 {
		return 0, 0, false
	}

	best := candidates[0]
	bestLookahead := lookahead(db, buf, pos+best.byteLen)
	for _, c := range candidates[1:] {
		la := lookahead(db, buf, pos+c.byteLen)
		if better(c, la, best, bestLookahead) {
			best, bestLookahead = c, la
		}
	}
	return best.byteLen, best.unitIndex, true
}

// better implements the winner-selection order of spec.md §4.4 step 4.
func better(c candidate, cLA int, winner candidate, winnerLA int) bool {
	if c.score != winner.score {
		return c.score > winner.score
	}
	cSum := c.charCount + cLA
	winnerSum := winner.charCount + winnerLA
	if cSum != winnerSum {
		return cSum > winnerSum
	}
	winnerEndsWord := winnerLA == 0
	cEndsWord := cLA == 0
	if winnerEndsWord && !cEndsWord {
		return false
	}
	if !winnerEndsWord && cEndsWord {
		return true
	}
	if winnerEndsWord && cEndsWord {
		return c.charCount > winner.charCount
	}
	return cLA > winnerLA
}

// lookahead advances past whitespace starting at byte offset pos in buf,
// then returns the char count of the longest database match at that
// position (phonotactic rules are not applied to the look-ahead match).
func lookahead(db *dbfmt.Database, buf string, pos int) int {
	runes := []rune(buf[pos:])
	i := 0
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	runes = runes[i:]
	if len(runes) == 0 {
		return 0
	}
	maxSpan := db.MaxUnitChars()
	if maxSpan > len(runes) {
		maxSpan = len(runes)
	}
	for span := maxSpan; span >= 1; span-- {
		spanBytes := []byte(string(runes[:span]))
		if _, found := db.Lookup(spanBytes); found {
			return span
		}
	}
	return 0
}
