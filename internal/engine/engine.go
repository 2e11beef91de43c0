// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine implements the synthesis driver (C11): one call per
// input string, dispatching across the preprocessing, selection,
// concatenation and stretch stages (spec.md §4.10).
package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/brunoamaral/catavoz/internal/concat"
	"github.com/brunoamaral/catavoz/internal/config"
	"github.com/brunoamaral/catavoz/internal/dbfmt"
	"github.com/brunoamaral/catavoz/internal/logx"
	"github.com/brunoamaral/catavoz/internal/prosody"
	"github.com/brunoamaral/catavoz/internal/rewrite"
	"github.com/brunoamaral/catavoz/internal/selector"
	"github.com/brunoamaral/catavoz/internal/stretch"
)

var log = logx.New("engine")

// punctuationMarks are handled by the driver, not the selector
// (spec.md §4.4's "Separators handled by the driver").
const punctuationMarks = ",;:.!?"

// ignorable characters are consumed without any effect on the output or
// on word-boundary state.
const ignorable = "()[]\"'`"

// Engine owns one mapped voice database, its configuration, a hold on
// the process-wide rewrite ruleset, and per-call synthesis counters
// (spec.md §3's Engine instance). Concurrent synthesis on one instance
// is not supported (spec.md §5).
type Engine struct {
	db     *dbfmt.Database
	cfg    config.Config
	shared *rewrite.Shared

	UnitsFound   int
	UnitsMissing int
}

// New opens the voice database at path with the default configuration.
func New(path string) (*Engine, error) {
	db, err := dbfmt.Open(path)
	if err != nil {
		return nil, err
	}
	return &Engine{db: db, cfg: config.Default()}, nil
}

// LoadConfig overlays path's key/value settings onto the engine's
// configuration. A missing path is not an error.
func (e *Engine) LoadConfig(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// DefaultSpeed returns the engine's configured default_speed, for
// callers that let the caller omit an explicit speed (spec.md §4.10:
// "speed defaults to default_speed from config when omitted").
func (e *Engine) DefaultSpeed() float64 { return e.cfg.DefaultSpeed }

// Close releases the engine's hold on the shared rewrite ruleset (if
// acquired) and unmaps the voice database.
func (e *Engine) Close() error {
	if e.shared != nil {
		e.shared.Release()
		e.shared = nil
	}
	return e.db.Close()
}

// Synthesize renders text at the given speed (clamped to
// [min_speed, max_speed]), returning the owned mono 16-bit PCM buffer.
// units_found/units_missing are left on the engine for the caller to
// inspect.
func (e *Engine) Synthesize(text string, speed float64) ([]int16, error) {
	if e.shared == nil {
		shared, err := rewrite.Acquire(e.cfg.RewriteRulesPath)
		if err != nil {
			return nil, err
		}
		e.shared = shared
	}

	speed = clamp(speed, e.cfg.MinSpeed, e.cfg.MaxSpeed)
	ctx := prosody.Analyze(text)
	processed := rewrite.Process(e.shared, text)

	e.UnitsFound = 0
	e.UnitsMissing = 0

	params := concat.Params{
		SampleRate:          int(dbfmt.SampleRate),
		CrossfadeMs:         e.cfg.CrossfadeMs,
		CrossfadeVowelMs:    e.cfg.CrossfadeVowelMs,
		CrossfadeSEndingMs:  e.cfg.CrossfadeSEndingMs,
		CrossfadeREndingMs:  e.cfg.CrossfadeREndingMs,
		VowelToConsonantFac: e.cfg.VowelToConsonantFac,
		WordPauseMs:         e.cfg.WordPauseMs,
		FadeInMs:            e.cfg.FadeInMs,
		FadeOutMs:           e.cfg.FadeOutMs,
		RemoveWordSilence:   e.cfg.RemoveWordSilence,
		SilenceThreshold:    e.cfg.SilenceThreshold,
		MinSilenceMs:        e.cfg.MinSilenceMs,
		RemoveDCOffset:      e.cfg.RemoveDCOffset,
	}
	cc := concat.New(params, ctx)

	atWordStart := true
	pos := 0
	for pos < len(processed) {
		r, size := utf8.DecodeRuneInString(processed[pos:])

		switch {
		case isSpace(r):
			cc.WordBoundary()
			atWordStart = true
			pos += size
			continue
		case strings.ContainsRune(punctuationMarks, r):
			cc.Punctuation(r)
			atWordStart = true
			pos += size
			continue
		case r == '-':
			// Pure separator: consumed without silence or boundary reset.
			pos += size
			continue
		case strings.ContainsRune(ignorable, r):
			pos += size
			continue
		}

		byteLen, idx, ok := selector.Select(e.db, processed, pos, atWordStart)
		if ok {
			unit := e.db.Unit(idx)
			cc.AppendUnit(unit.Text, unit.Samples)
			e.UnitsFound++
			pos += byteLen
			atWordStart = false
			continue
		}

		cc.AppendUnknownSilence(e.cfg.UnknownSilenceMs)
		e.UnitsMissing++
		pos += size
		atWordStart = false
	}

	samples := cc.Finalize()

	if speed != 1.0 {
		samples = stretch.Stretch(samples, int(dbfmt.SampleRate), speed, e.cfg.MinSpeed, e.cfg.MaxSpeed)
	}

	if e.cfg.PrintUnits || e.cfg.PrintTiming {
		log.Info("synthesis complete", "units_found", e.UnitsFound, "units_missing", e.UnitsMissing, "samples", len(samples))
	}

	return samples, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
