// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the engine's key/value configuration file
// (spec.md §3's Configuration, §6's "Line-oriented key: value").
package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/brunoamaral/catavoz/internal/cverr"
	"github.com/brunoamaral/catavoz/internal/logx"
)

var log = logx.New("config")

// Config holds every recognised option, with spec.md §3's defaults.
type Config struct {
	CrossfadeMs         float64
	CrossfadeVowelMs    float64
	CrossfadeSEndingMs  float64
	CrossfadeREndingMs  float64
	VowelToConsonantFac float64
	WordPauseMs         float64
	UnknownSilenceMs    float64
	FadeInMs            float64
	FadeOutMs           float64
	RemoveWordSilence   bool
	SilenceThreshold    float64
	MinSilenceMs        float64
	RemoveDCOffset      bool
	DefaultSpeed        float64
	MinSpeed            float64
	MaxSpeed            float64
	PrintUnits          bool
	PrintTiming         bool

	RewriteRulesPath string
}

// Default returns the configuration with every option at its
// spec-mandated default.
func Default() Config {
	return Config{
		CrossfadeMs:         20,
		CrossfadeVowelMs:    45,
		CrossfadeSEndingMs:  30,
		CrossfadeREndingMs:  30,
		VowelToConsonantFac: 0.5,
		WordPauseMs:         120,
		UnknownSilenceMs:    30,
		FadeInMs:            3,
		FadeOutMs:           3,
		RemoveWordSilence:   true,
		SilenceThreshold:    0.02,
		MinSilenceMs:        15,
		RemoveDCOffset:      true,
		DefaultSpeed:        1.0,
		MinSpeed:            0.5,
		MaxSpeed:            2.0,
		PrintUnits:          false,
		PrintTiming:         false,
	}
}

// keySetters maps a config file key to the function that applies its
// (trimmed) string value onto c.
var keySetters = map[string]func(c *Config, v string){
	"crossfade_ms":              func(c *Config, v string) { c.CrossfadeMs = mustFloat(v, c.CrossfadeMs) },
	"crossfade_vowel_ms":        func(c *Config, v string) { c.CrossfadeVowelMs = mustFloat(v, c.CrossfadeVowelMs) },
	"crossfade_s_ending_ms":     func(c *Config, v string) { c.CrossfadeSEndingMs = mustFloat(v, c.CrossfadeSEndingMs) },
	"crossfade_r_ending_ms":     func(c *Config, v string) { c.CrossfadeREndingMs = mustFloat(v, c.CrossfadeREndingMs) },
	"vowel_to_consonant_factor": func(c *Config, v string) { c.VowelToConsonantFac = mustFloat(v, c.VowelToConsonantFac) },
	"word_pause_ms":             func(c *Config, v string) { c.WordPauseMs = mustFloat(v, c.WordPauseMs) },
	"unknown_silence_ms":        func(c *Config, v string) { c.UnknownSilenceMs = mustFloat(v, c.UnknownSilenceMs) },
	"fade_in_ms":                func(c *Config, v string) { c.FadeInMs = mustFloat(v, c.FadeInMs) },
	"fade_out_ms":               func(c *Config, v string) { c.FadeOutMs = mustFloat(v, c.FadeOutMs) },
	"remove_word_silence":       func(c *Config, v string) { c.RemoveWordSilence = mustBool(v, c.RemoveWordSilence) },
	"silence_threshold":         func(c *Config, v string) { c.SilenceThreshold = mustFloat(v, c.SilenceThreshold) },
	"min_silence_ms":            func(c *Config, v string) { c.MinSilenceMs = mustFloat(v, c.MinSilenceMs) },
	"remove_dc_offset":          func(c *Config, v string) { c.RemoveDCOffset = mustBool(v, c.RemoveDCOffset) },
	"default_speed":             func(c *Config, v string) { c.DefaultSpeed = mustFloat(v, c.DefaultSpeed) },
	"min_speed":                 func(c *Config, v string) { c.MinSpeed = mustFloat(v, c.MinSpeed) },
	"max_speed":                 func(c *Config, v string) { c.MaxSpeed = mustFloat(v, c.MaxSpeed) },
	"print_units":               func(c *Config, v string) { c.PrintUnits = mustBool(v, c.PrintUnits) },
	"print_timing":              func(c *Config, v string) { c.PrintTiming = mustBool(v, c.PrintTiming) },
	"rewrite_rules":             func(c *Config, v string) { c.RewriteRulesPath = v },
}

// Load starts from Default and overlays path's `key: value` lines onto it.
// A missing file is not an error (spec.md §7); unknown keys are ignored,
// per §6 ("Sections are decorative; keys are matched globally").
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, cverr.Wrap(cverr.FileRead, "open config", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, ":")
		if i < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:i]))
		val := strings.TrimSpace(line[i+1:])
		setter, ok := keySetters[key]
		if !ok {
			log.Debug("ignoring unrecognised config key", "key", key)
			continue
		}
		setter(&c, val)
	}
	if err := scanner.Err(); err != nil {
		return c, cverr.Wrap(cverr.FileRead, "read config", err)
	}
	return c, nil
}

func mustFloat(v string, fallback float64) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustBool(v string, fallback bool) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
