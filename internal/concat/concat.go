// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package concat implements the boundary-aware concatenation stage:
// phoneme-adaptive crossfade, boundary energy matching, pitch smoothing,
// word/punctuation pauses and intra-word silence trimming (spec.md §4.6,
// C7).
package concat

import (
	"math"

	"github.com/brunoamaral/catavoz/internal/pitch"
	"github.com/brunoamaral/catavoz/internal/prosody"
	"github.com/brunoamaral/catavoz/internal/sig"
)

// Params collects the subset of engine configuration the concatenator
// needs (spec.md §3's Configuration).
type Params struct {
	SampleRate           int
	CrossfadeMs          float64
	CrossfadeVowelMs     float64
	CrossfadeSEndingMs   float64
	CrossfadeREndingMs   float64
	VowelToConsonantFac  float64
	WordPauseMs          float64
	FadeInMs             float64
	FadeOutMs            float64
	RemoveWordSilence    bool
	SilenceThreshold     float64
	MinSilenceMs         float64
	RemoveDCOffset       bool
}

// punctuationScale maps the punctuation marks C7 recognises to their
// word_pause_ms multiplier (spec.md §4.6).
var punctuationScale = map[rune]float64{
	',': 0.5, ';': 0.7, ':': 0.7, '.': 1.2, '!': 1.3, '?': 1.2,
}

// Concatenator accumulates a synthesised utterance one unit at a time.
type Concatenator struct {
	p    Params
	ctx  prosody.Context
	buf  []int16
	prevText         string
	wordStartSample  int
	prevWasBoundary  bool
	wordIndex        int
}

// New creates a Concatenator for one synthesis call, pre-allocating a
// 10-second sample buffer per spec.md §4.10.
func New(p Params, ctx prosody.Context) *Concatenator {
	initialCap := p.SampleRate * 10
	return &Concatenator{p: p, ctx: ctx, prevWasBoundary: true, buf: make([]int16, 0, initialCap)}
}

func (c *Concatenator) msToSamples(ms float64) int {
	return int(math.Round(ms * float64(c.p.SampleRate) / 1000.0))
}

// AppendUnit mixes one database unit's recording into the buffer,
// applying DC removal, RMS normalisation and, when not at a word
// boundary, phoneme-adaptive crossfade with energy match and boundary
// pitch smoothing.
func (c *Concatenator) AppendUnit(text string, samples []int16) {
	scratch := append([]int16(nil), samples...)
	if c.p.RemoveDCOffset {
		scratch = sig.RemoveDC(scratch)
	}
	scratch = sig.Normalize(scratch, 3000)

	if c.prevWasBoundary || len(c.buf) == 0 {
		sig.FadeIn(scratch, c.msToSamples(c.p.FadeInMs))
		c.buf = append(c.buf, scratch...)
	} else {
		adaptiveMs := c.adaptiveCrossfadeMs(c.prevText, text)
		n := c.msToSamples(adaptiveMs)
		if n > len(c.buf) {
			n = len(c.buf)
		}
		if n > len(scratch) {
			n = len(scratch)
		}
		if n > 0 {
			c.pitchSmooth(scratch, n)
			c.energyMatch(scratch, n)
			c.crossfadeMix(scratch, n)
		}
		c.buf = append(c.buf, scratch[n:]...)
	}

	c.prevText = text
	c.prevWasBoundary = false
}

// adaptiveCrossfadeMs implements spec.md §4.6's crossfade-length table.
func (c *Concatenator) adaptiveCrossfadeMs(prevText, nextText string) float64 {
	base := c.p.CrossfadeMs
	prevEnd := ClassifyEnd(prevText)
	nextStart := ClassifyStart(nextText)

	var ms float64
	switch {
	case nextStart == Plosive:
		ms = 0.2 * base
	case prevEnd == Plosive:
		ms = 0.3 * base
	case prevEnd == Fricative || nextStart == Fricative:
		ms = 0.4 * base
	case prevEnd == Vowel && nextStart == Vowel:
		ms = c.p.CrossfadeVowelMs
	case prevEnd == Vowel && nextStart != Vowel:
		ms = base * c.p.VowelToConsonantFac
	case prevEnd == Nasal || nextStart == Nasal || prevEnd == Liquid || nextStart == Liquid:
		ms = 0.7 * base
	default:
		ms = base
	}

	if last := lastRune(prevText); last == 's' || last == 'S' {
		if cap := c.p.CrossfadeSEndingMs; ms > cap {
			ms = cap
		}
	} else if last == 'r' || last == 'R' {
		if cap := c.p.CrossfadeREndingMs; ms > cap {
			ms = cap
		}
	}
	return ms
}

func lastRune(s string) rune {
	r := []rune(s)
	if len(r) == 0 {
		return 0
	}
	return r[len(r)-1]
}

// energyMatch computes the RMS ratio between the buffer's tail and the
// new unit's head, clamps it to [0.5, 2.0], and applies a ramped gain to
// the first n samples of next before the crossfade mix.
func (c *Concatenator) energyMatch(next []int16, n int) {
	prevTail := c.buf[len(c.buf)-n:]
	nextHead := next[:n]
	prevRMS := sig.RMS(prevTail)
	nextRMS := sig.RMS(nextHead)
	if nextRMS < 1.0 {
		return
	}
	ratio := prevRMS / nextRMS
	if ratio < 0.5 {
		ratio = 0.5
	}
	if ratio > 2.0 {
		ratio = 2.0
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		gain := ratio*(1-t) + 1*t
		next[i] = sig.Clip(int(math.Round(float64(next[i]) * gain)))
	}
}

// crossfadeMix raised-cosine mixes the buffer's last n samples with
// next's first n samples, replacing the buffer's tail in place.
func (c *Concatenator) crossfadeMix(next []int16, n int) {
	tailStart := len(c.buf) - n
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		prevGain := 0.5 * (1 + math.Cos(math.Pi*t))
		nextGain := 0.5 * (1 - math.Cos(math.Pi*t))
		mixed := float64(c.buf[tailStart+i])*prevGain + float64(next[i])*nextGain
		c.buf[tailStart+i] = sig.Clip(int(math.Round(mixed)))
	}
}

// pitchSmooth implements spec.md §4.8's boundary pitch smoothing: if
// both sides of the splice are voiced and their pitch ratio falls
// outside [0.85, 1.15], resample the head of next toward a gentler
// target ratio and blend it with the unshifted head.
func (c *Concatenator) pitchSmooth(next []int16, n int) {
	prevTail := c.buf[len(c.buf)-n:]
	nextHead := next
	if len(nextHead) > n {
		nextHead = nextHead[:n]
	}
	prevF0 := pitch.Estimate(prevTail, c.p.SampleRate)
	nextF0 := pitch.Estimate(nextHead, c.p.SampleRate)
	if prevF0 == 0 || nextF0 == 0 {
		return
	}
	ratio := nextF0 / prevF0
	if ratio >= 0.85 && ratio <= 1.15 {
		return
	}
	target := 1 + (ratio-1)*0.5
	factor := target / ratio

	l := n / 4
	if l > len(next)/4 {
		l = len(next) / 4
	}
	if l > n {
		l = n
	}
	if l <= 0 {
		return
	}

	shifted := resampleLinear(next[:l], factor)
	for i := 0; i < l; i++ {
		t := float64(i) / float64(n)
		blended := float64(shifted[i])*(1-t) + float64(next[i])*t
		next[i] = sig.Clip(int(math.Round(blended)))
	}
}

// resampleLinear reads src at positions i*factor with linear
// interpolation, producing len(src) output samples. This is a
// resampling-based pitch bend, not a true pitch shift (spec.md §9, Open
// Question 2).
func resampleLinear(src []int16, factor float64) []int16 {
	out := make([]int16, len(src))
	last := len(src) - 1
	for i := range out {
		pos := float64(i) * factor
		if pos < 0 {
			pos = 0
		}
		if pos > float64(last) {
			pos = float64(last)
		}
		lo := int(pos)
		hi := lo + 1
		if hi > last {
			hi = last
		}
		frac := pos - float64(lo)
		v := float64(src[lo])*(1-frac) + float64(src[hi])*frac
		out[i] = sig.Clip(int(math.Round(v)))
	}
	return out
}

// WordBoundary handles whitespace: trims intra-word silence, applies the
// prosody overlay to the completed word, fades out the buffer's tail,
// and appends word_pause_ms of silence.
func (c *Concatenator) WordBoundary() {
	c.finishWord()
	sig.FadeOut(c.buf, c.msToSamples(c.p.FadeOutMs))
	c.buf = append(c.buf, make([]int16, c.msToSamples(c.p.WordPauseMs))...)
	c.wordStartSample = len(c.buf)
	c.prevWasBoundary = true
	c.wordIndex++
}

// Punctuation handles one of , ; : . ! ? — same as WordBoundary but with
// a scaled pause duration, and resets prosody word tracking on . ! ?.
func (c *Concatenator) Punctuation(ch rune) {
	c.finishWord()
	scale, ok := punctuationScale[ch]
	if !ok {
		scale = 1.0
	}
	sig.FadeOut(c.buf, c.msToSamples(c.p.FadeOutMs))
	c.buf = append(c.buf, make([]int16, c.msToSamples(c.p.WordPauseMs*scale))...)
	c.wordStartSample = len(c.buf)
	c.prevWasBoundary = true
	if ch == '.' || ch == '!' || ch == '?' {
		c.wordIndex = 0
	} else {
		c.wordIndex++
	}
}

// AppendUnknownSilence appends unknown_silence_ms of zero samples for an
// unmapped character and resets previous-unit tracking.
func (c *Concatenator) AppendUnknownSilence(ms float64) {
	c.buf = append(c.buf, make([]int16, c.msToSamples(ms))...)
	c.prevWasBoundary = true
	c.prevText = ""
}

// finishWord trims the current word's intra-word silence (if enabled)
// and applies the prosody overlay to it.
func (c *Concatenator) finishWord() {
	if c.wordStartSample >= len(c.buf) {
		return
	}
	word := c.buf[c.wordStartSample:]
	if c.p.RemoveWordSilence {
		trimmed := sig.TrimSilence(word, c.p.SilenceThreshold, c.msToSamples(c.p.MinSilenceMs))
		c.buf = append(c.buf[:c.wordStartSample], trimmed...)
		word = c.buf[c.wordStartSample:]
	}
	prosody.Overlay(word, c.wordIndex, c.ctx)
}

// Finalize trims and overlays the trailing word, applies the final
// fade-out, and returns the completed sample buffer.
func (c *Concatenator) Finalize() []int16 {
	c.finishWord()
	sig.FadeOut(c.buf, c.msToSamples(c.p.FadeOutMs))
	return c.buf
}
