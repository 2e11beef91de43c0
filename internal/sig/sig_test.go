// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sig

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClipSaturates(t *testing.T) {
	assert.Equal(t, int16(math.MaxInt16), Clip(100000))
	assert.Equal(t, int16(math.MinInt16), Clip(-100000))
	assert.Equal(t, int16(42), Clip(42))
}

func TestRemoveDCRemovesMean(t *testing.T) {
	in := []int16{100, 200, 300}
	out := RemoveDC(in)
	var sum int
	for _, s := range out {
		sum += int(s)
	}
	assert.InDelta(t, 0, sum, 2)
}

func TestRemoveDCEmpty(t *testing.T) {
	assert.Empty(t, RemoveDC(nil))
}

func TestRMS(t *testing.T) {
	assert.Equal(t, 0.0, RMS(nil))
	assert.InDelta(t, 100.0, RMS([]int16{100, -100, 100, -100}), 0.001)
}

func TestNormalizeClampsGain(t *testing.T) {
	// Near-silent input: RMS below 1.0 returns a copy unchanged.
	quiet := []int16{0, 0, 0}
	out := Normalize(quiet, 3000)
	assert.Equal(t, quiet, out)

	loud := make([]int16, 100)
	for i := range loud {
		loud[i] = 30000
	}
	out = Normalize(loud, 3000)
	for _, s := range out {
		assert.LessOrEqual(t, int(s), 32767)
		assert.GreaterOrEqual(t, int(s), -32768)
	}
}

func TestFadeInOutMirror(t *testing.T) {
	n := 100
	for i := 0; i <= n; i++ {
		assert.InDelta(t, FadeInGain(i, n), FadeOutGain(n-i, n), 1e-9)
	}
	assert.InDelta(t, 0.0, FadeInGain(0, n), 1e-9)
	assert.InDelta(t, 1.0, FadeInGain(n, n), 1e-9)
}

func TestFadeInOutNoClip(t *testing.T) {
	samples := make([]int16, 50)
	for i := range samples {
		samples[i] = 32767
	}
	FadeIn(samples, 20)
	FadeOut(samples, 20)
	for _, s := range samples {
		assert.LessOrEqual(t, int(s), 32767)
		assert.GreaterOrEqual(t, int(s), -32768)
	}
}

func TestTrimSilenceShortRunRetained(t *testing.T) {
	samples := []int16{0, 0, 0, 10000, 0, 0, 0}
	out := TrimSilence(samples, 0.5, 100)
	assert.Equal(t, samples, out)
}

func TestTrimSilenceLongRunShortened(t *testing.T) {
	samples := make([]int16, 0, 220)
	for i := 0; i < 200; i++ {
		samples = append(samples, 0)
	}
	samples = append(samples, 10000)
	out := TrimSilence(samples, 0.5, 100)
	assert.Less(t, len(out), len(samples))
}

func TestZeroCrossingFindsSignChange(t *testing.T) {
	samples := []int16{5, 5, 5, -5, -5, -5}
	idx := ZeroCrossing(samples, 2, 3)
	assert.Equal(t, 3, idx)
}

func TestZeroCrossingNoneFound(t *testing.T) {
	samples := []int16{5, 5, 5, 5, 5}
	idx := ZeroCrossing(samples, 2, 1)
	assert.Equal(t, 2, idx)
}
