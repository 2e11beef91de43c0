// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pitch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sineWave(freq float64, sampleRate, n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(10000 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return out
}

func TestEstimateTooShortIsUnvoiced(t *testing.T) {
	assert.Equal(t, 0.0, Estimate(make([]int16, 10), 22050))
}

func TestEstimateDetectsKnownFrequency(t *testing.T) {
	const sr = 22050
	samples := sineWave(150, sr, 2000)
	f0 := Estimate(samples, sr)
	assert.InDelta(t, 150.0, f0, 10.0)
}

func TestEstimateSilenceIsUnvoiced(t *testing.T) {
	assert.Equal(t, 0.0, Estimate(make([]int16, 2000), 22050))
}
