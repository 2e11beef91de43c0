// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pitch estimates fundamental frequency over short windows via
// normalised autocorrelation (spec.md §4.7), used by the concatenator's
// boundary pitch smoothing step.
package pitch

import "math"

// MinSamples is the shortest input the estimator will attempt.
const MinSamples = 200

// Estimate returns the estimated F0, in Hz, of samples at the given
// sample rate, or 0 if the signal is judged unvoiced. Lags are searched
// over [sampleRate/400, sampleRate/80] on an analysis window of
// sampleRate/100 samples, and the lag of maximum normalised
// autocorrelation is reported as sampleRate/lag if its correlation
// exceeds 0.3.
func Estimate(samples []int16, sampleRate int) float64 {
	if len(samples) < MinSamples {
		return 0
	}
	winLen := sampleRate / 100
	if winLen > len(samples) {
		winLen = len(samples)
	}
	minLag := sampleRate / 400
	maxLag := sampleRate / 80
	if minLag < 1 {
		minLag = 1
	}

	bestLag := 0
	bestCorr := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		if lag+winLen > len(samples) {
			break
		}
		var num, denA, denB float64
		for i := 0; i < winLen; i++ {
			a := float64(samples[i])
			b := float64(samples[i+lag])
			num += a * b
			denA += a * a
			denB += b * b
		}
		den := math.Sqrt(denA * denB)
		if den == 0 {
			continue
		}
		corr := num / den
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	if bestLag == 0 || bestCorr <= 0.3 {
		return 0
	}
	return float64(sampleRate) / float64(bestLag)
}
