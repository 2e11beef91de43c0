// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stretch implements overlap-add time-scale modification with a
// Hann analysis/synthesis window (spec.md §4.8, C10). It is an OLA
// time-scaler without pitch synchronization: it preserves pitch only
// approximately and phase coherence not at all, which is acceptable for
// factors in [0.5, 2.0] and is a known limitation, not a bug.
package stretch

import (
	"math"

	"gonum.org/v1/gonum/dsp/window"
)

// FrameMs is the fixed analysis/synthesis frame length in milliseconds.
const FrameMs = 20.0

// Stretch resamples samples to the given speed factor (clamped to
// [minSpeed, maxSpeed]) using overlap-add with a Hann window sized for
// sampleRate. At speed == 1.0 it is the identity transform up to trailing
// zero trimming.
func Stretch(samples []int16, sampleRate int, speed, minSpeed, maxSpeed float64) []int16 {
	speed = clamp(speed, minSpeed, maxSpeed)
	if speed == 1.0 {
		return trimTrailingZeros(append([]int16(nil), samples...))
	}
	if len(samples) == 0 {
		return samples
	}

	frameSize := int(math.Round(float64(sampleRate) * FrameMs / 1000.0))
	if frameSize < 1 {
		frameSize = 1
	}
	analysisHop := frameSize / 4
	if analysisHop < 1 {
		analysisHop = 1
	}
	synthesisHopF := float64(analysisHop) / speed

	hann := window.Hann(make([]float64, frameSize))

	numFrames := (len(samples)-frameSize)/analysisHop + 1
	if numFrames < 1 {
		numFrames = 1
	}

	outLen := int(float64(numFrames)*synthesisHopF) + frameSize + frameSize
	out := make([]float64, outLen)
	weight := make([]float64, outLen)

	for fi := 0; fi < numFrames; fi++ {
		analysisPos := fi * analysisHop
		synthesisPos := int(math.Round(float64(fi) * synthesisHopF))
		for j := 0; j < frameSize; j++ {
			srcIdx := analysisPos + j
			dstIdx := synthesisPos + j
			if dstIdx >= outLen {
				break
			}
			var v float64
			if srcIdx < len(samples) {
				v = float64(samples[srcIdx])
			}
			w := hann[j]
			out[dstIdx] += v * w
			weight[dstIdx] += w
		}
	}

	result := make([]int16, outLen)
	for i, v := range out {
		if weight[i] > 0.01 {
			v /= weight[i]
		} else {
			v = 0
		}
		result[i] = saturate(v)
	}
	return trimTrailingZeros(result)
}

func saturate(v float64) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(math.Round(v))
}

func trimTrailingZeros(samples []int16) []int16 {
	end := len(samples)
	for end > 0 && samples[end-1] == 0 {
		end--
	}
	return samples[:end]
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
