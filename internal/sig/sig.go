// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sig implements the low-level signal utilities shared by the
// concatenator and the prosody overlay: DC removal, RMS,
// fade curves, silence trimming and zero-crossing search (spec.md §4.5).
package sig

import "math"

// Clip saturates v into the int16 range.
func Clip(v int) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// RemoveDC subtracts the integer mean of samples, saturating to the
// int16 range, and returns a new slice.
func RemoveDC(samples []int16) []int16 {
	if len(samples) == 0 {
		return samples
	}
	var sum int64
	for _, s := range samples {
		sum += int64(s)
	}
	mean := sum / int64(len(samples))
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = Clip(int(s) - int(mean))
	}
	return out
}

// RMS returns the root-mean-square amplitude of samples. A result below
// 1.0 should be treated as near-zero (silence) by callers.
func RMS(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sumSq float64
	for _, s := range samples {
		v := float64(s)
		sumSq += v * v
	}
	return math.Sqrt(sumSq / float64(len(samples)))
}

// Normalize scales samples so their RMS approaches target, with gain
// clamped to [0.1, 3.0], and returns a new slice.
func Normalize(samples []int16, target float64) []int16 {
	rms := RMS(samples)
	if rms < 1.0 {
		return append([]int16(nil), samples...)
	}
	gain := target / rms
	if gain < 0.1 {
		gain = 0.1
	}
	if gain > 3.0 {
		gain = 3.0
	}
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = Clip(int(math.Round(float64(s) * gain)))
	}
	return out
}

// ApplyGain scales samples by gain in place, saturating.
func ApplyGain(samples []int16, gain float64) {
	for i, s := range samples {
		samples[i] = Clip(int(math.Round(float64(s) * gain)))
	}
}

// FadeInGain returns sin(pi/2 * i/n), the fade-in curve at sample i of n.
func FadeInGain(i, n int) float64 {
	if n <= 0 {
		return 1
	}
	t := float64(i) / float64(n)
	return math.Sin(math.Pi / 2 * t)
}

// FadeOutGain returns the mirrored fade-out curve at sample i of n.
func FadeOutGain(i, n int) float64 {
	return FadeInGain(n-i, n)
}

// FadeIn applies FadeInGain to the first n samples of samples, in place.
func FadeIn(samples []int16, n int) {
	if n > len(samples) {
		n = len(samples)
	}
	for i := 0; i < n; i++ {
		g := FadeInGain(i, n)
		samples[i] = Clip(int(math.Round(float64(samples[i]) * g)))
	}
}

// FadeOut applies FadeOutGain to the last n samples of samples, in place.
func FadeOut(samples []int16, n int) {
	if n > len(samples) {
		n = len(samples)
	}
	start := len(samples) - n
	for i := 0; i < n; i++ {
		g := FadeOutGain(i, n)
		samples[start+i] = Clip(int(math.Round(float64(samples[start+i]) * g)))
	}
}

// TrimSilence scans samples and replaces any run below an absolute
// threshold (peak * thresholdRatio) whose length is >= minSilenceSamples
// with a short tail of max(minSilenceSamples/4, 10) samples copied from
// the run's start; shorter runs are retained verbatim (spec.md §4.5).
func TrimSilence(samples []int16, thresholdRatio float64, minSilenceSamples int) []int16 {
	if len(samples) == 0 || minSilenceSamples <= 0 {
		return samples
	}
	peak := 0
	for _, s := range samples {
		a := int(s)
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak = a
		}
	}
	threshold := float64(peak) * thresholdRatio

	tailLen := minSilenceSamples / 4
	if tailLen < 10 {
		tailLen = 10
	}

	out := make([]int16, 0, len(samples))
	i := 0
	for i < len(samples) {
		if abs16(samples[i]) <= threshold {
			j := i
			for j < len(samples) && abs16(samples[j]) <= threshold {
				j++
			}
			runLen := j - i
			if runLen >= minSilenceSamples {
				tn := tailLen
				if tn > runLen {
					tn = runLen
				}
				out = append(out, samples[i:i+tn]...)
			} else {
				out = append(out, samples[i:j]...)
			}
			i = j
			continue
		}
		out = append(out, samples[i])
		i++
	}
	return out
}

func abs16(s int16) float64 {
	v := float64(s)
	if v < 0 {
		return -v
	}
	return v
}

// ZeroCrossing searches outward from pos within [pos-radius, pos+radius]
// for the nearest index where the sign of samples changes, returning pos
// unchanged if none is found. The concatenator and the time stretcher do
// not call it; their splice points are plain sample indices.
func ZeroCrossing(samples []int16, pos, radius int) int {
	lo := pos - radius
	if lo < 1 {
		lo = 1
	}
	hi := pos + radius
	if hi > len(samples)-1 {
		hi = len(samples) - 1
	}
	best := pos
	bestDist := radius + 1
	for i := lo; i <= hi; i++ {
		if (samples[i-1] >= 0) != (samples[i] >= 0) {
			d := i - pos
			if d < 0 {
				d = -d
			}
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
	}
	return best
}
