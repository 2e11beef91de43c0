// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stretch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sine(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		if i%4 < 2 {
			out[i] = 10000
		} else {
			out[i] = -10000
		}
	}
	return out
}

func TestStretchIdentityAtSpeedOne(t *testing.T) {
	in := sine(1000)
	out := Stretch(in, 22050, 1.0, 0.5, 2.0)
	assert.Equal(t, in, out)
}

func TestStretchSlowerProducesMoreSamples(t *testing.T) {
	in := sine(22050)
	slow := Stretch(in, 22050, 0.5, 0.5, 2.0)
	assert.Greater(t, len(slow), len(in))
}

func TestStretchFasterProducesFewerSamples(t *testing.T) {
	in := sine(22050)
	fast := Stretch(in, 22050, 2.0, 0.5, 2.0)
	assert.Less(t, len(fast), len(in))
}

func TestStretchClampsSpeed(t *testing.T) {
	in := sine(22050)
	clampedLow := Stretch(in, 22050, 0.1, 0.5, 2.0)
	atMin := Stretch(in, 22050, 0.5, 0.5, 2.0)
	assert.Equal(t, len(atMin), len(clampedLow))
}

func TestStretchNeverClips(t *testing.T) {
	in := sine(22050)
	out := Stretch(in, 22050, 1.7, 0.5, 2.0)
	for _, s := range out {
		assert.LessOrEqual(t, int(s), 32767)
		assert.GreaterOrEqual(t, int(s), -32768)
	}
}

func TestStretchEmptyInput(t *testing.T) {
	out := Stretch(nil, 22050, 1.5, 0.5, 2.0)
	assert.Empty(t, out)
}
