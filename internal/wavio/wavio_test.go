// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wavio

import (
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toneSamples(n int, amp int16) []int16 {
	out := make([]int16, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = amp
		} else {
			out[i] = -amp
		}
	}
	return out
}

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	in := toneSamples(2000, 12000)
	require.NoError(t, Write(path, in, 22050))

	out, sr, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 22050, sr)
	assert.Equal(t, in, out)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.wav"))
	assert.Error(t, err)
}

func TestFoldToMonoAveragesStereoFrames(t *testing.T) {
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 22050},
		Data:           []int{1000, -1000, 2000, 0},
		SourceBitDepth: 16,
	}
	out := foldToMono(buf, 2)
	require.Len(t, out, 2)
	assert.Equal(t, int16(0), out[0])    // (1000 + -1000) / 2
	assert.Equal(t, int16(1000), out[1]) // (2000 + 0) / 2
}

func TestScaleTo16HandlesSourceDepths(t *testing.T) {
	b8 := &audio.IntBuffer{SourceBitDepth: 8}
	assert.Equal(t, int32(0), scaleTo16(b8, 128))

	b24 := &audio.IntBuffer{SourceBitDepth: 24}
	assert.Equal(t, int32(1), scaleTo16(b24, 1<<8))

	b32 := &audio.IntBuffer{SourceBitDepth: 32}
	assert.Equal(t, int32(1), scaleTo16(b32, 1<<16))

	b16 := &audio.IntBuffer{SourceBitDepth: 16}
	assert.Equal(t, int32(1234), scaleTo16(b16, 1234))
}
