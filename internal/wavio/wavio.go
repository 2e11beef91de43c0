// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wavio implements the WAV file I/O ambient component (SPEC_FULL
// §4.14): reading arbitrary-channel 16-bit unit recordings for the
// database builder, and writing the final mono 16-bit synthesis output.
// It is adapted from the teacher's sound.Wave, dropping the etensor
// conversion the auditory-feature pipeline needed.
package wavio

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/brunoamaral/catavoz/internal/cverr"
)

// Load decodes filename and returns its samples folded to mono and the
// file's native sample rate. Multi-channel recordings are averaged
// per-frame, widening to int32 before dividing to avoid overflow (Open
// Question 1).
func Load(filename string) (samples []int16, sampleRate int, err error) {
	f, oerr := os.Open(filename)
	if oerr != nil {
		if os.IsNotExist(oerr) {
			return nil, 0, cverr.Wrap(cverr.FileNotFound, "open wav", oerr)
		}
		return nil, 0, cverr.Wrap(cverr.FileRead, "open wav", oerr)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, cverr.New(cverr.InvalidWav, "not a valid wav file: "+filename)
	}

	buf, perr := dec.FullPCMBuffer()
	if perr != nil {
		return nil, 0, cverr.Wrap(cverr.InvalidWav, "decode wav pcm", perr)
	}

	nChans := int(dec.NumChans)
	if nChans <= 0 {
		nChans = 1
	}
	sampleRate = int(dec.SampleRate)
	samples = foldToMono(buf, nChans)
	return samples, sampleRate, nil
}

// foldToMono averages nChans interleaved frames into one int16 stream,
// converting each source sample to the database's 16-bit scale first.
func foldToMono(buf *audio.IntBuffer, nChans int) []int16 {
	total := len(buf.Data)
	nFrames := total / nChans
	out := make([]int16, nFrames)
	for i := 0; i < nFrames; i++ {
		var sum int32
		for c := 0; c < nChans; c++ {
			sum += int32(scaleTo16(buf, buf.Data[i*nChans+c]))
		}
		out[i] = int16(sum / int32(nChans))
	}
	return out
}

// scaleTo16 rescales one decoded sample from the source bit depth to a
// signed 16-bit range.
func scaleTo16(buf *audio.IntBuffer, v int) int32 {
	switch buf.SourceBitDepth {
	case 32:
		return int32(int64(v) >> 16)
	case 24:
		return int32(int64(v) >> 8)
	case 8:
		return int32((v - 128) << 8)
	default: // 16 and anything already at scale
		return int32(v)
	}
}

// Write encodes samples as a mono 16-bit PCM WAV file at sampleRate.
func Write(filename string, samples []int16, sampleRate int) error {
	f, err := os.Create(filename)
	if err != nil {
		return cverr.Wrap(cverr.FileWrite, "create wav", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	ib := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(ib); err != nil {
		return cverr.Wrap(cverr.FileWrite, "write wav samples", err)
	}
	if err := enc.Close(); err != nil {
		return cverr.Wrap(cverr.FileWrite, "finalize wav", err)
	}
	return nil
}
