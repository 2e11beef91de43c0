// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireIsIdempotentPerPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	s1, err := Acquire(path)
	require.NoError(t, err)
	s2, err := Acquire(path)
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	s1.Release()
	s2.Release()
}

func TestReleaseEvictsAfterLastReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0o644))

	s1, err := Acquire(path)
	require.NoError(t, err)
	s1.Release()

	s2, err := Acquire(path)
	require.NoError(t, err)
	defer s2.Release()

	assert.NotSame(t, s1, s2)
}

func TestAcquireEmptyPathIsNoop(t *testing.T) {
	s, err := Acquire("")
	require.NoError(t, err)
	assert.Empty(t, s.Rules())
	s.Release()
}
