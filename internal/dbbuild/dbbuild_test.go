// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dbbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunoamaral/catavoz/internal/dbfmt"
	"github.com/brunoamaral/catavoz/internal/wavio"
)

func TestParseIndexSkipsCommentsAndBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letters.txt")
	body := "# header comment\n\na.wav|a|A\nbe.wav|be|BE\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	entries, err := parseIndex(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.wav", entries[0].filename)
	assert.Equal(t, "a", entries[0].text)
	assert.Equal(t, "be.wav", entries[1].filename)
}

func TestParseIndexSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letters.txt")
	body := "no-separator-here\na.wav|a|A\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	entries, err := parseIndex(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.wav", entries[0].filename)
}

func TestParseIndexMissingFile(t *testing.T) {
	_, err := parseIndex(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func writeFixtureDataset(t *testing.T, root string) {
	t.Helper()
	for _, k := range kinds {
		wavsDir := filepath.Join(root, k.dir, k.wavsDir)
		require.NoError(t, os.MkdirAll(wavsDir, 0o755))
		require.NoError(t, wavio.Write(filepath.Join(wavsDir, "u1.wav"), []int16{100, -100, 200, -200}, 22050))
		require.NoError(t, wavio.Write(filepath.Join(wavsDir, "u2.wav"), []int16{1, 2, 3}, 22050))
		index := "u1.wav|A|A\nu2.wav|BE|BE\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, k.dir, k.indexFile), []byte(index), 0o644))
	}
}

func TestBuildMergesBothKindsAndLowercases(t *testing.T) {
	root := t.TempDir()
	writeFixtureDataset(t, root)
	outPath := filepath.Join(t.TempDir(), "voices.db")

	require.NoError(t, Build(root, outPath))

	db, err := dbfmt.Open(outPath)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 4, db.UnitCount()) // 2 entries x 2 kinds
	for i := 0; i < db.UnitCount(); i++ {
		u := db.Unit(i)
		assert.Contains(t, []string{"a", "be"}, u.Text) // decoded and lowercased, not the raw display text
	}
	_, ok := db.Lookup([]byte("a"))
	assert.True(t, ok)
	_, ok = db.Lookup([]byte("be"))
	assert.True(t, ok)
}

func TestBuildMissingIndexFilePropagatesError(t *testing.T) {
	root := t.TempDir()
	err := Build(root, filepath.Join(t.TempDir(), "voices.db"))
	assert.Error(t, err)
}
