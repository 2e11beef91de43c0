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

func TestLoadRulesMissingFileIsNotError(t *testing.T) {
	rules, err := LoadRules(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	require.NoError(t, err)
	assert.Nil(t, rules)
}

func TestLoadRulesSkipsInvalidPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.csv")
	content := "# comment\n[,bad\nr,rr\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "r", rules[0].Source)
}

func TestApplyBackreference(t *testing.T) {
	rules, err := LoadRules(writeRules(t, "(r),\\1\\1"))
	require.NoError(t, err)
	assert.Equal(t, "rrosa", Apply(rules, "rosa"))
}

func TestApplyWordBoundary(t *testing.T) {
	rules, err := LoadRules(writeRules(t, "\\br,rr"))
	require.NoError(t, err)
	assert.Equal(t, "rrosa", Apply(rules, "rosa"))
}

func TestApplyOrderedRules(t *testing.T) {
	rules, err := LoadRules(writeRules(t, "a,b\nb,c"))
	require.NoError(t, err)
	assert.Equal(t, "c", Apply(rules, "a"))
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
