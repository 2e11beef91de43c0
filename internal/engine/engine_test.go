// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunoamaral/catavoz/internal/dbfmt"
)

func tone(n int, amp int16) []int16 {
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

func buildFixtureDB(t *testing.T) string {
	t.Helper()
	units := []dbfmt.BuildUnit{
		{Text: "a", Samples: tone(400, 8000)},
		{Text: "o", Samples: tone(400, 8000)},
		{Text: "to", Samples: tone(400, 9000)},
		{Text: "ro", Samples: tone(400, 9000)},
		{Text: "sa", Samples: tone(400, 9000)},
		{Text: "rosa", Samples: tone(800, 9000)},
		{Text: "rrosa", Samples: tone(800, 9000)},
	}
	path := filepath.Join(t.TempDir(), "voices.db")
	require.NoError(t, dbfmt.Write(path, units))
	return path
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(buildFixtureDB(t))
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestSynthesizeProducesSamplesAndCountsUnits(t *testing.T) {
	e := newTestEngine(t)
	samples, err := e.Synthesize("rosa", 1.0)
	require.NoError(t, err)
	assert.NotEmpty(t, samples)
	assert.Equal(t, 1, e.UnitsFound)
	assert.Equal(t, 0, e.UnitsMissing)
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	e := newTestEngine(t)
	a, err := e.Synthesize("a rosa to", 1.0)
	require.NoError(t, err)
	b, err := e.Synthesize("a rosa to", 1.0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSynthesizeUnknownCharacterCountsAsMissing(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Synthesize("z", 1.0)
	require.NoError(t, err)
	assert.Equal(t, 0, e.UnitsFound)
	assert.Equal(t, 1, e.UnitsMissing)
}

func TestSynthesizeSpeedIsClampedToConfiguredRange(t *testing.T) {
	e := newTestEngine(t)
	fast, err := e.Synthesize("rosa", 100.0)
	require.NoError(t, err)
	atMax, err := e.Synthesize("rosa", e.cfg.MaxSpeed)
	require.NoError(t, err)
	assert.Equal(t, len(atMax), len(fast))
}

func TestSynthesizeApplyingRewriteRuleMatchesDirectSpelling(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "rules.csv")
	require.NoError(t, os.WriteFile(rulesPath, []byte(`\br,rr`+"\n"), 0o644))

	e, err := New(buildFixtureDB(t))
	require.NoError(t, err)
	defer e.Close()
	e.cfg.RewriteRulesPath = rulesPath

	rewritten, err := e.Synthesize("rosa", 1.0)
	require.NoError(t, err)

	e2, err := New(buildFixtureDB(t))
	require.NoError(t, err)
	defer e2.Close()

	direct, err := e2.Synthesize("rrosa", 1.0)
	require.NoError(t, err)

	assert.Equal(t, direct, rewritten)
}

func TestLoadConfigMissingPathIsNotError(t *testing.T) {
	e := newTestEngine(t)
	err := e.LoadConfig(filepath.Join(t.TempDir(), "nope.cfg"))
	assert.NoError(t, err)
}
