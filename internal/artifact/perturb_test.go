package artifact

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanSimilarityKeepsNullSlots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.json")
	payload := `{
		"config": {"kind": "silence", "atStep": 40},
		"similarityByOffset": {"mean": [1.0, 0.8, null, 0.6]}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	s, err := LoadPerturbSummary(path)
	require.NoError(t, err)
	require.NotNil(t, s)

	mean := s.MeanSimilarity()
	require.Len(t, mean, 4, "null entries must keep their positions")
	assert.Equal(t, 1.0, mean[0])
	assert.Equal(t, 0.8, mean[1])
	assert.True(t, math.IsNaN(mean[2]), "null maps to NaN")
	assert.Equal(t, 0.6, mean[3])
}

func TestDurationDefaultsToOne(t *testing.T) {
	assert.Equal(t, 1, PerturbConfig{}.Duration())

	zero := 0
	assert.Equal(t, 0, PerturbConfig{DurationSteps: &zero}.Duration(), "explicit zero is honored")

	five := 5
	assert.Equal(t, 5, PerturbConfig{DurationSteps: &five}.Duration())
}

func TestLoadPerturbSummaryMissingFile(t *testing.T) {
	s, err := LoadPerturbSummary("")
	assert.NoError(t, err)
	assert.Nil(t, s)

	s, err = LoadPerturbSummary(filepath.Join(t.TempDir(), "nope.json"))
	assert.NoError(t, err, "a missing optional file is a skip, not a failure")
	assert.Nil(t, s)
}

func TestLoadPerturbTrialsDropsUnparsableRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trials.csv")
	csv := "trial,recoverySteps\n0,12\n1,7.0\n2,not-a-number\n3,\n4,31\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	trials, err := LoadPerturbTrials(path)
	require.NoError(t, err)
	require.Len(t, trials, 3, "rows without a parsable value drop out")
	assert.Equal(t, 12, trials[0].RecoverySteps)
	assert.Equal(t, 7, trials[1].RecoverySteps)
	assert.Equal(t, 31, trials[2].RecoverySteps)
}

func TestLoadPerturbTrialsMissingFile(t *testing.T) {
	trials, err := LoadPerturbTrials(filepath.Join(t.TempDir(), "nope.csv"))
	assert.NoError(t, err)
	assert.Nil(t, trials)
}

func TestDeriveLabel(t *testing.T) {
	assert.Equal(t, "run_ring", DeriveLabel("/data/run_ring/summary.json", "x"))
	assert.Equal(t, "run_ring", DeriveLabel("/data/run_ring/perturb/summary.json", "x"),
		"a perturb parent defers to the grandparent")
	assert.Equal(t, "x", DeriveLabel("summary.json", "x"))
	assert.Equal(t, "x", DeriveLabel("", "x"))
}
