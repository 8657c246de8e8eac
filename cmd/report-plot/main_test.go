package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRunFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "report.json")
	payload := `{
		"config": {"topology": "ring"},
		"phaseC": {
			"confusion": {"readout": {"normalized": [[1, 0], [0, 1]]}},
			"accHistory": [0.1, 0.5, 0.9],
			"finalAcc": 0.9,
			"abortedFrac": 0.1
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func TestRunKindRendersConfusionNotHistory(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "plots")
	rootCmd.SetArgs([]string{"--kind", "run", "--input", writeRunFixture(t, dir), "--outDir", out, "--topology", "ring"})

	require.NoError(t, rootCmd.Execute())

	assert.FileExists(t, filepath.Join(out, "confusion_phaseC_readout_ring_countingOff.png"))
	assert.NoFileExists(t, filepath.Join(out, "acc_history_phaseC_ring_countingOff.png"),
		"history needs its own kind")
}

func TestRunAccHistoryKindRendersOnlyHistory(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "plots")
	rootCmd.SetArgs([]string{"--kind", "run_acc_history", "--input", writeRunFixture(t, dir), "--outDir", out, "--topology", "ring"})

	require.NoError(t, rootCmd.Execute())

	assert.FileExists(t, filepath.Join(out, "acc_history_phaseC_ring_countingOff.png"))
	assert.NoFileExists(t, filepath.Join(out, "confusion_phaseC_readout_ring_countingOff.png"))
}

func TestPerturbKindWithoutSetsSucceeds(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plots")
	resetPerturbFlags()
	rootCmd.SetArgs([]string{"--kind", "perturb", "--outDir", out})

	assert.NoError(t, rootCmd.Execute(), "an empty condition list is a no-op, not a failure")
}

func TestSplitListCommaSplitsAndConcatenates(t *testing.T) {
	got := splitList([]string{"a.json,b.json", " c.json ", ""})
	assert.Equal(t, []string{"a.json", "b.json", "c.json"}, got)
}

func TestCollectPerturbSetsZipsByIndex(t *testing.T) {
	plotFlags.perturbSummary = []string{"/runs/ring/perturb/summary.json,/runs/snake/perturb/summary.json"}
	plotFlags.perturbTrials = []string{"/runs/ring/perturb/trials.csv"}
	plotFlags.perturbLabels = []string{"ring-run"}
	t.Cleanup(resetPerturbFlags)

	sets := collectPerturbSets()
	require.Len(t, sets, 2)

	assert.Equal(t, "ring-run", sets[0].Label)
	assert.Equal(t, "/runs/ring/perturb/summary.json", sets[0].SummaryPath)
	assert.Equal(t, "/runs/ring/perturb/trials.csv", sets[0].TrialsPath)

	assert.Equal(t, "snake", sets[1].Label, "missing labels derive from the path")
	assert.Equal(t, "/runs/snake/perturb/summary.json", sets[1].SummaryPath)
	assert.Empty(t, sets[1].TrialsPath)
}

func TestCollectPerturbSetsDropsEmptySlots(t *testing.T) {
	plotFlags.perturbSummary = []string{",,"}
	plotFlags.perturbTrials = nil
	plotFlags.perturbLabels = nil
	t.Cleanup(resetPerturbFlags)

	assert.Empty(t, collectPerturbSets())
}

func resetPerturbFlags() {
	plotFlags.perturbSummary = nil
	plotFlags.perturbTrials = nil
	plotFlags.perturbLabels = nil
}
