package report

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attractor-report/internal/artifact"
)

func runFixture() *artifact.RunPayload {
	p := &artifact.RunPayload{
		PhaseC: &artifact.PhaseReport{
			Confusion: &artifact.ConfusionPair{
				Readout: artifact.ConfusionMatrix{Normalized: [][]float64{{0.9, 0.1}, {0.2, 0.8}}},
			},
			AccHistory:  json.RawMessage(`[0.1, 0.3, 0.5, 0.7, 0.8, 0.85, 0.9, 0.9, 0.92, 0.95]`),
			FinalAcc:    0.95,
			AbortedFrac: 0.02,
		},
	}
	p.Config.Topology = "ring"
	return p
}

func TestPlotRunWritesExpectedFiles(t *testing.T) {
	dir := t.TempDir()
	opts := Options{OutDir: dir, Topology: "ring"}

	require.NoError(t, PlotRun(runFixture(), opts))

	assert.FileExists(t, filepath.Join(dir, "confusion_phaseC_readout_ring_countingOff.png"))
	assert.FileExists(t, filepath.Join(dir, "metrics_phaseC_aborts_ring_countingOff.png"))
	assert.NoFileExists(t, filepath.Join(dir, "confusion_phaseC_proto_ring_countingOff.png"),
		"an absent channel renders nothing")
}

func TestPlotRunHistoryWritesExpectedFiles(t *testing.T) {
	dir := t.TempDir()
	opts := Options{OutDir: dir, Formats: []string{"png", "svg"}, Topology: "ring"}

	require.NoError(t, PlotRunHistory(runFixture(), opts))

	assert.FileExists(t, filepath.Join(dir, "acc_history_phaseC_ring_countingOff.png"))
	assert.FileExists(t, filepath.Join(dir, "acc_history_phaseC_ring_countingOff.svg"))
}

func TestPlotRunHistoryNotesAbsentPhase(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	p := &artifact.RunPayload{}
	p.Config.Topology = "ring"
	require.NoError(t, PlotRunHistory(p, Options{OutDir: t.TempDir(), Topology: "ring"}))
	assert.Contains(t, buf.String(), "Phase C history skipped (missing)")
}

func TestPlotProbeZeroTopKRendersNothing(t *testing.T) {
	dir := t.TempDir()
	payload := &artifact.ProbePayload{Candidates: []artifact.Candidate{
		{Metrics: map[string]float64{"acc": 0.5, "score": 0.7}},
	}}

	require.NoError(t, PlotProbe(payload, Options{OutDir: dir, Topology: "ring"}, 0))
	assert.NoFileExists(t, filepath.Join(dir, "probe_score_scatter_ring.png"))
	assert.NoFileExists(t, filepath.Join(dir, "probe_heat_k_inhib_vs_v_th_ring.png"))
}

func TestPlotPerturbationFromArtifacts(t *testing.T) {
	dir := t.TempDir()
	summary := filepath.Join(dir, "summary.json")
	payload := `{
		"config": {"kind": "silence", "atStep": 40, "durationSteps": 3},
		"similarityByOffset": {"mean": [1.0, 0.4, null, 0.8, 0.95]},
		"metrics": {"recoveryRate": 0.75}
	}`
	require.NoError(t, os.WriteFile(summary, []byte(payload), 0o644))

	trials := filepath.Join(dir, "trials.csv")
	require.NoError(t, os.WriteFile(trials, []byte("trial,recoverySteps\n0,3\n1,5\n2,5\n3,9\n4,2\n"), 0o644))

	out := filepath.Join(dir, "plots")
	require.NoError(t, os.MkdirAll(out, 0o755))
	sets := []PerturbSet{{Label: "silence", SummaryPath: summary, TrialsPath: trials}}

	require.NoError(t, PlotPerturbation(sets, Options{OutDir: out}))

	assert.FileExists(t, filepath.Join(out, "perturb_similarity_mean.png"))
	assert.FileExists(t, filepath.Join(out, "perturb_recovery_rate.png"))
	assert.FileExists(t, filepath.Join(out, "perturb_recovery_steps_hist.png"))
}
