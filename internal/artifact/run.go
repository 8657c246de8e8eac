package artifact

import "encoding/json"

// RunPayload is the top-level record written by a single experiment run.
type RunPayload struct {
	Config RunConfig    `json:"config"`
	PhaseB *PhaseReport `json:"phaseB"`
	PhaseC *PhaseReport `json:"phaseC"`
}

// RunConfig carries the slice of run configuration the reports embed in
// titles and file names. Everything else in the config block is ignored.
type RunConfig struct {
	Topology         string `json:"topology"`
	UseCountingPhase bool   `json:"useCountingPhase"`
	Controller       struct {
		Mode string `json:"mode"`
	} `json:"controller"`
	PhaseBCConfig struct {
		SustainGate struct {
			Enabled bool `json:"enabled"`
		} `json:"sustainGate"`
		EvalWindow  int `json:"evalWindow"`
		LearnWindow int `json:"learnWindow"`
	} `json:"phaseBCConfig"`
	Curriculum struct {
		PhaseBC struct {
			TTrans  *int `json:"tTrans"`
			TailLen *int `json:"tailLen"`
		} `json:"phaseBC"`
	} `json:"curriculum"`
}

// Suffix is the file-name fragment embedding topology and the counting
// phase flag, e.g. "ring_countingOn".
func (c RunConfig) Suffix() string {
	counting := "countingOff"
	if c.UseCountingPhase {
		counting = "countingOn"
	}
	return c.Topology + "_" + counting
}

// PhaseReport is one phase section of a run payload. AccHistory is kept
// raw because the producer has emitted both a flat sequence and a keyed
// mapping over time; report.NormalizeHistory sorts that out.
type PhaseReport struct {
	Confusion   *ConfusionPair  `json:"confusion"`
	AccHistory  json.RawMessage `json:"accHistory"`
	AbortedFrac float64         `json:"abortedFrac"`
	FinalAcc    float64         `json:"finalAcc"`
}

// ConfusionPair holds the two confusion channels reported per phase.
type ConfusionPair struct {
	Readout ConfusionMatrix `json:"readout"`
	Proto   ConfusionMatrix `json:"proto"`
}

// ConfusionMatrix carries a normalized matrix, raw counts, or both.
type ConfusionMatrix struct {
	Normalized [][]float64 `json:"normalized"`
	Counts     [][]float64 `json:"counts"`
}

// Data returns the preferred matrix: normalized when present, else counts.
// A nil return means there is nothing to plot.
func (m ConfusionMatrix) Data() [][]float64 {
	if len(m.Normalized) > 0 {
		return m.Normalized
	}
	if len(m.Counts) > 0 {
		return m.Counts
	}
	return nil
}

// LoadRun reads a run payload. The input is required, so a missing or
// malformed file is an error rather than a skip.
func LoadRun(path string) (*RunPayload, error) {
	var p RunPayload
	if err := readJSON(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
