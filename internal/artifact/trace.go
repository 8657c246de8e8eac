package artifact

import (
	"log"
	"os"
)

// TraceSet is a transition-debug dump: per-trial similarity-to-target
// sequences plus the metadata the title needs.
type TraceSet struct {
	Traces []Trace   `json:"traces"`
	Meta   TraceMeta `json:"meta"`
}

// Trace is one trial's similarity-over-time sequence.
type Trace struct {
	TargetProtoSim []float64 `json:"targetProtoSim"`
}

// TraceMeta labels the trace set.
type TraceMeta struct {
	Topology string `json:"topology"`
	TTrans   int    `json:"tTrans"`
}

// Similarities returns the non-empty similarity sequences in trial order.
func (t *TraceSet) Similarities() [][]float64 {
	var sims [][]float64
	for _, tr := range t.Traces {
		if len(tr.TargetProtoSim) > 0 {
			sims = append(sims, tr.TargetProtoSim)
		}
	}
	return sims
}

// LoadTraces reads a trace-set dump. Traces are optional evidence, so a
// missing file logs and returns nil instead of failing the run.
func LoadTraces(path string) (*TraceSet, error) {
	if _, err := os.Stat(path); err != nil {
		log.Printf("[artifact] skipping traces, file not found: %s", path)
		return nil, nil
	}
	var t TraceSet
	if err := readJSON(path, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
