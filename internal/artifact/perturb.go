package artifact

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PerturbSummary is the aggregated record for one perturbation condition.
type PerturbSummary struct {
	Config             PerturbConfig `json:"config"`
	SimilarityByOffset struct {
		Mean []*float64 `json:"mean"`
	} `json:"similarityByOffset"`
	Metrics struct {
		RecoveryRate *float64 `json:"recoveryRate"`
	} `json:"metrics"`
}

// PerturbConfig describes the injected perturbation.
type PerturbConfig struct {
	Kind          string `json:"kind"`
	AtStep        int    `json:"atStep"`
	DurationSteps *int   `json:"durationSteps"`
}

// Duration returns the perturbation length in steps. The producer omits
// durationSteps for single-step perturbations, so absent means 1; an
// explicit zero is honored.
func (c PerturbConfig) Duration() int {
	if c.DurationSteps == nil {
		return 1
	}
	return *c.DurationSteps
}

// MeanSimilarity converts the nullable per-offset means into a dense
// series, substituting NaN for null while keeping every position.
func (s *PerturbSummary) MeanSimilarity() []float64 {
	out := make([]float64, len(s.SimilarityByOffset.Mean))
	for i, v := range s.SimilarityByOffset.Mean {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	return out
}

// LoadPerturbSummary reads a condition summary. Summaries are optional,
// so an empty path or missing file returns nil without error.
func LoadPerturbSummary(path string) (*PerturbSummary, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("[artifact] skipping perturb summary, file not found: %s", path)
		return nil, nil
	}
	var s PerturbSummary
	if err := readJSON(path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// PerturbTrial is one row of a perturbation trials CSV.
type PerturbTrial struct {
	RecoverySteps int
}

// LoadPerturbTrials reads a headered trials CSV. The file is optional;
// rows whose recoverySteps field does not parse are dropped from that
// statistic rather than failing the load.
func LoadPerturbTrials(path string) ([]PerturbTrial, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		log.Printf("[artifact] skipping perturb trials, file not found: %s", path)
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Map header names to column indices; recoverySteps defaults to the
	// first column when the header is absent.
	columns := make(map[string]int)
	for i, cell := range records[0] {
		columns[strings.ToLower(strings.TrimSpace(cell))] = i
	}
	col, ok := columns["recoverysteps"]
	if !ok {
		col = 0
	}

	var trials []PerturbTrial
	dropped := 0
	for _, record := range records[1:] {
		if col >= len(record) {
			dropped++
			continue
		}
		raw := strings.TrimSpace(record[col])
		if raw == "" {
			dropped++
			continue
		}
		// The producer writes the column as floats ("12.0").
		steps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			dropped++
			continue
		}
		trials = append(trials, PerturbTrial{RecoverySteps: int(steps)})
	}
	if dropped > 0 {
		log.Printf("[artifact] %s: dropped %d rows without parsable recoverySteps", path, dropped)
	}
	return trials, nil
}

// DeriveLabel names a perturbation condition from its file path: the
// parent directory, or the grandparent when files live under a "perturb"
// subdirectory. Empty paths fall back to the given default.
func DeriveLabel(path, fallback string) string {
	if path == "" {
		return fallback
	}
	parent := filepath.Base(filepath.Dir(path))
	if parent == "perturb" {
		if grand := filepath.Base(filepath.Dir(filepath.Dir(path))); grand != "." && grand != string(filepath.Separator) {
			return grand
		}
		return fallback
	}
	if parent == "." || parent == string(filepath.Separator) {
		return fallback
	}
	return parent
}
