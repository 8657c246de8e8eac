package artifact

// ProbePayload lists parameter-search candidates in producer order.
type ProbePayload struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one parameterized trial. Metrics and Physics are loose
// maps on purpose: the probe schema has grown fields over time and the
// renderers default absent ones to zero.
type Candidate struct {
	Metrics map[string]float64 `json:"metrics"`
	Physics map[string]float64 `json:"physics"`
}

// Metric returns the named metric, or 0 when the candidate lacks it.
func (c Candidate) Metric(name string) float64 {
	return c.Metrics[name]
}

// Physic returns the named physical parameter, or 0 when absent.
func (c Candidate) Physic(name string) float64 {
	return c.Physics[name]
}

// LoadProbe reads a probe payload. Required input, hard error on failure.
func LoadProbe(path string) (*ProbePayload, error) {
	var p ProbePayload
	if err := readJSON(path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
