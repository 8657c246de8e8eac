package report

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"sort"
	"strings"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"attractor-report/internal/artifact"
	"attractor-report/internal/figure"
)

// DefaultChannel names the series a bare numeric history normalizes into.
const DefaultChannel = "readout"

// Series is one named accuracy-over-trials sequence.
type Series struct {
	Name   string
	Values []float64
}

// NormalizeHistory turns the raw accHistory JSON into named series. The
// producer has emitted three shapes over time: a flat numeric list, a
// mapping with readout/proto keys, and a mapping with only a samples
// list. Anything else yields no data plus a diagnostic note.
func NormalizeHistory(raw json.RawMessage) ([]Series, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, "missing"
	}

	var flat []float64
	if err := json.Unmarshal(raw, &flat); err == nil {
		return []Series{{Name: DefaultChannel, Values: flat}}, ""
	}

	var mapping map[string]json.RawMessage
	if err := json.Unmarshal(raw, &mapping); err != nil {
		return nil, "unsupported format"
	}

	var series []Series
	for _, key := range []string{"readout", "proto"} {
		entry, ok := mapping[key]
		if !ok {
			continue
		}
		var values []float64
		if err := json.Unmarshal(entry, &values); err == nil {
			series = append(series, Series{Name: key, Values: values})
		}
	}
	if len(series) == 0 {
		if entry, ok := mapping["samples"]; ok {
			var values []float64
			if err := json.Unmarshal(entry, &values); err == nil {
				return []Series{{Name: DefaultChannel, Values: values}}, ""
			}
		}
	}
	if len(series) > 0 {
		return series, ""
	}

	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return nil, "unknown keys: " + strings.Join(keys, ", ")
}

// Smooth applies boxcar smoothing with zero-padded edges. Series shorter
// than 3 points, or a degenerate window, pass through unchanged.
func Smooth(values []float64, window int) []float64 {
	n := len(values)
	if n < 3 || window <= 1 {
		return values
	}
	offset := (window - 1) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		k := i + offset
		lo := k - window + 1
		if lo < 0 {
			lo = 0
		}
		hi := k
		if hi > n-1 {
			hi = n - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(window)
	}
	return out
}

// SmoothWindow is the window-size policy for history overlays.
func SmoothWindow(n int) int {
	w := n / 8
	if w < 3 {
		w = 3
	}
	if w > 25 {
		w = 25
	}
	return w
}

// buildTitle assembles the descriptive chart title from run config.
func buildTitle(topology string, cfg artifact.RunConfig, phaseLabel string) string {
	mode := cfg.Controller.Mode
	if mode == "" {
		mode = "standard"
	}
	sustain := "off"
	if cfg.PhaseBCConfig.SustainGate.Enabled {
		sustain = "on"
	}
	parts := []string{
		fmt.Sprintf("%s | ctrl=%s", topology, mode),
		"sustain=" + sustain,
	}
	if t := cfg.Curriculum.PhaseBC.TTrans; t != nil {
		parts = append(parts, fmt.Sprintf("tTrans=%d", *t))
	}
	if t := cfg.Curriculum.PhaseBC.TailLen; t != nil {
		parts = append(parts, fmt.Sprintf("tailLen=%d", *t))
	}
	if w := cfg.PhaseBCConfig.EvalWindow; w != 0 {
		parts = append(parts, fmt.Sprintf("eval=%d", w))
	}
	if w := cfg.PhaseBCConfig.LearnWindow; w != 0 {
		parts = append(parts, fmt.Sprintf("learn=%d", w))
	}
	parts = append(parts, phaseLabel)
	return strings.Join(parts, " | ")
}

var seriesColors = []color.RGBA{figure.Blue, figure.Orange, figure.Green}

// plotHistorySeries draws the named series with smoothed overlays for
// series long enough to average meaningfully.
func plotHistorySeries(series []Series, title, base string, opts Options) error {
	fig := figure.New(5, 3.2)
	fig.Title.Text = title
	fig.X.Label.Text = "Trial index"
	fig.Y.Label.Text = "Accuracy"
	fig.Y.Min = 0
	fig.Y.Max = 1
	fig.Add(plotter.NewGrid())

	withLegend := len(series) > 1
	for i, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		c := seriesColors[i%len(seriesColors)]
		line, err := plotter.NewLine(indexedXYs(s.Values))
		if err != nil {
			return err
		}
		line.Color = c
		fig.Add(line)
		if withLegend {
			fig.Legend.Add(s.Name, line)
		}

		if len(s.Values) >= 10 {
			smoothed, err := plotter.NewLine(indexedXYs(Smooth(s.Values, SmoothWindow(len(s.Values)))))
			if err != nil {
				return err
			}
			smoothed.Color = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xb3}
			smoothed.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			fig.Add(smoothed)
			if withLegend {
				fig.Legend.Add(s.Name+" (smoothed)", smoothed)
			}
		}
	}
	fig.Legend.Top = true

	return fig.SaveAll(opts.OutDir, base, formatsOrPNG(opts.Formats))
}

// PlotRunHistory renders the per-phase accuracy histories of one run.
func PlotRunHistory(payload *artifact.RunPayload, opts Options) error {
	cfg := payload.Config
	if cfg.Topology == "" {
		cfg.Topology = opts.Topology
	}
	suffix := cfg.Suffix()

	if payload.PhaseC != nil {
		series, note := NormalizeHistory(payload.PhaseC.AccHistory)
		if len(series) > 0 {
			title := buildTitle(cfg.Topology, cfg, "Phase C")
			if err := plotHistorySeries(series, title, "acc_history_phaseC_"+suffix, opts); err != nil {
				return err
			}
		} else if note != "" {
			log.Printf("[report] Phase C history skipped (%s)", note)
		}
	} else {
		log.Printf("[report] Phase C history skipped (missing)")
	}

	if payload.PhaseB != nil {
		series, note := NormalizeHistory(payload.PhaseB.AccHistory)
		if len(series) > 0 {
			title := buildTitle(cfg.Topology, cfg, "Phase B")
			if err := plotHistorySeries(series, title, "acc_history_phaseB_"+suffix, opts); err != nil {
				return err
			}
		} else if note != "" {
			log.Printf("[report] Phase B history skipped (%s)", note)
		}
	}
	return nil
}

func indexedXYs(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	return pts
}
