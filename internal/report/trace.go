package report

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"attractor-report/internal/artifact"
	"attractor-report/internal/figure"
)

const maxRawTraces = 10

// PlotTraces overlays the raw similarity traces with their cross-trace
// mean and a ±1 standard deviation band. A nil or empty trace set is an
// empty render.
func PlotTraces(traces *artifact.TraceSet, opts Options) error {
	if traces == nil {
		return nil
	}
	sims := traces.Similarities()
	if len(sims) == 0 {
		return nil
	}

	// Trials occasionally truncate; aggregate over the common prefix.
	steps := len(sims[0])
	for _, s := range sims {
		if len(s) < steps {
			steps = len(s)
		}
	}
	mean := make([]float64, steps)
	std := make([]float64, steps)
	for t := 0; t < steps; t++ {
		sum := 0.0
		for _, s := range sims {
			sum += s[t]
		}
		m := sum / float64(len(sims))
		mean[t] = m
		varSum := 0.0
		for _, s := range sims {
			d := s[t] - m
			varSum += d * d
		}
		std[t] = math.Sqrt(varSum / float64(len(sims)))
	}

	fig := figure.New(6, 4)
	fig.X.Label.Text = "Time step (t)"
	fig.Y.Label.Text = "Similarity to target"
	fig.Y.Min = -0.1
	fig.Y.Max = 1.1

	band, err := plotter.NewPolygon(bandXYs(mean, std))
	if err != nil {
		return err
	}
	band.Color = color.NRGBA{R: figure.Blue.R, G: figure.Blue.G, B: figure.Blue.B, A: 0x4d}
	band.LineStyle.Width = 0
	fig.Add(band)

	for i := 0; i < len(sims) && i < maxRawTraces; i++ {
		raw, err := plotter.NewLine(indexedXYs(sims[i][:steps]))
		if err != nil {
			return err
		}
		raw.Color = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x33}
		raw.Width = vg.Points(0.5)
		fig.Add(raw)
	}

	meanLine, err := plotter.NewLine(indexedXYs(mean))
	if err != nil {
		return err
	}
	meanLine.Color = figure.Blue
	meanLine.Width = vg.Points(2)
	fig.Add(meanLine)
	fig.Legend.Add("Mean similarity", meanLine)
	fig.Legend.Top = true

	if steps > 1 {
		fig.Add(guideLine(0, float64(steps-1), 1.0))
	}

	topo := traces.Meta.Topology
	if topo == "" {
		topo = "unknown"
	}
	fig.Title.Text = fmt.Sprintf("Attractor stability (%s, t=%d)", topo, traces.Meta.TTrans)

	base := "trace_dynamics_" + topo
	if err := fig.SaveAll(opts.OutDir, base, formatsOrPNG(opts.Formats)); err != nil {
		return err
	}
	log.Printf("[report] generated trace plot: %s", base)
	return nil
}

// bandXYs walks the upper envelope forward and the lower one back so the
// polygon closes around the band.
func bandXYs(mean, std []float64) plotter.XYs {
	n := len(mean)
	pts := make(plotter.XYs, 0, 2*n)
	for i := 0; i < n; i++ {
		pts = append(pts, plotter.XY{X: float64(i), Y: mean[i] + std[i]})
	}
	for i := n - 1; i >= 0; i-- {
		pts = append(pts, plotter.XY{X: float64(i), Y: mean[i] - std[i]})
	}
	return pts
}
