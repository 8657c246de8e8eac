package report

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"attractor-report/internal/artifact"
	"attractor-report/internal/figure"
)

// plotConfusion renders one confusion channel as a heatmap with per-cell
// value labels. An empty matrix is an empty render, not an error.
func plotConfusion(m artifact.ConfusionMatrix, title, base string, opts Options) error {
	data := m.Data()
	if data == nil {
		return nil
	}

	fig := figure.New(4, 3)
	fig.Title.Text = title
	fig.X.Label.Text = "Predicted"
	fig.Y.Label.Text = "Actual"

	fig.Add(plotter.NewHeatMap(figure.NewMatrixGrid(data), figure.BluesPalette(9)))

	rows := len(data)
	var pts plotter.XYs
	var labels []string
	for i, row := range data {
		for j, v := range row {
			// Matrix row 0 reads from the top.
			pts = append(pts, plotter.XY{X: float64(j), Y: float64(rows - 1 - i)})
			labels = append(labels, fmt.Sprintf("%.2f", v))
		}
	}
	cellLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return fmt.Errorf("error labeling confusion cells: %w", err)
	}
	fig.Add(cellLabels)

	return fig.SaveAll(opts.OutDir, base, formatsOrPNG(opts.Formats))
}

// PlotRun renders the per-phase confusion heatmaps and the final
// accuracy/aborted bar chart for one run payload.
func PlotRun(payload *artifact.RunPayload, opts Options) error {
	suffix := payload.Config.Suffix()

	if payload.PhaseC != nil && payload.PhaseC.Confusion != nil {
		c := payload.PhaseC.Confusion
		if err := plotConfusion(c.Readout, fmt.Sprintf("Phase C readout (%s)", opts.Topology),
			"confusion_phaseC_readout_"+suffix, opts); err != nil {
			return err
		}
		if err := plotConfusion(c.Proto, fmt.Sprintf("Phase C proto (%s)", opts.Topology),
			"confusion_phaseC_proto_"+suffix, opts); err != nil {
			return err
		}
	}
	if payload.PhaseB != nil && payload.PhaseB.Confusion != nil {
		c := payload.PhaseB.Confusion
		if err := plotConfusion(c.Readout, fmt.Sprintf("Phase B readout (%s)", opts.Topology),
			"confusion_phaseB_readout_"+suffix, opts); err != nil {
			return err
		}
		if err := plotConfusion(c.Proto, fmt.Sprintf("Phase B proto (%s)", opts.Topology),
			"confusion_phaseB_proto_"+suffix, opts); err != nil {
			return err
		}
	}

	var acc, aborted float64
	if payload.PhaseC != nil {
		acc = payload.PhaseC.FinalAcc
		aborted = payload.PhaseC.AbortedFrac
	}
	return plotPhaseMetrics(acc, aborted, suffix, opts)
}

// plotPhaseMetrics draws the two-bar FinalAcc vs Aborted chart with value
// labels above each bar.
func plotPhaseMetrics(acc, aborted float64, suffix string, opts Options) error {
	fig := figure.New(4, 3)
	fig.Title.Text = fmt.Sprintf("Phase C metrics (%s)", opts.Topology)

	accBar, err := plotter.NewBarChart(plotter.Values{acc}, vg.Points(30))
	if err != nil {
		return err
	}
	accBar.Color = figure.Blue
	accBar.LineStyle.Width = 0

	abortBar, err := plotter.NewBarChart(plotter.Values{aborted}, vg.Points(30))
	if err != nil {
		return err
	}
	abortBar.Color = figure.Orange
	abortBar.LineStyle.Width = 0
	abortBar.XMin = 1

	fig.Add(accBar, abortBar)
	fig.NominalX("FinalAcc", "Aborted")

	yMax := 1.0
	if acc > yMax {
		yMax = acc
	}
	if aborted > yMax {
		yMax = aborted
	}
	fig.Y.Min = 0
	fig.Y.Max = yMax * 1.1

	barLabels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: 0, Y: acc}, {X: 1, Y: aborted}},
		Labels: []string{fmt.Sprintf("%.3f", acc), fmt.Sprintf("%.3f", aborted)},
	})
	if err != nil {
		return err
	}
	fig.Add(barLabels)

	return fig.SaveAll(opts.OutDir, "metrics_phaseC_aborts_"+suffix, formatsOrPNG(opts.Formats))
}
