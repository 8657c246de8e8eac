package report

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"attractor-report/internal/artifact"
	"attractor-report/internal/figure"
)

// PerturbSet is one perturbation condition: a label plus the paths of its
// summary JSON and trials CSV, either of which may be absent.
type PerturbSet struct {
	Label       string
	SummaryPath string
	TrialsPath  string
}

// PlotPerturbation renders the cross-condition recovery charts: mean
// similarity curves, recovery-rate bars, and the recovery-steps
// histogram. Conditions whose files are missing simply contribute
// nothing.
func PlotPerturbation(sets []PerturbSet, opts Options) error {
	type loadedSummary struct {
		label   string
		summary *artifact.PerturbSummary
	}
	type loadedTrials struct {
		label  string
		trials []artifact.PerturbTrial
	}
	var summaries []loadedSummary
	var trialsSets []loadedTrials
	for _, set := range sets {
		summary, err := artifact.LoadPerturbSummary(set.SummaryPath)
		if err != nil {
			return err
		}
		if summary != nil {
			summaries = append(summaries, loadedSummary{set.Label, summary})
		}
		trials, err := artifact.LoadPerturbTrials(set.TrialsPath)
		if err != nil {
			return err
		}
		if len(trials) > 0 {
			trialsSets = append(trialsSets, loadedTrials{set.Label, trials})
		}
	}

	if len(summaries) > 0 {
		fig := figure.New(6.5, 3.8)
		fig.X.Label.Text = "Steps since perturb"
		fig.Y.Label.Text = "Similarity to baseline"
		fig.Y.Min = -0.1
		fig.Y.Max = 1.1
		fig.Add(plotter.NewGrid())

		maxLen := 0
		var titleParts []string
		for i, entry := range summaries {
			values := entry.summary.MeanSimilarity()
			if len(values) == 0 {
				continue
			}
			if len(values) > maxLen {
				maxLen = len(values)
			}
			line, err := plotter.NewLine(xysSkipNaN(values))
			if err != nil {
				return err
			}
			line.Color = seriesColors[i%len(seriesColors)]
			line.Width = vg.Points(1.5)
			fig.Add(line)
			fig.Legend.Add(entry.label, line)
			cfg := entry.summary.Config
			titleParts = append(titleParts, fmt.Sprintf("%s: %s @ t=%d", entry.label, kindOrUnknown(cfg.Kind), cfg.AtStep))
		}

		if len(summaries) == 1 {
			span := math.Max(0.5, float64(summaries[0].summary.Config.Duration()))
			window, err := plotter.NewPolygon(rectXYs(0, span, -0.1, 1.1))
			if err != nil {
				return err
			}
			window.Color = color.NRGBA{R: 0xf5, G: 0x85, B: 0x18, A: 0x33}
			window.LineStyle.Width = 0
			fig.Add(window)
			fig.Legend.Add("Perturb window", window)
		}

		if maxLen > 1 {
			fig.Add(guideLine(0, float64(maxLen-1), 1.0))
		}

		fig.Title.Text = "Perturbation recovery (mean similarity)"
		if len(titleParts) > 0 {
			fig.Title.Text += "\n" + strings.Join(titleParts, "; ")
		}
		if err := fig.SaveAll(opts.OutDir, "perturb_similarity_mean", formatsOrPNG(opts.Formats)); err != nil {
			return err
		}

		var rates []float64
		var labels []string
		for _, entry := range summaries {
			if entry.summary.Metrics.RecoveryRate == nil {
				continue
			}
			rates = append(rates, *entry.summary.Metrics.RecoveryRate)
			labels = append(labels, entry.label)
		}
		if len(rates) > 0 {
			if err := plotRecoveryRates(rates, labels, opts); err != nil {
				return err
			}
		}
	}

	if len(trialsSets) > 0 {
		fig := figure.New(6, 3.4)
		fig.Title.Text = "Recovery steps distribution by condition"
		fig.X.Label.Text = "Recovery steps"
		fig.Y.Label.Text = "Trials"
		fig.Add(plotter.NewGrid())

		drew := false
		for i, entry := range trialsSets {
			steps := make(plotter.Values, 0, len(entry.trials))
			distinct := make(map[int]struct{})
			for _, trial := range entry.trials {
				steps = append(steps, float64(trial.RecoverySteps))
				distinct[trial.RecoverySteps] = struct{}{}
			}
			if len(steps) == 0 {
				continue
			}
			bins := len(distinct)
			if bins < 5 {
				bins = 5
			}
			if bins > 20 {
				bins = 20
			}
			hist, err := plotter.NewHist(steps, bins)
			if err != nil {
				return err
			}
			c := seriesColors[i%len(seriesColors)]
			hist.FillColor = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0x73}
			hist.LineStyle.Color = c
			fig.Add(hist)
			fig.Legend.Add(entry.label, hist)
			drew = true
		}
		if drew {
			fig.Legend.Top = true
			if err := fig.SaveAll(opts.OutDir, "perturb_recovery_steps_hist", formatsOrPNG(opts.Formats)); err != nil {
				return err
			}
		}
	}
	return nil
}

func plotRecoveryRates(rates []float64, labels []string, opts Options) error {
	fig := figure.New(4.8, 3)
	fig.Title.Text = "Recovery rate by condition"
	fig.Y.Label.Text = "Recovery rate"
	fig.Y.Min = 0
	fig.Y.Max = 1

	bars, err := plotter.NewBarChart(plotter.Values(rates), vg.Points(25))
	if err != nil {
		return err
	}
	bars.Color = figure.Green
	bars.LineStyle.Width = 0
	fig.Add(bars)
	fig.NominalX(labels...)

	pts := make(plotter.XYs, len(rates))
	values := make([]string, len(rates))
	for i, r := range rates {
		pts[i] = plotter.XY{X: float64(i), Y: r}
		values[i] = fmt.Sprintf("%.2f", r)
	}
	barLabels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: values})
	if err != nil {
		return err
	}
	fig.Add(barLabels)

	return fig.SaveAll(opts.OutDir, "perturb_recovery_rate", formatsOrPNG(opts.Formats))
}

func kindOrUnknown(kind string) string {
	if kind == "" {
		return "unknown"
	}
	return kind
}

// xysSkipNaN builds drawable points, dropping NaN entries while keeping
// the x position of everything else.
func xysSkipNaN(values []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: v})
	}
	return pts
}

func rectXYs(x0, x1, y0, y1 float64) plotter.XYs {
	return plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// guideLine is a dashed horizontal reference at the given level.
func guideLine(x0, x1, level float64) *plotter.Line {
	line, err := plotter.NewLine(plotter.XYs{{X: x0, Y: level}, {X: x1, Y: level}})
	if err != nil {
		return &plotter.Line{}
	}
	line.Color = figure.Gray
	line.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	return line
}
