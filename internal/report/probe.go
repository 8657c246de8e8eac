package report

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"attractor-report/internal/artifact"
	"attractor-report/internal/figure"
)

const heatBins = 6

// BinnedMean averages values over a bins×bins grid spanning the ranges of
// x and y. Cells without samples stay at 0: the denominator is clamped to
// one instead of special-casing empties downstream.
func BinnedMean(x, y, values []float64, bins int) (grid [][]float64, xEdges, yEdges []float64) {
	xEdges = linspace(minOf(x), maxOf(x), bins+1)
	yEdges = linspace(minOf(y), maxOf(y), bins+1)

	grid = make([][]float64, bins)
	counts := make([][]float64, bins)
	for i := range grid {
		grid[i] = make([]float64, bins)
		counts[i] = make([]float64, bins)
	}
	for i := range values {
		xi := clampBin(binIndex(xEdges, x[i]), bins)
		yi := clampBin(binIndex(yEdges, y[i]), bins)
		grid[yi][xi] += values[i]
		counts[yi][xi]++
	}
	for yi := range grid {
		for xi := range grid[yi] {
			n := counts[yi][xi]
			if n == 0 {
				n = 1
			}
			grid[yi][xi] /= n
		}
	}
	return grid, xEdges, yEdges
}

// binIndex is a rightmost-insertion search minus one: the number of edges
// at or below v, less one.
func binIndex(edges []float64, v float64) int {
	i := 0
	for i < len(edges) && edges[i] <= v {
		i++
	}
	return i - 1
}

func clampBin(i, bins int) int {
	if i < 0 {
		return 0
	}
	if i > bins-1 {
		return bins - 1
	}
	return i
}

// PlotProbe renders the two candidate scatters and the binned accuracy
// heatmap for the top-K candidates in producer order.
func PlotProbe(payload *artifact.ProbePayload, opts Options, topK int) error {
	candidates := payload.Candidates
	if topK < 0 {
		topK = 0
	}
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	if len(candidates) == 0 {
		return nil
	}

	n := len(candidates)
	scores := make([]float64, n)
	acc := make([]float64, n)
	sustain := make([]float64, n)
	aborted := make([]float64, n)
	tailSilent := make([]float64, n)
	kInhib := make([]float64, n)
	vTh := make([]float64, n)
	for i, c := range candidates {
		scores[i] = c.Metric("score")
		acc[i] = c.Metric("acc")
		sustain[i] = c.Metric("sustain")
		aborted[i] = c.Metric("abortedFrac")
		tailSilent[i] = c.Metric("tailSilent")
		kInhib[i] = c.Physic("k_inhib")
		vTh[i] = c.Physic("v_th")
	}

	if err := plotColoredScatter(acc, scores, aborted,
		fmt.Sprintf("Probe scores (%s)", opts.Topology), "Accuracy", "Score", "aborted frac",
		"probe_score_scatter_"+opts.Topology, opts); err != nil {
		return err
	}
	if err := plotColoredScatter(acc, tailSilent, sustain,
		fmt.Sprintf("Silence vs accuracy (%s)", opts.Topology), "Accuracy", "Tail silent frac", "sustain score",
		"probe_accuracy_tailSilent_"+opts.Topology, opts); err != nil {
		return err
	}

	grid, xEdges, yEdges := BinnedMean(kInhib, vTh, acc, heatBins)
	fig := figure.New(4.5, 3.5)
	fig.Title.Text = fmt.Sprintf("Accuracy heatmap (%s)", opts.Topology)
	fig.X.Label.Text = "k_inhib"
	fig.Y.Label.Text = "v_th"
	dense := figure.NewDenseGrid(grid, xEdges[0], xEdges[len(xEdges)-1], yEdges[0], yEdges[len(yEdges)-1])
	cm := figure.HeatColorMap()
	cm.SetMin(0)
	cm.SetMax(1)
	fig.Add(plotter.NewHeatMap(dense, cm.Palette(64)))
	return fig.SaveAll(opts.OutDir, "probe_heat_k_inhib_vs_v_th_"+opts.Topology, formatsOrPNG(opts.Formats))
}

// plotColoredScatter draws y against x with each point colored by the
// third variable; the legend names the color encoding.
func plotColoredScatter(x, y, colorBy []float64, title, xLabel, yLabel, colorLabel, base string, opts Options) error {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	colors := figure.MapColors(colorBy, figure.HeatColorMap())
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: colors[i], Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
	}

	fig := figure.New(4.5, 3.5)
	fig.Title.Text = title
	fig.X.Label.Text = xLabel
	fig.Y.Label.Text = yLabel
	fig.Add(sc)
	fig.Legend.Add("color: "+colorLabel, sc)
	fig.Legend.Top = true
	return fig.SaveAll(opts.OutDir, base, formatsOrPNG(opts.Formats))
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

func minOf(v []float64) float64 {
	m := v[0]
	for _, x := range v {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(v []float64) float64 {
	m := v[0]
	for _, x := range v {
		if x > m {
			m = x
		}
	}
	return m
}
