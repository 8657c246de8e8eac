package topology

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"attractor-report/internal/figure"
)

// RenderMatrix writes the raw weight matrix as a heatmap to
// vis_matrix_<kind>.png in outDir.
func RenderMatrix(net *Network, outDir string) error {
	fig := figure.New(6, 5)
	fig.Title.Text = fmt.Sprintf("%s topology: weight matrix", net.Kind)
	fig.X.Label.Text = "Neuron index"
	fig.Y.Label.Text = "Neuron index"

	cm := moreland.Kindlmann()
	cm.SetMin(0)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(figure.NewMatrixGrid(net.Weights), cm.Palette(255))
	fig.Add(hm)

	base := "vis_matrix_" + strings.ToLower(string(net.Kind))
	if err := fig.SaveAll(outDir, base, []string{"png"}); err != nil {
		return err
	}
	log.Printf("[topology] rendered %s weight matrix", net.Kind)
	return nil
}

// RenderGraph thresholds the network into a graph, lays it out with the
// spring simulation, and writes vis_graph_<kind>.png: gray edges under
// one scatter per digit group so the legend lists all ten digits.
func RenderGraph(net *Network, outDir string) error {
	g, err := BuildGraph(net)
	if err != nil {
		return fmt.Errorf("build %s graph: %w", net.Kind, err)
	}
	pos, err := SpringLayout(g, len(net.Weights))
	if err != nil {
		return fmt.Errorf("layout %s graph: %w", net.Kind, err)
	}
	edges, err := g.Edges()
	if err != nil {
		return fmt.Errorf("list %s edges: %w", net.Kind, err)
	}

	fig := figure.New(8, 6.4)
	fig.Title.Text = fmt.Sprintf("%s topology (force-directed)", net.Kind)
	fig.HideAxes()

	seg := &edgeSegments{
		pos:   pos,
		color: color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x1a},
		width: vg.Points(0.5),
	}
	for _, e := range edges {
		seg.edges = append(seg.edges, [2]int{e.Source, e.Target})
	}
	fig.Add(seg)

	for d := 0; d < net.Digits; d++ {
		var pts plotter.XYs
		for i, pref := range net.Preferences {
			if pref == d {
				pts = append(pts, plotter.XY{X: pos[i].X, Y: pos[i].Y})
			}
		}
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("digit %d scatter: %w", d, err)
		}
		sc.GlyphStyle.Color = figure.DigitColors[d%len(figure.DigitColors)]
		sc.GlyphStyle.Radius = vg.Points(2.5)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		fig.Add(sc)
		fig.Legend.Add(fmt.Sprintf("digit %d", d), sc)
	}
	fig.Legend.Top = true

	base := "vis_graph_" + strings.ToLower(string(net.Kind))
	if err := fig.SaveAll(outDir, base, []string{"png"}); err != nil {
		return err
	}
	log.Printf("[topology] rendered %s graph (%d edges)", net.Kind, len(edges))
	return nil
}

// edgeSegments draws every thresholded connection as one straight gray
// segment. A single plotter keeps the draw pass cheap even with a few
// thousand edges.
type edgeSegments struct {
	pos   []XY
	edges [][2]int
	color color.Color
	width vg.Length
}

func (e *edgeSegments) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	sty := draw.LineStyle{Color: e.color, Width: e.width}
	for _, ed := range e.edges {
		a, b := e.pos[ed[0]], e.pos[ed[1]]
		c.StrokeLine2(sty, trX(a.X), trY(a.Y), trX(b.X), trY(b.Y))
	}
}

func (e *edgeSegments) DataRange() (xmin, xmax, ymin, ymax float64) {
	xys := make(plotter.XYs, len(e.pos))
	for i, p := range e.pos {
		xys[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return plotter.XYRange(xys)
}
