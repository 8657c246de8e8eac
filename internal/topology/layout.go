package topology

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/dominikbraun/graph"
)

// edgeThreshold is the minimum weight for a connection to appear in the
// force-directed graph view.
const edgeThreshold = 0.4

// Spring layout parameters. Fixed so repeated runs of the comparison
// produce identical figures.
const (
	layoutSeed       = 42
	layoutIterations = 150
	layoutK          = 0.15
)

// XY is a laid-out node position.
type XY struct {
	X, Y float64
}

// BuildGraph thresholds the weight matrix into an undirected graph with
// one vertex per neuron. Self-loops are skipped.
func BuildGraph(net *Network) (graph.Graph[int, int], error) {
	g := graph.New(graph.IntHash)
	n := len(net.Weights)
	for i := 0; i < n; i++ {
		if err := g.AddVertex(i); err != nil {
			return nil, fmt.Errorf("add vertex %d: %w", i, err)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if net.Weights[i][j] <= edgeThreshold {
				continue
			}
			if err := g.AddEdge(i, j); err != nil {
				return nil, fmt.Errorf("add edge %d-%d: %w", i, j, err)
			}
		}
	}
	return g, nil
}

// SpringLayout places the graph's n vertices with a Fruchterman-Reingold
// simulation: neighbors attract, all pairs repel, displacement capped by
// a linearly cooling temperature. The seeded initial placement makes the
// layout deterministic.
func SpringLayout(g graph.Graph[int, int], n int) ([]XY, error) {
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("adjacency map: %w", err)
	}

	rng := rand.New(rand.NewSource(layoutSeed))
	pos := make([]XY, n)
	for i := range pos {
		pos[i] = XY{X: rng.Float64() - 0.5, Y: rng.Float64() - 0.5}
	}

	k := layoutK
	disp := make([]XY, n)
	for iter := 0; iter < layoutIterations; iter++ {
		for i := range disp {
			disp[i] = XY{}
		}

		// Repulsion between every pair.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := pos[i].X - pos[j].X
				dy := pos[i].Y - pos[j].Y
				d := math.Hypot(dx, dy)
				if d < 1e-9 {
					d = 1e-9
					dx = (rng.Float64() - 0.5) * 1e-4
					dy = (rng.Float64() - 0.5) * 1e-4
				}
				f := k * k / d
				disp[i].X += dx / d * f
				disp[i].Y += dy / d * f
				disp[j].X -= dx / d * f
				disp[j].Y -= dy / d * f
			}
		}

		// Attraction along edges, visited in vertex order so the
		// floating-point accumulation is reproducible.
		for i := 0; i < n; i++ {
			nbrs := make([]int, 0, len(adj[i]))
			for j := range adj[i] {
				if j > i {
					nbrs = append(nbrs, j)
				}
			}
			sort.Ints(nbrs)
			for _, j := range nbrs {
				dx := pos[i].X - pos[j].X
				dy := pos[i].Y - pos[j].Y
				d := math.Hypot(dx, dy)
				if d < 1e-9 {
					continue
				}
				f := d * d / k
				disp[i].X -= dx / d * f
				disp[i].Y -= dy / d * f
				disp[j].X += dx / d * f
				disp[j].Y += dy / d * f
			}
		}

		temp := 0.1 * (1 - float64(iter)/float64(layoutIterations))
		for i := 0; i < n; i++ {
			d := math.Hypot(disp[i].X, disp[i].Y)
			if d < 1e-9 {
				continue
			}
			step := math.Min(d, temp)
			pos[i].X += disp[i].X / d * step
			pos[i].Y += disp[i].Y / d * step
		}
	}

	return pos, nil
}
