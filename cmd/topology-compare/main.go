// Command topology-compare generates the Ring vs Snake connectivity
// figures: a weight-matrix heatmap and a force-directed graph view for
// each topology, written to the current directory.
package main

import (
	"log"

	"attractor-report/internal/topology"
)

const (
	nNeurons = 200
	nDigits  = 10
	seed     = 7
)

func main() {
	log.Printf("[main] generating topology comparison (%d neurons, %d digits)", nNeurons, nDigits)

	for _, kind := range []topology.Kind{topology.Snake, topology.Ring} {
		net := topology.Generate(kind, nNeurons, nDigits, seed)
		if err := topology.RenderMatrix(net, "."); err != nil {
			log.Fatalf("[main] %s matrix: %v", kind, err)
		}
		if err := topology.RenderGraph(net, "."); err != nil {
			log.Fatalf("[main] %s graph: %v", kind, err)
		}
	}

	log.Printf("[main] done")
}
