// Package topology synthesizes and renders the Ring vs Snake attractor
// connectivity comparison. Unlike the report renderers it reads no
// external data: the weight matrices are generated in place.
package topology

import "math/rand"

// Kind selects the neuron-preference layout.
type Kind string

const (
	Ring  Kind = "Ring"
	Snake Kind = "Snake"
)

// Network is a synthesized symmetric attractor weight matrix together
// with each neuron's preferred digit.
type Network struct {
	Kind        Kind
	Digits      int
	Weights     [][]float64
	Preferences []int
}

// Generate builds the weight matrix for nNeurons neurons across nDigits
// preference groups. Same-digit pairs connect near 1.0, digit-distance-1
// pairs near 0.5, everything else 0; distance wraps around for Ring and
// is linear for Snake. Noise is N(0, 0.1) from the seeded source, so a
// fixed seed reproduces the matrix exactly.
func Generate(kind Kind, nNeurons, nDigits int, seed int64) *Network {
	rng := rand.New(rand.NewSource(seed))
	perDigit := nNeurons / nDigits

	prefs := make([]int, nNeurons)
	for i := range prefs {
		d := i / perDigit
		if d > nDigits-1 {
			d = nDigits - 1
		}
		prefs[i] = d
	}

	weights := make([][]float64, nNeurons)
	for i := range weights {
		weights[i] = make([]float64, nNeurons)
		for j := range weights[i] {
			dist := digitDistance(kind, prefs[i], prefs[j], nDigits)
			switch dist {
			case 0:
				weights[i][j] = 1.0 + rng.NormFloat64()*0.1
			case 1:
				weights[i][j] = 0.5 + rng.NormFloat64()*0.1
			}
		}
	}

	return &Network{Kind: kind, Digits: nDigits, Weights: weights, Preferences: prefs}
}

// digitDistance is the preference-space distance: modular (wrap-around)
// for Ring, absolute for Snake.
func digitDistance(kind Kind, a, b, nDigits int) int {
	raw := a - b
	if raw < 0 {
		raw = -raw
	}
	if kind == Ring && nDigits-raw < raw {
		return nDigits - raw
	}
	return raw
}
