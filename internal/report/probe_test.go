package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinnedMeanEmptyCellsAreZero(t *testing.T) {
	// Two samples in opposite corners of a 2x2 grid.
	x := []float64{0, 10}
	y := []float64{0, 10}
	values := []float64{0.4, 0.8}

	grid, xEdges, yEdges := BinnedMean(x, y, values, 2)
	require.Len(t, grid, 2)
	require.Len(t, xEdges, 3)
	require.Len(t, yEdges, 3)

	assert.Equal(t, 0.4, grid[0][0])
	assert.Equal(t, 0.8, grid[1][1])
	assert.Equal(t, 0.0, grid[0][1], "cell with no samples is exactly zero")
	assert.Equal(t, 0.0, grid[1][0], "cell with no samples is exactly zero")
}

func TestBinnedMeanAveragesWithinCell(t *testing.T) {
	x := []float64{1, 2, 9}
	y := []float64{1, 2, 9}
	values := []float64{0.2, 0.6, 1.0}

	grid, _, _ := BinnedMean(x, y, values, 2)
	assert.InDelta(t, 0.4, grid[0][0], 1e-12, "two samples in the low cell average")
	assert.InDelta(t, 1.0, grid[1][1], 1e-12)
}

func TestBinnedMeanTopEdgeClampsIntoLastBin(t *testing.T) {
	x := []float64{0, 5, 10}
	y := []float64{0, 5, 10}
	values := []float64{1, 1, 1}

	grid, _, _ := BinnedMean(x, y, values, 2)
	assert.Equal(t, 1.0, grid[1][1], "the max value lands in the last bin, not out of range")
	assert.Equal(t, 1.0, grid[0][0])
}

func TestBinnedMeanDegenerateRangeCollapsesToLastBin(t *testing.T) {
	// A constant axis gives identical edges; clamping still keeps every
	// sample inside the grid, in the last bin along that axis.
	x := []float64{0, 5, 10}
	y := []float64{0, 0, 0}
	values := []float64{1, 1, 1}

	grid, _, _ := BinnedMean(x, y, values, 2)
	assert.Equal(t, 1.0, grid[1][0])
	assert.Equal(t, 1.0, grid[1][1])
	assert.Equal(t, 0.0, grid[0][0])
	assert.Equal(t, 0.0, grid[0][1])
}
