package figure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixGridRendersRowZeroOnTop(t *testing.T) {
	m := [][]float64{
		{1, 2},
		{3, 4},
	}
	g := NewMatrixGrid(m)

	cols, rows := g.Dims()
	require.Equal(t, 2, cols)
	require.Equal(t, 2, rows)

	// Grid row 0 is the bottom, so the matrix's last row lands there.
	assert.Equal(t, 3.0, g.Z(0, 0))
	assert.Equal(t, 4.0, g.Z(1, 0))
	assert.Equal(t, 1.0, g.Z(0, 1))
	assert.Equal(t, 2.0, g.Z(1, 1))
}

func TestDenseGridCellCenters(t *testing.T) {
	g := NewDenseGrid([][]float64{{1, 2}, {3, 4}}, 0, 10, 0, 4)
	assert.Equal(t, 2.5, g.X(0))
	assert.Equal(t, 7.5, g.X(1))
	assert.Equal(t, 1.0, g.Y(0))
	assert.Equal(t, 3.0, g.Y(1))
}
