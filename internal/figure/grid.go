package figure

// DenseGrid is a row-major value grid with a linear coordinate extent,
// implementing plotter.GridXYZ. Row 0 sits at the bottom of the extent;
// callers that want matrix orientation (row 0 on top) flip before
// constructing.
type DenseGrid struct {
	rows, cols     int
	vals           []float64
	x0, x1, y0, y1 float64
}

// NewDenseGrid builds a grid over [x0,x1]×[y0,y1] from bottom-up rows.
// All rows must share a length; ragged input panics the same way an
// index error would, since the producer never emits ragged matrices.
func NewDenseGrid(rows [][]float64, x0, x1, y0, y1 float64) *DenseGrid {
	g := &DenseGrid{rows: len(rows), x0: x0, x1: x1, y0: y0, y1: y1}
	if g.rows > 0 {
		g.cols = len(rows[0])
	}
	g.vals = make([]float64, 0, g.rows*g.cols)
	for _, row := range rows {
		g.vals = append(g.vals, row...)
	}
	return g
}

// NewMatrixGrid builds a unit-spaced grid in matrix orientation: element
// [0][0] renders top-left, matching how confusion matrices read.
func NewMatrixGrid(m [][]float64) *DenseGrid {
	flipped := make([][]float64, len(m))
	for i := range m {
		flipped[i] = m[len(m)-1-i]
	}
	cols := 0
	if len(m) > 0 {
		cols = len(m[0])
	}
	return NewDenseGrid(flipped, -0.5, float64(cols)-0.5, -0.5, float64(len(m))-0.5)
}

func (g *DenseGrid) Dims() (int, int) { return g.cols, g.rows }

func (g *DenseGrid) Z(c, r int) float64 { return g.vals[r*g.cols+c] }

func (g *DenseGrid) X(c int) float64 {
	if g.cols == 1 {
		return (g.x0 + g.x1) / 2
	}
	d := (g.x1 - g.x0) / float64(g.cols)
	return g.x0 + (float64(c)+0.5)*d
}

func (g *DenseGrid) Y(r int) float64 {
	if g.rows == 1 {
		return (g.y0 + g.y1) / 2
	}
	d := (g.y1 - g.y0) / float64(g.rows)
	return g.y0 + (float64(r)+0.5)*d
}
