package board

// Direction is a unit step along one of the four line axes.
type Direction struct {
	DRow, DCol int
}

// Directions lists horizontal, vertical, diagonal and anti-diagonal steps.
var Directions = [4]Direction{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// ForEachLine calls fn once for every maximal line on the board: each row,
// each column, and every diagonal in both orientations (offsets -(dim-1)
// through dim-1). The slice passed to fn is reused between calls.
func (g *GameBoard) ForEachLine(fn func(line []Cell)) {
	n := g.dim
	buf := make([]Cell, n)
	for i := 0; i < n; i++ {
		fn(g.squares[i*n : (i+1)*n])
		for r := 0; r < n; r++ {
			buf[r] = g.squares[r*n+i]
		}
		fn(buf)
	}
	for k := -(n - 1); k < n; k++ {
		fn(g.diagonal(k, buf))
		fn(g.antiDiagonal(k, buf))
	}
}

// diagonal returns the cells (i, i+k) for every i that keeps them on the
// board.
func (g *GameBoard) diagonal(k int, buf []Cell) []Cell {
	line := buf[:0]
	for r := 0; r < g.dim; r++ {
		c := r + k
		if c < 0 || c >= g.dim {
			continue
		}
		line = append(line, g.squares[g.idx(r, c)])
	}
	return line
}

// antiDiagonal is the diagonal of the horizontally mirrored board:
// cells (i, dim-1-(i+k)).
func (g *GameBoard) antiDiagonal(k int, buf []Cell) []Cell {
	line := buf[:0]
	for r := 0; r < g.dim; r++ {
		c := g.dim - 1 - (r + k)
		if c < 0 || c >= g.dim {
			continue
		}
		line = append(line, g.squares[g.idx(r, c)])
	}
	return line
}

// RunLength counts contiguous cells equal to c starting one step away from
// (row, col) in direction d.
func (g *GameBoard) RunLength(row, col int, d Direction, c Cell) int {
	count := 0
	r, cl := row+d.DRow, col+d.DCol
	for g.InBounds(r, cl) && g.GetCell(r, cl) == c {
		count++
		r += d.DRow
		cl += d.DCol
	}
	return count
}
