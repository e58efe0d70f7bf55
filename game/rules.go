package game

import "github.com/domino14/gomoku/board"

// WinLength is the number of stones in a row that wins. Longer lines
// (overlines) win too.
const WinLength = 5

// IsValidMove is true if the coordinates are on the board and empty.
func (g *Game) IsValidMove(row, col int) bool {
	return g.board.IsEmpty(row, col)
}

func (g *Game) IsFull() bool {
	return g.board.IsFull()
}

// CheckWin reports whether the stone at (row, col) is part of a line of at
// least WinLength stones of its color in any of the four directions.
func (g *Game) CheckWin(row, col int) bool {
	if !g.board.InBounds(row, col) {
		return false
	}
	player := g.board.GetCell(row, col)
	if player == board.Empty {
		return false
	}
	for _, d := range board.Directions {
		count := 1 +
			g.board.RunLength(row, col, d, player) +
			g.board.RunLength(row, col, board.Direction{DRow: -d.DRow, DCol: -d.DCol}, player)
		if count >= WinLength {
			return true
		}
	}
	return false
}

// FirstEmpty returns the first empty cell in row-major order.
func (g *Game) FirstEmpty() (row, col int, ok bool) {
	n := g.board.Dim()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if g.board.GetCell(r, c) == board.Empty {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
