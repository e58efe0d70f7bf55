package board

import (
	"fmt"
	"strings"
)

// ColumnLabel is the letter used for a column in coordinates and display.
func ColumnLabel(col int) string {
	return string(rune('A' + col))
}

// ToDisplayText renders the board with column letters across the top and
// 1-based row numbers down the side. The cell at (markRow, markCol), if on
// the board, is bracketed to highlight the last move.
func (g *GameBoard) ToDisplayText(markRow, markCol int) string {
	var str strings.Builder
	str.WriteString("   ")
	for c := 0; c < g.dim; c++ {
		str.WriteString(" " + ColumnLabel(c) + " ")
	}
	str.WriteString("\n")
	for r := 0; r < g.dim; r++ {
		str.WriteString(fmt.Sprintf("%2d ", r+1))
		for c := 0; c < g.dim; c++ {
			sym := g.GetCell(r, c).Symbol()
			if r == markRow && c == markCol {
				str.WriteString("[" + string(sym) + "]")
			} else {
				str.WriteString(" " + string(sym) + " ")
			}
		}
		str.WriteString("\n")
	}
	return str.String()
}

// SetFromStrings fills the board from rows of display symbols ('.', 'X',
// 'O'). It bypasses the game's history and hash, so it is for board-level tests.
func (g *GameBoard) SetFromStrings(rows []string) error {
	if len(rows) != g.dim {
		return fmt.Errorf("expected %d rows, got %d", g.dim, len(rows))
	}
	g.Clear()
	for r, row := range rows {
		if len(row) != g.dim {
			return fmt.Errorf("row %d: expected %d cells, got %d", r+1, g.dim, len(row))
		}
		for c := 0; c < g.dim; c++ {
			switch row[c] {
			case '.':
			case 'X':
				g.SetCell(r, c, Black)
			case 'O':
				g.SetCell(r, c, White)
			default:
				return fmt.Errorf("row %d: unknown symbol %q", r+1, row[c])
			}
		}
	}
	return nil
}
