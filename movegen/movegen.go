// Package movegen generates the candidate moves a search should consider.
// On a crowded enough board every empty cell is a candidate; otherwise only
// cells near existing stones are, which keeps the branching factor small
// enough for interactive play.
package movegen

import (
	"github.com/samber/lo"

	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
)

const (
	// DefaultFocusThreshold is the number of empty cells above which the
	// proximity filter is applied.
	DefaultFocusThreshold = 40
	// DefaultFocusRadius is the half-width of the square neighborhood
	// (5x5 at radius 2) a candidate must share with an existing stone.
	DefaultFocusRadius = 2
)

// MoveGenerator produces candidate moves for the player on turn.
type MoveGenerator interface {
	GenAll(g *game.Game) []move.Move
}

// ProximityGenerator restricts candidates to empty cells near stones while
// the board is mostly empty.
type ProximityGenerator struct {
	threshold int
	radius    int
}

func NewGenerator(threshold, radius int) *ProximityGenerator {
	return &ProximityGenerator{threshold: threshold, radius: radius}
}

func NewDefaultGenerator() *ProximityGenerator {
	return NewGenerator(DefaultFocusThreshold, DefaultFocusRadius)
}

// GenAll returns candidates in row-major order:
//   - the center cell only, if no stone has been played;
//   - otherwise, if more than threshold cells are empty, the empty cells
//     within radius of a stone, unless there are none;
//   - otherwise every empty cell.
func (gen *ProximityGenerator) GenAll(g *game.Game) []move.Move {
	if g.NumMoves() == 0 {
		center := g.Size() / 2
		return []move.Move{{Row: center, Col: center}}
	}
	empties := EmptyCells(g)
	if len(empties) <= gen.threshold {
		return empties
	}
	focused := lo.Filter(empties, func(m move.Move, _ int) bool {
		return gen.nearStone(g, m)
	})
	if len(focused) > 0 {
		return focused
	}
	return empties
}

func (gen *ProximityGenerator) nearStone(g *game.Game, m move.Move) bool {
	b := g.Board()
	for dr := -gen.radius; dr <= gen.radius; dr++ {
		for dc := -gen.radius; dc <= gen.radius; dc++ {
			r, c := m.Row+dr, m.Col+dc
			if b.InBounds(r, c) && !b.IsEmpty(r, c) {
				return true
			}
		}
	}
	return false
}

// EmptyCells lists every empty cell in row-major order.
func EmptyCells(g *game.Game) []move.Move {
	b := g.Board()
	n := b.Dim()
	empties := make([]move.Move, 0, b.NumEmpty())
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.IsEmpty(r, c) {
				empties = append(empties, move.Move{Row: r, Col: c})
			}
		}
	}
	return empties
}
