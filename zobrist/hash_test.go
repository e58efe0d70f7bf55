package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
)

func TestToggleMatchesFullHash(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(15)

	b := board.NewGameBoard(15)
	h := z.Hash(b.Squares())
	is.Equal(h, uint64(0))

	b.SetCell(7, 7, board.Black)
	h1 := z.ToggleStone(h, 7, 7, board.Black)
	is.Equal(h1, z.Hash(b.Squares()))

	b.SetCell(7, 8, board.White)
	h2 := z.ToggleStone(h1, 7, 8, board.White)
	is.Equal(h2, z.Hash(b.Squares()))

	// unplay in reverse order
	h3 := z.ToggleStone(h2, 7, 8, board.White)
	is.Equal(h3, h1)
	h4 := z.ToggleStone(h3, 7, 7, board.Black)
	is.Equal(h4, h)
}

func TestColorMatters(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize(9)
	is.True(z.ToggleStone(0, 4, 4, board.Black) != z.ToggleStone(0, 4, 4, board.White))
}

func TestTranspositionsHashEqual(t *testing.T) {
	is := is.New(t)
	z := ForDim(15)
	a := z.ToggleStone(z.ToggleStone(0, 1, 1, board.Black), 2, 2, board.White)
	b := z.ToggleStone(z.ToggleStone(0, 2, 2, board.White), 1, 1, board.Black)
	is.Equal(a, b)
	is.True(ForDim(15) == z)
	is.True(ForDim(9) != z)
}
