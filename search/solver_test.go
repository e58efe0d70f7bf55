package search

import (
	"fmt"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/evaluator"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
)

func play(is *is.I, g *game.Game, moves ...move.Move) {
	for _, m := range moves {
		is.True(g.PlayMove(m.Row, m.Col))
	}
}

func newSolver(strategy Strategy, perspective board.Cell) *Solver {
	return NewSolver(strategy, perspective, movegen.NewDefaultGenerator(),
		evaluator.NewDefaultEvaluator())
}

func TestParseStrategy(t *testing.T) {
	is := is.New(t)
	s, err := ParseStrategy("minimax")
	is.NoErr(err)
	is.Equal(s, Minimax)
	s, err = ParseStrategy("alphabeta")
	is.NoErr(err)
	is.Equal(s, AlphaBeta)
	_, err = ParseStrategy("mcts")
	is.True(err != nil)
}

func TestDepthZeroReturnsEvaluation(t *testing.T) {
	is := is.New(t)
	g := game.NewGame(15)
	play(is, g, move.Move{Row: 7, Col: 7}, move.Move{Row: 0, Col: 0}, move.Move{Row: 7, Col: 8})
	s := newSolver(AlphaBeta, board.Black)
	score, m, ok := s.Decide(g, 0, true)
	is.True(!ok)
	is.True(m.IsNone())
	is.Equal(score, evaluator.NewDefaultEvaluator().Evaluate(g, board.Black))
}

func TestFinishedGameReturnsNoMove(t *testing.T) {
	is := is.New(t)
	g := game.NewGame(4)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			is.True(g.PlayMove(r, c))
		}
	}
	_, m, ok := newSolver(Minimax, board.White).Decide(g, 2, true)
	is.True(!ok)
	is.True(m.IsNone())
}

// smallPositions are 5x5 positions where exhaustive search is cheap.
var smallPositions = [][]move.Move{
	{},
	{{Row: 2, Col: 2}},
	{{Row: 2, Col: 2}, {Row: 1, Col: 1}},
	{{Row: 2, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 3}, {Row: 3, Col: 3}},
	{{Row: 0, Col: 0}, {Row: 4, Col: 4}, {Row: 0, Col: 1}, {Row: 4, Col: 3}, {Row: 0, Col: 2}, {Row: 4, Col: 2}},
	{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 2}, {Row: 2, Col: 1}, {Row: 3, Col: 3}, {Row: 0, Col: 4}, {Row: 3, Col: 1}},
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	for pidx, pos := range smallPositions {
		for _, perspective := range []board.Cell{board.Black, board.White} {
			for _, maximizing := range []bool{true, false} {
				for depth := 1; depth <= 3; depth++ {
					name := fmt.Sprintf("pos%d-%v-max%v-d%d", pidx, perspective, maximizing, depth)
					t.Run(name, func(t *testing.T) {
						is := is.New(t)
						g := game.NewGame(5)
						play(is, g, pos...)
						before := g.Copy()

						mm := newSolver(Minimax, perspective)
						ab := newSolver(AlphaBeta, perspective)
						mmScore, mmMove, mmOk := mm.Decide(g, depth, maximizing)
						abScore, abMove, abOk := ab.Decide(g, depth, maximizing)

						is.Equal(mmScore, abScore)
						is.Equal(mmMove, abMove)
						is.Equal(mmOk, abOk)
						is.True(ab.NodesVisited() <= mm.NodesVisited())

						// the search leaves the game exactly as it found it
						is.True(g.Board().Equals(before.Board()))
						is.Equal(g.History(), before.History())
						is.Equal(g.PlayerOnTurn(), before.PlayerOnTurn())
						is.Equal(g.LastMove(), before.LastMove())
						is.Equal(g.Hash(), before.Hash())
					})
				}
			}
		}
	}
}

func TestAlphaBetaPrunes(t *testing.T) {
	is := is.New(t)
	g := game.NewGame(5)
	play(is, g, move.Move{Row: 2, Col: 2}, move.Move{Row: 1, Col: 1})
	mm := newSolver(Minimax, board.Black)
	ab := newSolver(AlphaBeta, board.Black)
	mm.Decide(g, 3, true)
	ab.Decide(g, 3, true)
	is.True(ab.NodesVisited() < mm.NodesVisited())
	// 1 root + 23 + 23*22 + 23*22*21 positions for the full tree
	is.Equal(mm.NodesVisited(), 1+23+23*22+23*22*21)
}

func TestTakesImmediateWin(t *testing.T) {
	for _, strategy := range []Strategy{Minimax, AlphaBeta} {
		t.Run(strategy.String(), func(t *testing.T) {
			is := is.New(t)
			g := game.NewGame(15)
			play(is, g,
				move.Move{Row: 7, Col: 3}, move.Move{Row: 0, Col: 0},
				move.Move{Row: 7, Col: 4}, move.Move{Row: 0, Col: 14},
				move.Move{Row: 7, Col: 5}, move.Move{Row: 14, Col: 0},
				move.Move{Row: 7, Col: 6}, move.Move{Row: 14, Col: 14},
			)
			score, m, ok := newSolver(strategy, board.Black).Decide(g, 1, true)
			is.True(ok)
			is.Equal(score, evaluator.WinScore)
			// (7,2) also wins and comes first in row-major order.
			is.Equal(m, move.Move{Row: 7, Col: 2})
			is.True(g.PlayMove(m.Row, m.Col))
			is.Equal(g.Winner(), game.BlackWins)
		})
	}
}

func TestBlocksClosedFour(t *testing.T) {
	for _, strategy := range []Strategy{Minimax, AlphaBeta} {
		t.Run(strategy.String(), func(t *testing.T) {
			is := is.New(t)
			g := game.NewGame(15)
			play(is, g,
				move.Move{Row: 7, Col: 3}, move.Move{Row: 7, Col: 4},
				move.Move{Row: 0, Col: 0}, move.Move{Row: 7, Col: 5},
				move.Move{Row: 0, Col: 14}, move.Move{Row: 7, Col: 6},
				move.Move{Row: 14, Col: 14}, move.Move{Row: 7, Col: 7},
			)
			is.Equal(g.PlayerOnTurn(), board.Black)
			score, m, ok := newSolver(strategy, board.Black).Decide(g, 2, true)
			is.True(ok)
			is.Equal(m, move.Move{Row: 7, Col: 8})
			is.True(score > -evaluator.WinScore)
		})
	}
}
