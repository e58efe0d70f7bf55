// Package search picks moves by depth-limited game-tree search, with or
// without alpha-beta pruning.
package search

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
		for each child of node do
			play(child)
			value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
			unplayLastMove()
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
		for each child of node do
			play(child)
			value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
			unplayLastMove()
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
(* Initial call *)
alphabeta(origin, depth, −∞, +∞, TRUE)
**/

// Infinity bounds every score the evaluator can produce.
const Infinity = math.MaxInt

// Strategy is the search algorithm.
type Strategy int

const (
	Minimax Strategy = iota
	AlphaBeta
)

func (s Strategy) String() string {
	switch s {
	case Minimax:
		return "minimax"
	case AlphaBeta:
		return "alphabeta"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "minimax":
		return Minimax, nil
	case "alphabeta", "":
		return AlphaBeta, nil
	}
	return AlphaBeta, fmt.Errorf("unknown search strategy %q", s)
}

// Evaluator scores a position from one player's point of view.
type Evaluator interface {
	Evaluate(g *game.Game, perspective board.Cell) int
}

// Solver searches on behalf of one player. It mutates the game it is given
// while it runs and restores it before returning.
type Solver struct {
	strategy    Strategy
	perspective board.Cell
	movegen     movegen.MoveGenerator
	evaluator   Evaluator

	nodes int
}

func NewSolver(strategy Strategy, perspective board.Cell,
	gen movegen.MoveGenerator, eval Evaluator) *Solver {

	return &Solver{
		strategy:    strategy,
		perspective: perspective,
		movegen:     gen,
		evaluator:   eval,
	}
}

func (s *Solver) Strategy() Strategy {
	return s.strategy
}

// NodesVisited is the number of positions visited by the last Decide call.
func (s *Solver) NodesVisited() int {
	return s.nodes
}

// Decide searches depth plies and returns the best score and the move that
// achieves it. ok is false when no move was searched: at depth 0, on a
// finished game, or when there are no candidates.
func (s *Solver) Decide(g *game.Game, depth int, maximizing bool) (score int, best move.Move, ok bool) {
	s.nodes = 0
	tstart := time.Now()
	score, best = s.search(g, depth, -Infinity, Infinity, maximizing)
	log.Debug().
		Str("strategy", s.strategy.String()).
		Int("depth", depth).
		Int("score", score).
		Str("move", best.String()).
		Int("nodes", s.nodes).
		Dur("elapsed", time.Since(tstart)).
		Msg("search-done")
	return score, best, !best.IsNone()
}

// search is minimax when the strategy is Minimax and alpha-beta otherwise.
// Ties keep the first candidate in generator order, and a pruned search
// returns the same best move and score as an unpruned one.
func (s *Solver) search(g *game.Game, depth int, alpha, beta int, maximizing bool) (int, move.Move) {
	s.nodes++
	if depth == 0 || g.GameOver() {
		return s.evaluator.Evaluate(g, s.perspective), move.None
	}
	moves := s.movegen.GenAll(g)
	if len(moves) == 0 {
		return s.evaluator.Evaluate(g, s.perspective), move.None
	}
	prune := s.strategy == AlphaBeta

	best := move.None
	bestScore := Infinity
	if maximizing {
		bestScore = -Infinity
	}
	for _, m := range moves {
		if !g.PlayMove(m.Row, m.Col) {
			panic(fmt.Sprintf("candidate %v is not a legal move", m))
		}
		childScore, _ := s.search(g, depth-1, alpha, beta, !maximizing)
		g.UnplayLastMove()

		if maximizing {
			if childScore > bestScore || best.IsNone() {
				bestScore, best = childScore, m
			}
			alpha = max(alpha, bestScore)
		} else {
			if childScore < bestScore || best.IsNone() {
				bestScore, best = childScore, m
			}
			beta = min(beta, bestScore)
		}
		if prune && beta <= alpha {
			break
		}
	}
	return bestScore, best
}
