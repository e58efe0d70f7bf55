// Package evaluator scores gomoku positions from one player's point of view
// by counting stone patterns along every line of the board.
package evaluator

import (
	"fmt"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/cache"
	"github.com/domino14/gomoku/game"
)

// WinScore is the value of a won game; a lost game is -WinScore.
const WinScore = 100000

// HashScheme selects how positions are keyed in the evaluation cache.
type HashScheme int

const (
	// ZobristHash uses the key the game maintains incrementally.
	ZobristHash HashScheme = iota
	// FingerprintHash hashes the canonical byte encoding of the grid.
	FingerprintHash
)

func (h HashScheme) String() string {
	switch h {
	case ZobristHash:
		return "zobrist"
	case FingerprintHash:
		return "xxhash"
	}
	return fmt.Sprintf("HashScheme(%d)", int(h))
}

func ParseHashScheme(s string) (HashScheme, error) {
	switch s {
	case "zobrist", "":
		return ZobristHash, nil
	case "xxhash":
		return FingerprintHash, nil
	}
	return ZobristHash, fmt.Errorf("unknown hash scheme %q", s)
}

// Evaluator scores positions. It is not safe for concurrent use because of
// its cache.
type Evaluator struct {
	weights Weights
	scheme  HashScheme
	cache   *cache.EvalCache
	// shapes[i] holds the patterns for player board.Black+i.
	shapes [2][NumPatterns][]board.Cell
}

func NewEvaluator(weights Weights, scheme HashScheme, c *cache.EvalCache) *Evaluator {
	e := &Evaluator{weights: weights, scheme: scheme, cache: c}
	for i, player := range []board.Cell{board.Black, board.White} {
		for p := Pattern(0); p < NumPatterns; p++ {
			e.shapes[i][p] = shape(p, player)
		}
	}
	return e
}

func NewDefaultEvaluator() *Evaluator {
	return NewEvaluator(DefaultWeights, ZobristHash, cache.New(cache.DecisionScope))
}

func (e *Evaluator) Cache() *cache.EvalCache {
	return e.cache
}

// StartDecision must be called before every top-level search.
func (e *Evaluator) StartDecision() {
	e.cache.StartDecision()
}

func (e *Evaluator) positionKey(g *game.Game) uint64 {
	if e.scheme == FingerprintHash {
		return g.Board().Fingerprint()
	}
	return g.Hash()
}

// Evaluate scores the game from perspective's point of view. Finished games
// score WinScore, -WinScore or 0; anything else is the sum of weighted
// pattern counts over every line, memoized by position.
func (e *Evaluator) Evaluate(g *game.Game, perspective board.Cell) int {
	if g.GameOver() {
		switch g.Winner().Player() {
		case perspective:
			return WinScore
		case board.Empty:
			return 0
		default:
			return -WinScore
		}
	}
	key := cache.Key{Position: e.positionKey(g), Perspective: perspective}
	if score, ok := e.cache.Get(key); ok {
		return score
	}
	score := 0
	g.Board().ForEachLine(func(line []board.Cell) {
		score += e.ScoreLine(line, perspective)
	})
	e.cache.Put(key, score)
	return score
}

// ScoreLine is the weighted pattern count of a single line.
func (e *Evaluator) ScoreLine(line []board.Cell, perspective board.Cell) int {
	if len(line) < 2 || !hasStone(line) {
		return 0
	}
	own := e.shapes[perspective-board.Black]
	opp := e.shapes[perspective.Opponent()-board.Black]
	score := 0
	for p := Pattern(0); p < NumPatterns; p++ {
		score += e.weights[p] * CountOccurrences(line, own[p])
		score -= e.weights[p] * CountOccurrences(line, opp[p])
	}
	return score
}

func hasStone(line []board.Cell) bool {
	for _, c := range line {
		if c != board.Empty {
			return true
		}
	}
	return false
}
