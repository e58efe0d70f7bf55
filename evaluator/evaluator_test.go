package evaluator

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/cache"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
)

func lineFromString(s string) []board.Cell {
	line := make([]board.Cell, len(s))
	for i := range s {
		switch s[i] {
		case 'X':
			line[i] = board.Black
		case 'O':
			line[i] = board.White
		}
	}
	return line
}

func play(is *is.I, g *game.Game, moves ...move.Move) {
	for _, m := range moves {
		is.True(g.PlayMove(m.Row, m.Col))
	}
}

func TestCountOccurrencesOverlapping(t *testing.T) {
	line := lineFromString("XXXXX")
	cases := []struct {
		p    Pattern
		want int
	}{
		{Five, 1},
		{Four, 2},
		{Three, 3},
		{Two, 4},
		{OpenTwo, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CountOccurrences(line, shape(tc.p, board.Black)), tc.p.String())
	}
}

func TestShortLinesScoreZero(t *testing.T) {
	is := is.New(t)
	is.Equal(CountOccurrences(lineFromString("XXXX"), shape(Five, board.Black)), 0)
	e := NewDefaultEvaluator()
	is.Equal(e.ScoreLine(lineFromString("X"), board.Black), 0)
	is.Equal(e.ScoreLine(lineFromString("....."), board.Black), 0)
}

func TestScoreLine(t *testing.T) {
	e := NewDefaultEvaluator()
	cases := []struct {
		line string
		want int
	}{
		{".XX.", 50 + 10},
		{"XX", 10},
		{".OO.", -60},
		{".XXX.", 500 + 100 + 2*10},
		{"OXXXX.", 1000 + 2*100 + 3*10},
		{".XXXX.", 10000 + 1000 + 2*100 + 3*10},
		{"XXXXX", 100000 + 2*1000 + 3*100 + 4*10},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, e.ScoreLine(lineFromString(tc.line), board.Black), tc.line)
		assert.Equal(t, -tc.want, e.ScoreLine(lineFromString(tc.line), board.White), tc.line)
	}
}

func TestEmptyBoardScoresZero(t *testing.T) {
	is := is.New(t)
	e := NewDefaultEvaluator()
	is.Equal(e.Evaluate(game.NewGame(15), board.Black), 0)
}

func TestOpenFourBeatsBlockedFour(t *testing.T) {
	is := is.New(t)
	four := []move.Move{{Row: 7, Col: 5}, {Row: 7, Col: 6}, {Row: 7, Col: 7}, {Row: 7, Col: 8}}

	open := game.NewGame(15)
	play(is, open, four[0], move.Move{Row: 0, Col: 0}, four[1], move.Move{Row: 0, Col: 14}, four[2], move.Move{Row: 14, Col: 0}, four[3])

	blocked := game.NewGame(15)
	play(is, blocked, four[0], move.Move{Row: 0, Col: 0}, four[1], move.Move{Row: 0, Col: 14}, four[2], move.Move{Row: 7, Col: 4}, four[3])

	e := NewDefaultEvaluator()
	openScore := e.Evaluate(open, board.Black)
	blockedScore := e.Evaluate(blocked, board.Black)
	is.True(openScore > blockedScore)
	is.Equal(openScore, 10000+1000+2*100+3*10)
	is.Equal(blockedScore, 1000+2*100+3*10)
}

func TestTerminalScores(t *testing.T) {
	is := is.New(t)
	g := game.NewGame(15)
	play(is, g,
		move.Move{Row: 7, Col: 3}, move.Move{Row: 0, Col: 0},
		move.Move{Row: 7, Col: 4}, move.Move{Row: 0, Col: 2},
		move.Move{Row: 7, Col: 5}, move.Move{Row: 0, Col: 4},
		move.Move{Row: 7, Col: 6}, move.Move{Row: 0, Col: 6},
		move.Move{Row: 7, Col: 7},
	)
	is.True(g.GameOver())
	e := NewDefaultEvaluator()
	is.Equal(e.Evaluate(g, board.Black), WinScore)
	is.Equal(e.Evaluate(g, board.White), -WinScore)

	draw := game.NewGame(4)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			is.True(draw.PlayMove(r, c))
		}
	}
	is.Equal(draw.Winner(), game.Draw)
	is.Equal(e.Evaluate(draw, board.Black), 0)
}

func TestPerspectivesAreMirrored(t *testing.T) {
	is := is.New(t)
	g := game.NewGame(15)
	play(is, g, move.Move{Row: 7, Col: 7}, move.Move{Row: 7, Col: 8}, move.Move{Row: 8, Col: 7}, move.Move{Row: 6, Col: 6}, move.Move{Row: 9, Col: 7})
	e := NewDefaultEvaluator()
	is.Equal(e.Evaluate(g, board.Black), -e.Evaluate(g, board.White))
	is.True(e.Evaluate(g, board.Black) > 0)
}

func TestCacheIsUsed(t *testing.T) {
	is := is.New(t)
	g := game.NewGame(15)
	play(is, g, move.Move{Row: 7, Col: 7}, move.Move{Row: 7, Col: 8}, move.Move{Row: 8, Col: 8}, move.Move{Row: 6, Col: 6})
	e := NewDefaultEvaluator()
	s1 := e.Evaluate(g, board.Black)
	is.Equal(e.Cache().Misses(), 1)
	s2 := e.Evaluate(g, board.Black)
	is.Equal(s1, s2)
	is.Equal(e.Cache().Hits(), 1)

	// a transposition reaches the same cache entry: black and white each
	// play the same stones in a different order
	g2 := game.NewGame(15)
	play(is, g2, move.Move{Row: 8, Col: 8}, move.Move{Row: 6, Col: 6}, move.Move{Row: 7, Col: 7}, move.Move{Row: 7, Col: 8})
	is.Equal(g2.Hash(), g.Hash())
	is.Equal(e.Evaluate(g2, board.Black), s1)
	is.Equal(e.Cache().Hits(), 2)

	e.StartDecision()
	is.Equal(e.Cache().Len(), 0)
}

func TestHashSchemesAgree(t *testing.T) {
	is := is.New(t)
	g := game.NewGame(15)
	play(is, g, move.Move{Row: 7, Col: 7}, move.Move{Row: 7, Col: 8}, move.Move{Row: 8, Col: 8}, move.Move{Row: 6, Col: 6})
	z := NewEvaluator(DefaultWeights, ZobristHash, cache.New(cache.DecisionScope))
	x := NewEvaluator(DefaultWeights, FingerprintHash, cache.New(cache.DecisionScope))
	is.Equal(z.Evaluate(g, board.White), x.Evaluate(g, board.White))

	s, err := ParseHashScheme("xxhash")
	is.NoErr(err)
	is.Equal(s, FingerprintHash)
	_, err = ParseHashScheme("md5")
	is.True(err != nil)
}
