package bot

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/cache"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/evaluator"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/search"
)

func newBot(is *is.I, conf BotConfig) *Bot {
	b, err := NewBot(conf)
	is.NoErr(err)
	return b
}

func TestFirstMoveIsCenter(t *testing.T) {
	for _, strategy := range []search.Strategy{search.Minimax, search.AlphaBeta} {
		t.Run(strategy.String(), func(t *testing.T) {
			is := is.New(t)
			conf := DefaultBotConfig(board.Black)
			conf.Strategy = strategy
			b, err := NewBot(conf)
			is.NoErr(err)
			g := game.NewGame(15)
			m, err := b.GetMove(g)
			is.NoErr(err)
			is.Equal(m, move.Move{Row: 7, Col: 7})
			is.True(!b.LastDecision().Fallback)
			is.True(b.LastDecision().Nodes > 0)
		})
	}
}

func TestGetMoveLeavesGameUntouched(t *testing.T) {
	is := is.New(t)
	g := game.NewGame(15)
	for _, m := range []move.Move{{Row: 7, Col: 7}, {Row: 7, Col: 8}, {Row: 8, Col: 8}} {
		is.True(g.PlayMove(m.Row, m.Col))
	}
	before := g.Copy()
	b := newBot(is, DefaultBotConfig(board.White))
	m, err := b.GetMove(g)
	is.NoErr(err)
	is.True(g.IsValidMove(m.Row, m.Col))
	is.True(g.Board().Equals(before.Board()))
	is.Equal(g.History(), before.History())
	is.Equal(g.Hash(), before.Hash())
	is.Equal(g.PlayerOnTurn(), board.White)
}

func TestBlocksClosedFour(t *testing.T) {
	is := is.New(t)
	g := game.NewGame(15)
	// black threatens five at (7,7); (7,2) is already white
	for _, m := range []move.Move{{Row: 7, Col: 3}, {Row: 7, Col: 2}, {Row: 7, Col: 4}, {Row: 0, Col: 0}, {Row: 7, Col: 5}, {Row: 0, Col: 14}, {Row: 7, Col: 6}} {
		is.True(g.PlayMove(m.Row, m.Col))
	}
	b := newBot(is, DefaultBotConfig(board.White))
	m, err := b.GetMove(g)
	is.NoErr(err)
	is.Equal(m, move.Move{Row: 7, Col: 7})
}

func TestFallbackToFirstEmpty(t *testing.T) {
	is := is.New(t)
	g := game.NewGame(15)
	for _, m := range []move.Move{
		{Row: 7, Col: 3}, {Row: 0, Col: 0}, {Row: 7, Col: 4}, {Row: 0, Col: 2}, {Row: 7, Col: 5}, {Row: 0, Col: 4}, {Row: 7, Col: 6}, {Row: 0, Col: 6}, {Row: 7, Col: 7},
	} {
		is.True(g.PlayMove(m.Row, m.Col))
	}
	is.True(g.GameOver())
	b := newBot(is, DefaultBotConfig(board.White))
	m, err := b.GetMove(g)
	is.NoErr(err)
	is.Equal(m, move.Move{Row: 0, Col: 1})
	is.True(b.LastDecision().Fallback)
}

func TestFullBoardHasNoMove(t *testing.T) {
	is := is.New(t)
	g := game.NewGame(4)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			is.True(g.PlayMove(r, c))
		}
	}
	b := newBot(is, DefaultBotConfig(board.Black))
	m, err := b.GetMove(g)
	is.True(errors.Is(err, ErrNoMoves))
	is.True(m.IsNone())
}

func TestCacheScope(t *testing.T) {
	is := is.New(t)
	g := game.NewGame(9)
	is.True(g.PlayMove(4, 4))

	conf := DefaultBotConfig(board.White)
	conf.CacheScope = cache.ProcessScope
	b := newBot(is, conf)
	_, err := b.GetMove(g)
	is.NoErr(err)
	kept := b.Evaluator().Cache().Len()
	is.True(kept > 0)
	// the same decision again is answered from the cache
	_, err = b.GetMove(g)
	is.NoErr(err)
	is.Equal(b.LastDecision().CacheMisses, 0)
	is.True(b.LastDecision().CacheHits > 0)

	d := newBot(is, DefaultBotConfig(board.White))
	_, err = d.GetMove(g)
	is.NoErr(err)
	_, err = d.GetMove(g)
	is.NoErr(err)
	is.True(d.LastDecision().CacheMisses > 0)
}

func TestNewBotFromConfig(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigAIAlgorithm, "minimax")
	cfg.Set(config.ConfigAIDepth, 1)
	cfg.Set(config.ConfigHashScheme, "xxhash")
	cfg.Set(config.ConfigEvalCacheScope, "process")

	b, err := NewBotFromConfig(cfg, board.Black, config.ConfigAIAlgorithm)
	is.NoErr(err)
	c := b.Config()
	is.Equal(c.Player, board.Black)
	is.Equal(c.Strategy, search.Minimax)
	is.Equal(c.Depth, 1)
	is.Equal(c.HashScheme, evaluator.FingerprintHash)
	is.Equal(c.CacheScope, cache.ProcessScope)
	is.Equal(c.FocusThreshold, 40)

	cfg.Set(config.ConfigAIAlgorithm, "expectimax")
	_, err = NewBotFromConfig(cfg, board.Black, config.ConfigAIAlgorithm)
	is.True(err != nil)
}

func TestNewBotRejectsBadConfig(t *testing.T) {
	is := is.New(t)
	conf := DefaultBotConfig(board.White)
	conf.Depth = 0
	_, err := NewBot(conf)
	is.True(errors.Is(err, config.ErrInvalidSetting))

	conf = DefaultBotConfig(board.Empty)
	_, err = NewBot(conf)
	is.True(errors.Is(err, config.ErrInvalidSetting))

	conf = DefaultBotConfig(board.White)
	conf.FocusRadius = -1
	_, err = NewBot(conf)
	is.True(errors.Is(err, config.ErrInvalidSetting))
}

func TestZeroThresholdIsKept(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigCandidateThreshold, 0)
	b, err := NewBotFromConfig(cfg, board.White, config.ConfigAIAlgorithm)
	is.NoErr(err)
	is.Equal(b.Config().FocusThreshold, 0)

	// with no threshold, even a nearly full board only offers cells near stones
	g := game.NewGame(9)
	is.True(g.PlayMove(4, 4))
	_, err = b.GetMove(g)
	is.NoErr(err)
	m := b.LastDecision().Move
	is.True(m.Row >= 2 && m.Row <= 6 && m.Col >= 2 && m.Col <= 6)
}
