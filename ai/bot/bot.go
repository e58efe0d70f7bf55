// Package bot is the computer player: a search strategy, a depth, and an
// evaluator with its cache, all playing for one color.
package bot

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/cache"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/evaluator"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
	"github.com/domino14/gomoku/search"
)

var ErrNoMoves = errors.New("no empty cell left")

type BotConfig struct {
	Player     board.Cell
	Strategy   search.Strategy
	Depth      int
	CacheScope cache.Scope
	HashScheme evaluator.HashScheme
	// Candidate generation; see movegen.NewGenerator.
	FocusThreshold int
	FocusRadius    int
}

// DefaultBotConfig is the opponent in a human-vs-AI game.
func DefaultBotConfig(player board.Cell) BotConfig {
	return BotConfig{
		Player:         player,
		Strategy:       search.AlphaBeta,
		Depth:          2,
		CacheScope:     cache.DecisionScope,
		HashScheme:     evaluator.ZobristHash,
		FocusThreshold: movegen.DefaultFocusThreshold,
		FocusRadius:    movegen.DefaultFocusRadius,
	}
}

// Decision describes the last move a bot picked.
type Decision struct {
	Move        move.Move
	Score       int
	Nodes       int
	Elapsed     time.Duration
	CacheHits   int
	CacheMisses int
	// Fallback is set when the search returned nothing and the first empty
	// cell was played instead.
	Fallback bool
}

type Bot struct {
	cfg       BotConfig
	evaluator *evaluator.Evaluator
	solver    *search.Solver

	lastDecision Decision
}

// NewBot builds a bot from conf as given. Start from DefaultBotConfig for
// the usual settings.
func NewBot(conf BotConfig) (*Bot, error) {
	if conf.Player != board.Black && conf.Player != board.White {
		return nil, fmt.Errorf("%w: a bot must play black or white", config.ErrInvalidSetting)
	}
	if conf.Depth < 1 {
		return nil, fmt.Errorf("%w: depth %d", config.ErrInvalidSetting, conf.Depth)
	}
	if conf.FocusThreshold < 0 || conf.FocusRadius < 0 {
		return nil, fmt.Errorf("%w: focus threshold %d, radius %d", config.ErrInvalidSetting,
			conf.FocusThreshold, conf.FocusRadius)
	}
	eval := evaluator.NewEvaluator(evaluator.DefaultWeights, conf.HashScheme, cache.New(conf.CacheScope))
	gen := movegen.NewGenerator(conf.FocusThreshold, conf.FocusRadius)
	return &Bot{
		cfg:       conf,
		evaluator: eval,
		solver:    search.NewSolver(conf.Strategy, conf.Player, gen, eval),
	}, nil
}

// NewBotFromConfig builds a bot for player with the search settings in cfg.
// algoKey names the config key holding the strategy, so autoplay can give
// each color its own algorithm.
func NewBotFromConfig(cfg *config.Config, player board.Cell, algoKey string) (*Bot, error) {
	strategy, err := search.ParseStrategy(cfg.GetString(algoKey))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", algoKey, err)
	}
	scope, err := cache.ParseScope(cfg.GetString(config.ConfigEvalCacheScope))
	if err != nil {
		return nil, err
	}
	scheme, err := evaluator.ParseHashScheme(cfg.GetString(config.ConfigHashScheme))
	if err != nil {
		return nil, err
	}
	return NewBot(BotConfig{
		Player:         player,
		Strategy:       strategy,
		Depth:          cfg.GetInt(config.ConfigAIDepth),
		CacheScope:     scope,
		HashScheme:     scheme,
		FocusThreshold: cfg.GetInt(config.ConfigCandidateThreshold),
		FocusRadius:    cfg.GetInt(config.ConfigCandidateRadius),
	})
}

func (b *Bot) Player() board.Cell {
	return b.cfg.Player
}

func (b *Bot) Config() BotConfig {
	return b.cfg
}

func (b *Bot) Evaluator() *evaluator.Evaluator {
	return b.evaluator
}

func (b *Bot) LastDecision() Decision {
	return b.lastDecision
}

// GetMove searches from the bot's own point of view and returns the move to
// play. The game is mutated during the search and restored before return.
// It does not play the move.
func (b *Bot) GetMove(g *game.Game) (move.Move, error) {
	tstart := time.Now()
	b.evaluator.StartDecision()
	score, best, ok := b.solver.Decide(g, b.cfg.Depth, true)

	d := Decision{
		Move:  best,
		Score: score,
		Nodes: b.solver.NodesVisited(),
	}
	if !ok {
		row, col, found := g.FirstEmpty()
		if !found {
			return move.None, ErrNoMoves
		}
		log.Warn().Int("row", row).Int("col", col).Msg("search-found-no-move-using-first-empty")
		d.Move = move.Move{Row: row, Col: col}
		d.Fallback = true
	}
	d.Elapsed = time.Since(tstart)
	d.CacheHits = b.evaluator.Cache().Hits()
	d.CacheMisses = b.evaluator.Cache().Misses()
	b.lastDecision = d

	log.Debug().
		Str("player", b.cfg.Player.String()).
		Str("move", d.Move.String()).
		Int("score", d.Score).
		Int("nodes", d.Nodes).
		Int("cache-hits", d.CacheHits).
		Dur("elapsed", d.Elapsed).
		Msg("bot-decided")
	return d.Move, nil
}
