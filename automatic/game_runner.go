// Package automatic plays computer-vs-computer games and collects
// statistics about them.
package automatic

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/gomoku/ai/bot"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
)

const LogHeader = "gameID,ply,player,move,score,nodes,elapsedms,result\n"

// GameResult is the outcome of one finished game.
type GameResult struct {
	GameID int
	Winner game.Winner
	Plies  int
	// DecisionMs holds the thinking time of every bot move, by color
	// (index 0 black, 1 white). Random opening plies are not included.
	DecisionMs [2][]float64
	Nodes      [2]int
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game        *game.Game
	bots        [2]*bot.Bot
	opener      movegen.MoveGenerator
	randomPlies int

	config  *config.Config
	logchan chan string
}

// NewGameRunner builds a runner with a fresh game and one bot per color,
// using the autoplay algorithm settings in cfg.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	black, err := bot.NewBotFromConfig(cfg, board.Black, config.ConfigAutoplayBlackAlgorithm)
	if err != nil {
		return nil, err
	}
	white, err := bot.NewBotFromConfig(cfg, board.White, config.ConfigAutoplayWhiteAlgorithm)
	if err != nil {
		return nil, err
	}
	size := cfg.GetInt(config.ConfigBoardSize)
	if err := game.ValidSize(size); err != nil {
		return nil, err
	}
	return &GameRunner{
		game:        game.NewGame(size),
		bots:        [2]*bot.Bot{black, white},
		opener:      movegen.NewDefaultGenerator(),
		randomPlies: cfg.GetInt(config.ConfigAutoplayRandomPlies),
		config:      cfg,
		logchan:     logchan,
	}, nil
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

func botIndex(c board.Cell) int {
	if c == board.White {
		return 1
	}
	return 0
}

// playRandomOpening plays the configured number of random plies, each chosen
// among the cells the candidate generator would offer a bot. rng may be
// seeded for reproducible openings.
func (r *GameRunner) playRandomOpening(gameID int, rng *frand.RNG) {
	for i := 0; i < r.randomPlies && !r.game.GameOver(); i++ {
		cands := r.opener.GenAll(r.game)
		m := cands[rng.Intn(len(cands))]
		r.game.PlayMove(m.Row, m.Col)
		r.logMove(gameID, m, 0, 0, 0)
	}
}

func (r *GameRunner) logMove(gameID int, m move.Move, score, nodes int, elapsed time.Duration) {
	if r.logchan == nil {
		return
	}
	// the stone is already down, so the mover is whoever played last
	hist := r.game.History()
	mover := hist[len(hist)-1].Player
	result := ""
	if r.game.GameOver() {
		result = r.game.Winner().String()
	}
	r.logchan <- fmt.Sprintf("%d,%d,%s,%s,%d,%d,%.3f,%s\n",
		gameID, r.game.NumMoves(), mover, m.String(), score, nodes,
		float64(elapsed.Microseconds())/1000.0, result)
}

// PlayGame plays a full game from an empty board. A nil seed uses the
// process-wide random source for the opening.
func (r *GameRunner) PlayGame(ctx context.Context, gameID int, seed []byte) (*GameResult, error) {
	r.game.Reset()
	rng := frand.New()
	if seed != nil {
		rng = frand.NewCustom(seed, 1024, 12)
	}
	res := &GameResult{GameID: gameID}
	r.playRandomOpening(gameID, rng)

	for !r.game.GameOver() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		idx := botIndex(r.game.PlayerOnTurn())
		b := r.bots[idx]
		m, err := b.GetMove(r.game)
		if err != nil {
			return nil, err
		}
		if err := r.game.PlayMoveErr(m); err != nil {
			return nil, fmt.Errorf("bot %v chose %v: %w", b.Player(), m, err)
		}
		d := b.LastDecision()
		res.DecisionMs[idx] = append(res.DecisionMs[idx], float64(d.Elapsed.Microseconds())/1000.0)
		res.Nodes[idx] += d.Nodes
		r.logMove(gameID, m, d.Score, d.Nodes, d.Elapsed)
	}
	res.Winner = r.game.Winner()
	res.Plies = r.game.NumMoves()
	log.Debug().Int("game", gameID).Str("result", res.Winner.String()).
		Int("plies", res.Plies).Msg("game-over")
	return res, nil
}
