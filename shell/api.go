package shell

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/ai/bot"
	"github.com/domino14/gomoku/automatic"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/evaluator"
	"github.com/domino14/gomoku/game"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/movegen"
)

//go:embed helptext
var helptext embed.FS

type Response struct {
	message string
}

func (r *Response) Message() string {
	return r.message
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) display() *Response {
	return msg(sc.game.ToDisplayText())
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	topic := "usage"
	if len(cmd.args) > 0 {
		topic = cmd.args[0]
	}
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return msg("There is no help text for the topic " + topic), nil
	}
	return msg(string(dat)), nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	mode := HumanVsAI
	if len(cmd.args) > 0 {
		var err error
		mode, err = modeFromStr(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	size, err := cmd.options.IntDefault("size", sc.config.GetInt(config.ConfigBoardSize))
	if err != nil {
		return nil, err
	}
	if err := game.ValidSize(size); err != nil {
		return nil, err
	}

	var bots [2]*bot.Bot
	switch mode {
	case HumanVsAI:
		color := board.White
		if sc.config.GetInt(config.ConfigAIPlayer) == 1 {
			color = board.Black
		}
		bots[botIndex(color)], err = bot.NewBotFromConfig(sc.config, color, config.ConfigAIAlgorithm)
	case AIVsAI:
		bots[0], err = bot.NewBotFromConfig(sc.config, board.Black, config.ConfigAutoplayBlackAlgorithm)
		if err == nil {
			bots[1], err = bot.NewBotFromConfig(sc.config, board.White, config.ConfigAutoplayWhiteAlgorithm)
		}
	}
	if err != nil {
		return nil, err
	}

	sc.game = game.NewGame(size)
	sc.mode = mode
	sc.bots = bots
	log.Debug().Str("mode", mode.String()).Int("size", size).Msg("new-game")

	var out strings.Builder
	out.WriteString("New game: " + mode.Description() + "\n")
	if mode == HumanVsAI && sc.botOnTurn() != nil {
		m, err := sc.playBotMove()
		if err != nil {
			return nil, err
		}
		out.WriteString(fmt.Sprintf("AI plays %v\n", m))
	}
	out.WriteString(sc.game.ToDisplayText())
	return msg(out.String()), nil
}

func (sc *ShellController) botOnTurn() *bot.Bot {
	return sc.bots[botIndex(sc.game.PlayerOnTurn())]
}

func (sc *ShellController) playBotMove() (move.Move, error) {
	b := sc.botOnTurn()
	m, err := b.GetMove(sc.game)
	if err != nil {
		return move.None, err
	}
	if err := sc.game.PlayMoveErr(m); err != nil {
		return move.None, err
	}
	return m, nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <coords>, e.g. play h8")
	}
	if sc.game.GameOver() {
		return nil, errGameOver
	}
	if sc.mode == AIVsAI {
		return nil, errors.New("both players are AIs in this game; use aimove")
	}
	if sc.botOnTurn() != nil {
		return nil, errors.New("it is the AI's turn")
	}
	if err := sc.game.PlayCoords(cmd.args[0]); err != nil {
		return nil, err
	}
	var out strings.Builder
	if sc.mode == HumanVsAI && !sc.game.GameOver() {
		m, err := sc.playBotMove()
		if err != nil {
			return nil, err
		}
		out.WriteString(fmt.Sprintf("AI plays %v\n", m))
	}
	out.WriteString(sc.game.ToDisplayText())
	return msg(out.String()), nil
}

// aimove lets the AI on turn move once, or with "all", keep moving until
// the game ends or a human is on turn.
func (sc *ShellController) aimove(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	all := len(cmd.args) > 0 && cmd.args[0] == "all"
	if sc.game.GameOver() {
		return nil, errGameOver
	}
	if sc.botOnTurn() == nil {
		return nil, fmt.Errorf("no AI plays %v in this game; try hint", sc.game.PlayerOnTurn())
	}
	var out strings.Builder
	for !sc.game.GameOver() && sc.botOnTurn() != nil {
		player := sc.game.PlayerOnTurn()
		m, err := sc.playBotMove()
		if err != nil {
			return nil, err
		}
		out.WriteString(fmt.Sprintf("%v plays %v\n", player, m))
		if !all {
			break
		}
	}
	out.WriteString(sc.game.ToDisplayText())
	return msg(out.String()), nil
}

// hint shows the move the AI would play for whoever is on turn, without
// playing it.
func (sc *ShellController) hint(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.GameOver() {
		return nil, errGameOver
	}
	b := sc.botOnTurn()
	if b == nil {
		var err error
		b, err = bot.NewBotFromConfig(sc.config, sc.game.PlayerOnTurn(), config.ConfigAIAlgorithm)
		if err != nil {
			return nil, err
		}
	}
	m, err := b.GetMove(sc.game)
	if err != nil {
		return nil, err
	}
	d := b.LastDecision()
	return msg(fmt.Sprintf("%v %v (score %d, %d positions searched in %v)",
		b.Player(), m, d.Score, d.Nodes, d.Elapsed)), nil
}

// undo takes back the last move. Against the AI it keeps going until the
// human is on turn again.
func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.mode == AIVsAI {
		return nil, errors.New("undo is disabled in AI vs AI games")
	}
	if err := sc.game.UnplayErr(); err != nil {
		return nil, err
	}
	for sc.botOnTurn() != nil && sc.game.NumMoves() > 0 {
		if err := sc.game.UnplayErr(); err != nil {
			return nil, err
		}
	}
	if sc.botOnTurn() != nil {
		// the AI opened the game; let it open again
		if _, err := sc.playBotMove(); err != nil {
			return nil, err
		}
	}
	return sc.display(), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) > 0 && cmd.args[0] == "history" {
		return msg(sc.game.HistoryText()), nil
	}
	return sc.display(), nil
}

type scoredMove struct {
	m     move.Move
	score int
}

// moves lists the candidate moves for the player on turn, ranked by the
// static evaluation of the position each one leads to.
func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.GameOver() {
		return nil, errGameOver
	}
	n, err := cmd.options.IntDefault("n", 10)
	if err != nil {
		return nil, err
	}
	gen := movegen.NewGenerator(sc.config.GetInt(config.ConfigCandidateThreshold),
		sc.config.GetInt(config.ConfigCandidateRadius))
	eval := evaluator.NewDefaultEvaluator()
	player := sc.game.PlayerOnTurn()

	cands := gen.GenAll(sc.game)
	scored := make([]scoredMove, 0, len(cands))
	for _, m := range cands {
		sc.game.PlayMove(m.Row, m.Col)
		scored = append(scored, scoredMove{m, eval.Evaluate(sc.game, player)})
		sc.game.UnplayLastMove()
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	var out strings.Builder
	out.WriteString(fmt.Sprintf("%d candidates for %v\n", len(cands), player))
	out.WriteString("     Move  Score\n")
	for i, sm := range scored {
		if i == n {
			break
		}
		out.WriteString(fmt.Sprintf("%3d: %-6s%d\n", i+1, sm.m, sm.score))
	}
	return msg(out.String()), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	e := evaluator.NewDefaultEvaluator()
	return msg(fmt.Sprintf("Black: %d\nWhite: %d",
		e.Evaluate(sc.game, board.Black), e.Evaluate(sc.game, board.White))), nil
}

// set shows or changes a setting. Search settings take effect at the next
// new game.
func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.config.SanitizedSettings()), nil
	}
	key := cmd.args[0]
	if _, known := sc.config.AllSettings()[key]; !known {
		return nil, fmt.Errorf("unknown setting %v", key)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s = %v", key, sc.config.Get(key))), nil
	}
	old := sc.config.Get(key)
	sc.config.Set(key, cmd.args[1])
	if err := sc.config.Validate(); err != nil {
		sc.config.Set(key, old)
		return nil, err
	}
	return msg("set " + key + " to " + cmd.args[1]), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 && cmd.args[0] == "stop" {
		if !sc.autoplayRunning() {
			return nil, errors.New("autoplay is not running")
		}
		sc.stopAutoplay()
		return msg("autoplay stopped"), nil
	}
	if sc.autoplayRunning() {
		return nil, automatic.ErrAlreadyPlaying
	}
	games, err := cmd.options.IntDefault("games", sc.config.GetInt(config.ConfigAutoplayGames))
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	logfile := cmd.options.String("logfile")
	if logfile == "" {
		logfile = sc.config.GetString(config.ConfigAutoplayLogfile)
	}

	// later set commands must not reach the games in flight
	cfg := sc.config.Snapshot()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sc.autoplayMu.Lock()
	if sc.autoplayCancel != nil {
		// the previous run has finished; release its context
		sc.autoplayCancel()
	}
	sc.autoplayCancel = cancel
	sc.autoplayDone = done
	sc.autoplayMu.Unlock()
	go func() {
		defer close(done)
		summary, err := automatic.StartCompVComp(ctx, cfg, games, threads, logfile)
		if err != nil {
			log.Err(err).Msg("autoplay-error")
			return
		}
		log.Info().Int("games", summary.Games).Int("black-wins", summary.Black.Wins).
			Int("white-wins", summary.White.Wins).Int("draws", summary.Draws).Msg("autoplay-done")
	}()
	return msg(fmt.Sprintf("playing %d games on %d threads; writing moves to %s", games, threads, logfile)), nil
}

func (sc *ShellController) autoplayRunning() bool {
	select {
	case <-sc.AutoplayDone():
		return false
	default:
		return true
	}
}

// AutoplayDone is closed once the last autoplay started from this shell has
// finished. With no autoplay it is already closed.
func (sc *ShellController) AutoplayDone() <-chan struct{} {
	sc.autoplayMu.Lock()
	defer sc.autoplayMu.Unlock()
	if sc.autoplayDone == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return sc.autoplayDone
}

// stopAutoplay cancels a running autoplay and waits for it to wind down.
func (sc *ShellController) stopAutoplay() {
	sc.autoplayMu.Lock()
	cancel, done := sc.autoplayCancel, sc.autoplayDone
	sc.autoplayMu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// waitAutoplay blocks until a running autoplay finishes on its own.
func (sc *ShellController) waitAutoplay() {
	<-sc.AutoplayDone()
}

// Cleanup stops any autoplay still running. Call it before exiting.
func (sc *ShellController) Cleanup() {
	sc.stopAutoplay()
	log.Debug().Msg("shell-cleanup")
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	logfile := sc.config.GetString(config.ConfigAutoplayLogfile)
	if len(cmd.args) > 0 {
		logfile = cmd.args[0]
	}
	stats, err := automatic.AnalyzeLogFile(logfile)
	if err != nil {
		return nil, err
	}
	return msg(stats), nil
}
