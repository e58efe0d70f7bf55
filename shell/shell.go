package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/ai/bot"
	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start a game first with the `new` command")
	errGameOver          = errors.New("the game is over; start a new one with `new`")
)

type Mode int

const (
	HumanVsAI Mode = iota
	AIVsAI
	HumanVsHuman
)

func (m Mode) String() string {
	switch m {
	case HumanVsAI:
		return "hva"
	case AIVsAI:
		return "ava"
	case HumanVsHuman:
		return "hvh"
	}
	return "unknown"
}

func (m Mode) Description() string {
	switch m {
	case HumanVsAI:
		return "Human vs AI"
	case AIVsAI:
		return "AI vs AI"
	case HumanVsHuman:
		return "Human vs Human"
	}
	return "unknown"
}

func modeFromStr(mode string) (Mode, error) {
	switch strings.ToLower(mode) {
	case "hva", "human-vs-ai":
		return HumanVsAI, nil
	case "ava", "ai-vs-ai":
		return AIVsAI, nil
	case "hvh", "human-vs-human":
		return HumanVsHuman, nil
	}
	return HumanVsAI, fmt.Errorf("%v is not a valid mode; use hva, ava or hvh", mode)
}

type ShellController struct {
	l      *readline.Instance
	config *config.Config

	game *game.Game
	mode Mode
	// bots by color; index 0 black, 1 white. A nil entry is a human.
	bots [2]*bot.Bot

	autoplayMu     sync.Mutex
	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController builds a controller with no terminal attached. Loop
// needs one; Execute does not.
func NewShellController(cfg *config.Config) *ShellController {
	return &ShellController{config: cfg}
}

// AttachTerminal sets up readline on the process's terminal.
func (sc *ShellController) AttachTerminal() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mgomoku>\033[0m ",
		HistoryFile:     "/tmp/gomoku-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	sc.l = l
	return nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.l.Stdout())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields splits a line into a command, its positional arguments and
// its -option value pairs.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			opt := strings.TrimPrefix(fields[idx], "-")
			options[opt] = append(options[opt], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// Execute runs one command line. errQuit is returned for exit.
func (sc *ShellController) Execute(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("cmd", cmd.cmd).Strs("args", cmd.args).Msg("shell-command")
	switch cmd.cmd {
	case "exit", "quit":
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "aimove":
		return sc.aimove(cmd)
	case "hint":
		return sc.hint(cmd)
	case "undo":
		return sc.undo(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "moves":
		return sc.moves(cmd)
	case "eval":
		return sc.eval(cmd)
	case "set":
		return sc.set(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "analyze":
		return sc.analyze(cmd)
	}
	return nil, fmt.Errorf("command %v not found", cmd.cmd)
}

var errQuit = errors.New("quit")

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)

		resp, err := sc.Execute(line)
		if errors.Is(err, errNoData) {
			continue
		}
		if errors.Is(err, errQuit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msg("exiting-readline-loop")
}

func botIndex(c board.Cell) int {
	if c == board.White {
		return 1
	}
	return 0
}
