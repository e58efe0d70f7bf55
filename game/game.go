// Package game holds the state of a gomoku game: the board, whose turn it
// is, the move history and the result. Moves are applied and undone in
// place so that searches can walk the game tree on a single Game.
package game

import (
	"errors"
	"fmt"

	"github.com/domino14/gomoku/board"
	"github.com/domino14/gomoku/move"
	"github.com/domino14/gomoku/zobrist"
)

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrEmptyHistory = errors.New("no moves to undo")
	ErrInvalidSize  = errors.New("invalid board size")
)

// Winner is the result of the game so far.
type Winner uint8

const (
	NoWinner Winner = iota
	Draw
	BlackWins
	WhiteWins
)

func (w Winner) String() string {
	switch w {
	case NoWinner:
		return "none"
	case Draw:
		return "draw"
	case BlackWins:
		return "black"
	case WhiteWins:
		return "white"
	}
	return fmt.Sprintf("Winner(%d)", uint8(w))
}

// Player returns the winning player, or board.Empty for a draw or an
// unfinished game.
func (w Winner) Player() board.Cell {
	switch w {
	case BlackWins:
		return board.Black
	case WhiteWins:
		return board.White
	}
	return board.Empty
}

func winnerFor(c board.Cell) Winner {
	switch c {
	case board.Black:
		return BlackWins
	case board.White:
		return WhiteWins
	}
	panic(fmt.Sprintf("cell %d cannot win", c))
}

// Game is a gomoku game in progress. It is not safe for concurrent use; a
// search owns the Game exclusively while it runs.
type Game struct {
	board    *board.GameBoard
	onturn   board.Cell
	gameOver bool
	winner   Winner
	lastMove move.Move
	history  []move.Placement

	zobrist *zobrist.Zobrist
	hash    uint64
}

// ValidSize reports whether a game can be created with this board size.
func ValidSize(size int) error {
	if size < 1 || size > board.MaxDim {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidSize, size, board.MaxDim)
	}
	return nil
}

// NewGame creates a game on an empty size x size board with Black to move.
func NewGame(size int) *Game {
	if err := ValidSize(size); err != nil {
		panic(err)
	}
	g := &Game{
		board:   board.NewGameBoard(size),
		zobrist: zobrist.ForDim(size),
	}
	g.Reset()
	return g
}

// Reset re-initializes every field for a new game on the same board size.
func (g *Game) Reset() {
	g.board.Clear()
	g.onturn = board.Black
	g.gameOver = false
	g.winner = NoWinner
	g.lastMove = move.None
	g.history = make([]move.Placement, 0, g.board.Dim()*g.board.Dim())
	g.hash = 0
}

// PlayMove places the stone of the player on turn. It returns false and
// changes nothing if the game is over or the target is not a valid move.
// On success the result (win or draw) is settled before the turn passes.
func (g *Game) PlayMove(row, col int) bool {
	if g.gameOver || !g.IsValidMove(row, col) {
		return false
	}
	player := g.onturn
	g.board.SetCell(row, col, player)
	g.hash = g.zobrist.ToggleStone(g.hash, row, col, player)
	g.lastMove = move.Move{Row: row, Col: col}
	g.history = append(g.history, move.Placement{Move: g.lastMove, Player: player})

	if g.CheckWin(row, col) {
		g.gameOver = true
		g.winner = winnerFor(player)
	} else if g.IsFull() {
		g.gameOver = true
		g.winner = Draw
	}
	g.onturn = player.Opponent()
	return true
}

// PlayMoveErr is PlayMove for callers that want a reason on failure.
func (g *Game) PlayMoveErr(m move.Move) error {
	if g.gameOver {
		return fmt.Errorf("%w: game is over", ErrInvalidMove)
	}
	if !g.board.InBounds(m.Row, m.Col) {
		return fmt.Errorf("%w: %v is off the board", ErrInvalidMove, m)
	}
	if !g.PlayMove(m.Row, m.Col) {
		return fmt.Errorf("%w: %v is occupied", ErrInvalidMove, m)
	}
	return nil
}

// PlayCoords plays a move given in board coordinates such as H8.
func (g *Game) PlayCoords(coords string) error {
	m, err := move.FromBoardGameCoords(coords)
	if err != nil {
		return err
	}
	return g.PlayMoveErr(m)
}

// UnplayLastMove reverts the most recent move. It returns false if there is
// nothing to undo.
func (g *Game) UnplayLastMove() bool {
	n := len(g.history)
	if n == 0 {
		return false
	}
	last := g.history[n-1]
	g.history = g.history[:n-1]
	g.board.SetCell(last.Row, last.Col, board.Empty)
	g.hash = g.zobrist.ToggleStone(g.hash, last.Row, last.Col, last.Player)
	g.gameOver = false
	g.winner = NoWinner
	g.onturn = last.Player
	if n > 1 {
		g.lastMove = g.history[n-2].Move
	} else {
		g.lastMove = move.None
	}
	return true
}

// UnplayErr is UnplayLastMove returning ErrEmptyHistory on failure.
func (g *Game) UnplayErr() error {
	if !g.UnplayLastMove() {
		return ErrEmptyHistory
	}
	return nil
}

// Copy returns a deep copy that shares nothing mutable with g.
func (g *Game) Copy() *Game {
	h := make([]move.Placement, len(g.history), cap(g.history))
	copy(h, g.history)
	return &Game{
		board:    g.board.Copy(),
		onturn:   g.onturn,
		gameOver: g.gameOver,
		winner:   g.winner,
		lastMove: g.lastMove,
		history:  h,
		zobrist:  g.zobrist,
		hash:     g.hash,
	}
}

func (g *Game) Size() int {
	return g.board.Dim()
}

// Board returns the live board. Callers must treat it as read-only; use
// Board().Copy() for a snapshot.
func (g *Game) Board() *board.GameBoard {
	return g.board
}

func (g *Game) PlayerOnTurn() board.Cell {
	return g.onturn
}

func (g *Game) GameOver() bool {
	return g.gameOver
}

func (g *Game) Winner() Winner {
	return g.winner
}

// LastMove returns move.None before the first move.
func (g *Game) LastMove() move.Move {
	return g.lastMove
}

// History returns a copy of the placements in the order they were made.
func (g *Game) History() []move.Placement {
	h := make([]move.Placement, len(g.history))
	copy(h, g.history)
	return h
}

func (g *Game) NumMoves() int {
	return len(g.history)
}

// Hash is the Zobrist key of the current grid, maintained incrementally.
func (g *Game) Hash() uint64 {
	return g.hash
}
