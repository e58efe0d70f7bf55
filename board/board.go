package board

import (
	"fmt"

	"github.com/cespare/xxhash"
)

// A Cell is the content of a single intersection on the board.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

const (
	// DefaultDim is the side length of a standard gomoku board.
	DefaultDim = 15
	// MaxDim keeps every column addressable by a single letter.
	MaxDim = 26
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Black:
		return "Black"
	case White:
		return "White"
	}
	panic(fmt.Sprintf("invalid cell value %d", c))
}

// Symbol is the single-character representation used in display text.
func (c Cell) Symbol() byte {
	switch c {
	case Empty:
		return '.'
	case Black:
		return 'X'
	case White:
		return 'O'
	}
	panic(fmt.Sprintf("invalid cell value %d", c))
}

// Opponent returns the other player. Calling it on an empty cell is a
// logic error.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	panic(fmt.Sprintf("cell %d has no opponent", c))
}

// GameBoard is a square grid of cells stored in row-major order.
type GameBoard struct {
	dim      int
	squares  []Cell
	occupied int
}

func NewGameBoard(dim int) *GameBoard {
	if dim <= 0 || dim > MaxDim {
		panic(fmt.Sprintf("invalid board dimension %d", dim))
	}
	return &GameBoard{
		dim:     dim,
		squares: make([]Cell, dim*dim),
	}
}

func (g *GameBoard) Dim() int {
	return g.dim
}

func (g *GameBoard) idx(row, col int) int {
	return row*g.dim + col
}

func (g *GameBoard) InBounds(row, col int) bool {
	return row >= 0 && row < g.dim && col >= 0 && col < g.dim
}

// GetCell returns the cell at row, col. The coordinates must be in bounds.
func (g *GameBoard) GetCell(row, col int) Cell {
	return g.squares[g.idx(row, col)]
}

// SetCell places a value on the board, keeping the occupied count in sync.
func (g *GameBoard) SetCell(row, col int, c Cell) {
	i := g.idx(row, col)
	old := g.squares[i]
	if old == Empty && c != Empty {
		g.occupied++
	} else if old != Empty && c == Empty {
		g.occupied--
	}
	g.squares[i] = c
}

// IsEmpty is true if the coordinates are on the board and nothing is
// placed there.
func (g *GameBoard) IsEmpty(row, col int) bool {
	return g.InBounds(row, col) && g.GetCell(row, col) == Empty
}

func (g *GameBoard) NumOccupied() int {
	return g.occupied
}

func (g *GameBoard) NumEmpty() int {
	return len(g.squares) - g.occupied
}

func (g *GameBoard) IsFull() bool {
	return g.occupied == len(g.squares)
}

func (g *GameBoard) Clear() {
	for i := range g.squares {
		g.squares[i] = Empty
	}
	g.occupied = 0
}

// Squares returns a copy of the grid in row-major order.
func (g *GameBoard) Squares() []Cell {
	sq := make([]Cell, len(g.squares))
	copy(sq, g.squares)
	return sq
}

func (g *GameBoard) Copy() *GameBoard {
	n := NewGameBoard(g.dim)
	n.CopyFrom(g)
	return n
}

// CopyFrom copies the contents of another board of the same dimension
// without allocating.
func (g *GameBoard) CopyFrom(other *GameBoard) {
	if g.dim != other.dim {
		g.dim = other.dim
		g.squares = make([]Cell, len(other.squares))
	}
	copy(g.squares, other.squares)
	g.occupied = other.occupied
}

func (g *GameBoard) Equals(other *GameBoard) bool {
	if g.dim != other.dim || g.occupied != other.occupied {
		return false
	}
	for i := range g.squares {
		if g.squares[i] != other.squares[i] {
			return false
		}
	}
	return true
}

// Bytes is the canonical encoding of the grid: one byte per cell, row-major.
func (g *GameBoard) Bytes() []byte {
	b := make([]byte, len(g.squares))
	for i, c := range g.squares {
		b[i] = byte(c)
	}
	return b
}

// Fingerprint hashes the canonical encoding of the grid. Equal grids always
// produce equal fingerprints.
func (g *GameBoard) Fingerprint() uint64 {
	return xxhash.Sum64(g.Bytes())
}
