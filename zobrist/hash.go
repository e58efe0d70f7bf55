package zobrist

import (
	"sync"

	"lukechampine.com/frand"

	"github.com/domino14/gomoku/board"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a gomoku position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
// Only stone placement is hashed; side to move is a function of the stone
// count and is left out.
type Zobrist struct {
	posTable [][2]uint64
	boardDim int
}

func (z *Zobrist) Initialize(boardDim int) {
	z.boardDim = boardDim
	z.posTable = make([][2]uint64, boardDim*boardDim)
	for i := range z.posTable {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
}

func (z *Zobrist) BoardDim() int {
	return z.boardDim
}

func stoneIdx(c board.Cell) int {
	if c == board.White {
		return 1
	}
	return 0
}

// Hash computes the key of a full grid from scratch.
func (z *Zobrist) Hash(squares []board.Cell) uint64 {
	key := uint64(0)
	for i, c := range squares {
		if c == board.Empty {
			continue
		}
		key ^= z.posTable[i][stoneIdx(c)]
	}
	return key
}

// ToggleStone adds or removes a stone from a key. XOR is its own inverse,
// so the same call undoes a placement.
func (z *Zobrist) ToggleStone(key uint64, row, col int, c board.Cell) uint64 {
	return key ^ z.posTable[row*z.boardDim+col][stoneIdx(c)]
}

type store struct {
	sync.Mutex
	tables map[int]*Zobrist
}

var tables = &store{tables: make(map[int]*Zobrist)}

// ForDim returns the process-wide table for a board dimension, creating it
// on first use. Sharing the table keeps keys comparable across games of the
// same size.
func ForDim(dim int) *Zobrist {
	tables.Lock()
	defer tables.Unlock()
	if z, ok := tables.tables[dim]; ok {
		return z
	}
	z := &Zobrist{}
	z.Initialize(dim)
	tables.tables[dim] = z
	return z
}
