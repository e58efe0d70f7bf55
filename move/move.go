package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/domino14/gomoku/board"
)

var ErrInvalidCoords = errors.New("invalid coordinates")

// Move is a single stone placement target.
type Move struct {
	Row int
	Col int
}

// None is the zero-information move, used where no move exists (no last
// move, search found nothing).
var None = Move{Row: -1, Col: -1}

var reCoords *regexp.Regexp

func init() {
	reCoords = regexp.MustCompile(`^(?P<col>[A-Z])(?P<row>[0-9]+)$`)
}

func (m Move) IsNone() bool {
	return m == None
}

// String returns board coordinates such as H8 (column letter, then 1-based
// row).
func (m Move) String() string {
	if m.IsNone() {
		return "-"
	}
	return ToBoardGameCoords(m.Row, m.Col)
}

func ToBoardGameCoords(row, col int) string {
	return board.ColumnLabel(col) + strconv.Itoa(row+1)
}

// FromBoardGameCoords parses coordinates like "H8" or "h8". It does not
// check them against a board size.
func FromBoardGameCoords(c string) (Move, error) {
	matches := reCoords.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(c)))
	if len(matches) != 3 {
		return None, fmt.Errorf("%w: %q", ErrInvalidCoords, c)
	}
	row, err := strconv.Atoi(matches[2])
	if err != nil || row < 1 {
		return None, fmt.Errorf("%w: %q", ErrInvalidCoords, c)
	}
	return Move{Row: row - 1, Col: int(matches[1][0] - 'A')}, nil
}

// Placement is a move together with the player who made it; the move
// history is a sequence of placements.
type Placement struct {
	Move
	Player board.Cell
}

func (p Placement) String() string {
	return fmt.Sprintf("%v %v", p.Player, p.Move)
}
