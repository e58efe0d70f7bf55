package game

import (
	"fmt"
	"strings"

	"github.com/domino14/gomoku/board"
)

// StatusText describes whose turn it is, or how the game ended.
func (g *Game) StatusText() string {
	if !g.gameOver {
		return fmt.Sprintf("Current: %v", g.onturn)
	}
	if g.winner == Draw {
		return "Game Over: Draw!"
	}
	return fmt.Sprintf("Game Over: %v wins!", g.winner.Player())
}

// ToDisplayText turns the current state of the game into a displayable
// string, highlighting the last move.
func (g *Game) ToDisplayText() string {
	var str strings.Builder
	str.WriteString(g.board.ToDisplayText(g.lastMove.Row, g.lastMove.Col))
	str.WriteString("\n")
	str.WriteString(fmt.Sprintf("%c = %v, %c = %v\n",
		board.Black.Symbol(), board.Black, board.White.Symbol(), board.White))
	if !g.lastMove.IsNone() {
		str.WriteString(fmt.Sprintf("Last move: %v (%d moves played)\n", g.lastMove, len(g.history)))
	}
	str.WriteString(g.StatusText())
	str.WriteString("\n")
	return str.String()
}

// HistoryText lists the moves played so far, one per line.
func (g *Game) HistoryText() string {
	var str strings.Builder
	for i, p := range g.history {
		str.WriteString(fmt.Sprintf("%3d. %v\n", i+1, p))
	}
	return str.String()
}
