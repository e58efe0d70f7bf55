package evaluator

import (
	"fmt"

	"github.com/domino14/gomoku/board"
)

// Pattern is a named arrangement of stones within a single line.
type Pattern int

const (
	Five      Pattern = iota // XXXXX
	OpenFour                 // _XXXX_
	Four                     // XXXX
	OpenThree                // _XXX_
	Three                    // XXX
	OpenTwo                  // _XX_
	Two                      // XX
	NumPatterns
)

var patternNames = [NumPatterns]string{
	"five", "open_four", "four", "open_three", "three", "open_two", "two",
}

func (p Pattern) String() string {
	if p < 0 || p >= NumPatterns {
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
	return patternNames[p]
}

// Weights holds the score of one occurrence of each pattern for the
// perspective player. The opponent's occurrences count negatively with the
// same magnitude.
type Weights [NumPatterns]int

// DefaultWeights has five dominating everything else.
var DefaultWeights = Weights{
	Five:      100000,
	OpenFour:  10000,
	Four:      1000,
	OpenThree: 500,
	Three:     100,
	OpenTwo:   50,
	Two:       10,
}

// shape returns the cell sequence for pattern p played by c.
func shape(p Pattern, c board.Cell) []board.Cell {
	run := func(n int) []board.Cell {
		s := make([]board.Cell, n)
		for i := range s {
			s[i] = c
		}
		return s
	}
	open := func(n int) []board.Cell {
		s := append([]board.Cell{board.Empty}, run(n)...)
		return append(s, board.Empty)
	}
	switch p {
	case Five:
		return run(5)
	case OpenFour:
		return open(4)
	case Four:
		return run(4)
	case OpenThree:
		return open(3)
	case Three:
		return run(3)
	case OpenTwo:
		return open(2)
	case Two:
		return run(2)
	}
	panic(fmt.Sprintf("unknown pattern %d", p))
}

// CountOccurrences counts every position at which pattern appears
// contiguously in line, overlapping occurrences included.
func CountOccurrences(line, pattern []board.Cell) int {
	count := 0
	for start := 0; start+len(pattern) <= len(line); start++ {
		match := true
		for i, c := range pattern {
			if line[start+i] != c {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return count
}
