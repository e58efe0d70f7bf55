package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/domino14/gomoku/game"
)

func parseWinner(s string) (game.Winner, error) {
	switch s {
	case "black":
		return game.BlackWins, nil
	case "white":
		return game.WhiteWins, nil
	case "draw":
		return game.Draw, nil
	}
	return game.NoWinner, fmt.Errorf("unknown result %q", s)
}

// ReadLogFile rebuilds the results of every finished game in an autoplay
// move log. Games cut short by cancellation have no result row and are
// skipped.
func ReadLogFile(r io.Reader) ([]*GameResult, error) {
	cr := csv.NewReader(r)
	// Record looks like:
	// gameID,ply,player,move,score,nodes,elapsedms,result
	cr.FieldsPerRecord = 8

	inProgress := map[int]*GameResult{}
	var finished []*GameResult
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			// this is the header line
			continue
		}
		gameID, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, err
		}
		ply, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, err
		}
		nodes, err := strconv.Atoi(record[5])
		if err != nil {
			return nil, err
		}
		ms, err := strconv.ParseFloat(record[6], 64)
		if err != nil {
			return nil, err
		}
		res, ok := inProgress[gameID]
		if !ok {
			res = &GameResult{GameID: gameID}
			inProgress[gameID] = res
		}
		// random opening plies search nothing
		if nodes > 0 {
			idx := 0
			if record[2] == "White" {
				idx = 1
			}
			res.DecisionMs[idx] = append(res.DecisionMs[idx], ms)
			res.Nodes[idx] += nodes
		}
		if record[7] != "" {
			res.Winner, err = parseWinner(record[7])
			if err != nil {
				return nil, err
			}
			res.Plies = ply
			finished = append(finished, res)
			delete(inProgress, gameID)
		}
	}
	return finished, nil
}

// AnalyzeLogFile analyzes the given game CSV file and spits out a bunch of
// statistics.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	results, err := ReadLogFile(file)
	if err != nil {
		return "", err
	}
	return Summarize(results).String(), nil
}
