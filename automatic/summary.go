package automatic

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gopkg.in/yaml.v3"

	"github.com/domino14/gomoku/config"
	"github.com/domino14/gomoku/game"
)

type PlayerSummary struct {
	Algorithm       string  `yaml:"algorithm,omitempty"`
	Wins            int     `yaml:"wins"`
	Moves           int     `yaml:"moves"`
	MeanDecisionMs  float64 `yaml:"mean-decision-ms"`
	StdevDecisionMs float64 `yaml:"stdev-decision-ms"`
	Nodes           int     `yaml:"nodes"`
}

// Summary aggregates a batch of autoplay games.
type Summary struct {
	Games       int           `yaml:"games"`
	BoardSize   int           `yaml:"board-size,omitempty"`
	Depth       int           `yaml:"depth,omitempty"`
	RandomPlies int           `yaml:"random-plies"`
	Black       PlayerSummary `yaml:"black"`
	White       PlayerSummary `yaml:"white"`
	Draws       int           `yaml:"draws"`
	// BlackScore counts a win as 1 and a draw as 1/2, over all games.
	BlackScore float64 `yaml:"black-score"`
	// BlackScoreMargin is the half-width of the 95% confidence interval
	// around BlackScore.
	BlackScoreMargin float64 `yaml:"black-score-margin"`
	MeanPlies        float64 `yaml:"mean-plies"`
	StdevPlies       float64 `yaml:"stdev-plies"`

	plies []float64
}

func meanStdDev(xs []float64) (float64, float64) {
	switch len(xs) {
	case 0:
		return 0, 0
	case 1:
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}

func summarizePlayer(results []*GameResult, idx int, wins game.Winner) PlayerSummary {
	ms := lo.FlatMap(results, func(r *GameResult, _ int) []float64 { return r.DecisionMs[idx] })
	mean, std := meanStdDev(ms)
	return PlayerSummary{
		Wins:            lo.CountBy(results, func(r *GameResult) bool { return r.Winner == wins }),
		Moves:           len(ms),
		MeanDecisionMs:  mean,
		StdevDecisionMs: std,
		Nodes:           lo.SumBy(results, func(r *GameResult) int { return r.Nodes[idx] }),
	}
}

// Summarize computes the statistics of finished games.
func Summarize(results []*GameResult) *Summary {
	s := &Summary{
		Games: len(results),
		Black: summarizePlayer(results, 0, game.BlackWins),
		White: summarizePlayer(results, 1, game.WhiteWins),
		Draws: lo.CountBy(results, func(r *GameResult) bool { return r.Winner == game.Draw }),
	}
	s.plies = lo.Map(results, func(r *GameResult, _ int) float64 { return float64(r.Plies) })
	s.MeanPlies, s.StdevPlies = meanStdDev(s.plies)

	if s.Games > 0 {
		points := lo.Map(results, func(r *GameResult, _ int) float64 {
			switch r.Winner {
			case game.BlackWins:
				return 1
			case game.Draw:
				return 0.5
			}
			return 0
		})
		var std float64
		s.BlackScore, std = meanStdDev(points)
		z := distuv.UnitNormal.Quantile(0.975)
		s.BlackScoreMargin = z * stat.StdErr(std, float64(s.Games))
	}
	return s
}

// Describe fills in the settings the games were played with.
func (s *Summary) Describe(cfg *config.Config) {
	s.BoardSize = cfg.GetInt(config.ConfigBoardSize)
	s.Depth = cfg.GetInt(config.ConfigAIDepth)
	s.RandomPlies = cfg.GetInt(config.ConfigAutoplayRandomPlies)
	s.Black.Algorithm = cfg.GetString(config.ConfigAutoplayBlackAlgorithm)
	s.White.Algorithm = cfg.GetString(config.ConfigAutoplayWhiteAlgorithm)
}

func (s *Summary) WriteYAML(path string) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

// PrintHistogram draws the distribution of game lengths.
func (s *Summary) PrintHistogram(w io.Writer) error {
	if len(s.plies) == 0 {
		return nil
	}
	h := histogram.Hist(10, s.plies)
	return histogram.Fprint(w, h, histogram.Linear(40))
}

func pct(n, total int) float64 {
	if total == 0 {
		return math.NaN()
	}
	return 100.0 * float64(n) / float64(total)
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", s.Games)
	fmt.Fprintf(&sb, "Black (%s) wins: %d (%.3f%%)\n", s.Black.Algorithm, s.Black.Wins, pct(s.Black.Wins, s.Games))
	fmt.Fprintf(&sb, "White (%s) wins: %d (%.3f%%)\n", s.White.Algorithm, s.White.Wins, pct(s.White.Wins, s.Games))
	fmt.Fprintf(&sb, "Draws: %d (%.3f%%)\n", s.Draws, pct(s.Draws, s.Games))
	fmt.Fprintf(&sb, "Black score: %.3f ± %.3f\n", s.BlackScore, s.BlackScoreMargin)
	fmt.Fprintf(&sb, "Game length: mean %.2f  stdev %.2f plies\n", s.MeanPlies, s.StdevPlies)
	fmt.Fprintf(&sb, "Black decision time: mean %.3f ms  stdev %.3f ms  (%d moves, %d nodes)\n",
		s.Black.MeanDecisionMs, s.Black.StdevDecisionMs, s.Black.Moves, s.Black.Nodes)
	fmt.Fprintf(&sb, "White decision time: mean %.3f ms  stdev %.3f ms  (%d moves, %d nodes)\n",
		s.White.MeanDecisionMs, s.White.StdevDecisionMs, s.White.Moves, s.White.Nodes)
	return sb.String()
}
