package automatic

// Data collection for automatic game. Allow computer vs computer games, etc.

import (
	"context"
	"errors"
	"expvar"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/gomoku/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

// playing is held for the whole of one StartCompVComp call.
var playing atomic.Bool

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

type job struct {
	gameID int
	seed   []byte
}

// StartCompVComp plays numGames bot-vs-bot games on threads goroutines,
// writes every move to outputFilename and returns a summary of the games
// that finished. Each goroutine owns its own game and bots. Cancelling ctx
// stops after the moves in flight; the summary then covers fewer games.
func StartCompVComp(ctx context.Context, cfg *config.Config, numGames int,
	threads int, outputFilename string) (*Summary, error) {

	if !playing.CompareAndSwap(false, true) {
		return nil, ErrAlreadyPlaying
	}
	defer playing.Store(false)
	threads = max(threads, 1)

	seeds, err := SeedsFor(cfg.GetString(config.ConfigAutoplaySeedFile), numGames)
	if err != nil {
		return nil, err
	}

	logChan := make(chan string, 100)
	runners := make([]*GameRunner, threads)
	for i := range runners {
		runners[i], err = NewGameRunner(logChan, cfg)
		if err != nil {
			return nil, err
		}
	}

	logfile, err := os.Create(outputFilename)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("games", numGames).Int("threads", threads).Msg("starting-autoplay")

	CVCCounter.Set(0)
	loggerDone := make(chan struct{})
	go func() {
		defer close(loggerDone)
		logfile.WriteString(LogHeader)
		for msg := range logChan {
			logfile.WriteString(msg)
		}
		logfile.Close()
		log.Debug().Msg("exiting-turn-logger")
	}()

	jobs := make(chan job, 100)
	var results []*GameResult
	var resultsMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 1; i <= numGames; i++ {
			j := job{gameID: i}
			if len(seeds) > 0 {
				seed := seeds[(i-1)%len(seeds)]
				j.seed = seed[:]
			}
			select {
			case jobs <- j:
			case <-gctx.Done():
				log.Info().Msg("got-stop-signal")
				return nil
			}
		}
		log.Debug().Msg("finished-queueing-jobs")
		return nil
	})

	for _, r := range runners {
		r := r
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for j := range jobs {
				res, err := r.PlayGame(gctx, j.gameID, j.seed)
				if err != nil {
					return err
				}
				resultsMu.Lock()
				results = append(results, res)
				resultsMu.Unlock()
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	close(logChan)
	<-loggerDone
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	log.Info().Int("finished", len(results)).Msg("all-games-finished")

	sort.Slice(results, func(i, j int) bool { return results[i].GameID < results[j].GameID })
	summary := Summarize(results)
	summary.Describe(cfg)
	if path := cfg.GetString(config.ConfigAutoplaySummary); path != "" {
		if err := summary.WriteYAML(path); err != nil {
			return summary, err
		}
	}
	return summary, nil
}
