package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gomoku/automatic"
	"github.com/domino14/gomoku/config"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tstart := time.Now()
	summary, err := automatic.StartCompVComp(ctx, cfg,
		cfg.GetInt(config.ConfigAutoplayGames),
		cfg.GetInt(config.ConfigAutoplayThreads),
		cfg.GetString(config.ConfigAutoplayLogfile))
	if err != nil {
		log.Err(err).Msg("autoplay-failed")
		return
	}
	log.Info().Dur("elapsed", time.Since(tstart)).Msg("autoplay-finished")

	fmt.Print(summary.String())
	fmt.Println("Game length (plies):")
	if err := summary.PrintHistogram(os.Stdout); err != nil {
		log.Err(err).Msg("histogram-failed")
	}
}
