package config

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/gomoku/cache"
	"github.com/domino14/gomoku/evaluator"
	"github.com/domino14/gomoku/search"
)

const (
	ConfigDebug              = "debug"
	ConfigCPUProfile         = "cpu-profile"
	ConfigBoardSize          = "board-size"
	ConfigAIDepth            = "ai-depth"
	ConfigAIAlgorithm        = "ai-algorithm"
	ConfigAIPlayer           = "ai-player"
	ConfigCandidateThreshold = "candidate-threshold"
	ConfigCandidateRadius    = "candidate-radius"
	ConfigEvalCacheScope     = "eval-cache-scope"
	ConfigHashScheme         = "hash-scheme"

	ConfigAutoplayGames          = "autoplay-games"
	ConfigAutoplayThreads        = "autoplay-threads"
	ConfigAutoplayLogfile        = "autoplay-logfile"
	ConfigAutoplaySummary        = "autoplay-summary"
	ConfigAutoplayRandomPlies    = "autoplay-random-plies"
	ConfigAutoplayBlackAlgorithm = "autoplay-black-algorithm"
	ConfigAutoplayWhiteAlgorithm = "autoplay-white-algorithm"
	ConfigAutoplaySeedFile       = "autoplay-seed-file"
)

var ErrInvalidSetting = errors.New("invalid setting")

type Config struct {
	*viper.Viper
	args []string
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigBoardSize, 15)
	c.SetDefault(ConfigAIDepth, 2)
	c.SetDefault(ConfigAIAlgorithm, "alphabeta")
	c.SetDefault(ConfigAIPlayer, 2)
	c.SetDefault(ConfigCandidateThreshold, 40)
	c.SetDefault(ConfigCandidateRadius, 2)
	c.SetDefault(ConfigEvalCacheScope, "decision")
	c.SetDefault(ConfigHashScheme, "zobrist")

	c.SetDefault(ConfigAutoplayGames, 10)
	c.SetDefault(ConfigAutoplayThreads, runtime.NumCPU())
	c.SetDefault(ConfigAutoplayLogfile, "/tmp/gomoku-autoplay.txt")
	c.SetDefault(ConfigAutoplaySummary, "")
	c.SetDefault(ConfigAutoplayRandomPlies, 2)
	c.SetDefault(ConfigAutoplayBlackAlgorithm, "minimax")
	c.SetDefault(ConfigAutoplayWhiteAlgorithm, "alphabeta")
	c.SetDefault(ConfigAutoplaySeedFile, "")
}

func flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("gomoku", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.Int(ConfigBoardSize, 15, "side length of the board")
	fs.Int(ConfigAIDepth, 2, "search depth of the computer player")
	fs.String(ConfigAIAlgorithm, "alphabeta", "search algorithm: minimax or alphabeta")
	fs.Int(ConfigAIPlayer, 2, "which player the computer plays in human-vs-AI games (1 = black, 2 = white)")
	fs.Int(ConfigCandidateThreshold, 40, "empty-cell count above which candidates are limited to cells near stones")
	fs.Int(ConfigCandidateRadius, 2, "how far from a stone a candidate may be")
	fs.String(ConfigEvalCacheScope, "decision", "evaluation cache lifetime: decision or process")
	fs.String(ConfigHashScheme, "zobrist", "evaluation cache key: zobrist or xxhash")

	fs.Int(ConfigAutoplayGames, 10, "number of computer-vs-computer games")
	fs.Int(ConfigAutoplayThreads, runtime.NumCPU(), "games played in parallel")
	fs.String(ConfigAutoplayLogfile, "/tmp/gomoku-autoplay.txt", "per-move log for autoplay")
	fs.String(ConfigAutoplaySummary, "", "write a YAML summary of autoplay to this file")
	fs.Int(ConfigAutoplayRandomPlies, 2, "random opening plies played before the bots take over")
	fs.String(ConfigAutoplayBlackAlgorithm, "minimax", "search algorithm for black in autoplay")
	fs.String(ConfigAutoplayWhiteAlgorithm, "alphabeta", "search algorithm for white in autoplay")
	fs.String(ConfigAutoplaySeedFile, "", "file of opening seeds, created if missing, for reproducible autoplay")
	return fs
}

// Load reads settings, in increasing order of precedence, from defaults, an
// optional gomoku.yaml in the working directory, GOMOKU_* environment
// variables, and command-line flags in args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	c.SetConfigName("gomoku")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	c.SetEnvPrefix("gomoku")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	fs := flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	c.args = fs.Args()
	return c.Validate()
}

// Snapshot copies the current settings into a config of its own, for work
// that reads settings off the calling goroutine.
func (c *Config) Snapshot() *Config {
	s := DefaultConfig()
	for k, v := range c.AllSettings() {
		s.Set(k, v)
	}
	s.args = c.args
	return s
}

// Args are the command-line arguments left over after flags.
func (c *Config) Args() []string {
	return c.args
}

// Validate checks the settings that would otherwise fail deep inside the
// engine.
func (c *Config) Validate() error {
	if d := c.GetInt(ConfigBoardSize); d < 1 || d > 26 {
		return fmt.Errorf("%w: %s must be between 1 and 26, got %d", ErrInvalidSetting, ConfigBoardSize, d)
	}
	if d := c.GetInt(ConfigAIDepth); d < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidSetting, ConfigAIDepth, d)
	}
	if p := c.GetInt(ConfigAIPlayer); p != 1 && p != 2 {
		return fmt.Errorf("%w: %s must be 1 or 2, got %d", ErrInvalidSetting, ConfigAIPlayer, p)
	}
	if r := c.GetInt(ConfigCandidateRadius); r < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidSetting, ConfigCandidateRadius, r)
	}
	if t := c.GetInt(ConfigCandidateThreshold); t < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidSetting, ConfigCandidateThreshold, t)
	}
	for _, key := range []string{ConfigAIAlgorithm, ConfigAutoplayBlackAlgorithm, ConfigAutoplayWhiteAlgorithm} {
		if _, err := search.ParseStrategy(c.GetString(key)); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidSetting, key, err)
		}
	}
	if _, err := cache.ParseScope(c.GetString(ConfigEvalCacheScope)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSetting, ConfigEvalCacheScope, err)
	}
	if _, err := evaluator.ParseHashScheme(c.GetString(ConfigHashScheme)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSetting, ConfigHashScheme, err)
	}
	return nil
}

// DefaultConfig returns a config with only the defaults loaded.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

// SanitizedSettings is a printable dump of every setting.
func (c *Config) SanitizedSettings() string {
	settings := c.AllSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("%s=%v ", k, settings[k]))
	}
	return strings.TrimSpace(sb.String())
}
