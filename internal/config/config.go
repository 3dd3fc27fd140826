// Package config loads game settings from an optional TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds every runtime setting.
type Config struct {
	// Seed for random number generation. 0 picks a random seed.
	Seed int64 `toml:"seed"`

	LettersSeconds   int `toml:"letters_seconds"`
	NumbersSeconds   int `toml:"numbers_seconds"`
	ConundrumSeconds int `toml:"conundrum_seconds"`

	LeaderboardDSN  string `toml:"leaderboard_dsn"`
	LeaderboardSize int    `toml:"leaderboard_size"`

	// LexiconURL is a dictionaryapi.dev style endpoint consulted before the
	// embedded word list. Empty uses the word list only.
	LexiconURL string `toml:"lexicon_url"`

	LogLevel  string `toml:"log_level"`
	LogFile   string `toml:"log_file"`
	LineMode  bool   `toml:"line_mode"`
	Telemetry bool   `toml:"telemetry"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LettersSeconds:   30,
		NumbersSeconds:   60,
		ConundrumSeconds: 30,
		LeaderboardDSN:   "file:countdown.db",
		LeaderboardSize:  10,
		LogLevel:         "info",
		LogFile:          "countdown.log",
	}
}

// Load reads the file named by COUNTDOWN_CONFIG (default countdown.toml),
// if present, over the defaults and then applies environment overrides.
func Load() (Config, error) {
	cfg := Default()

	path := getEnv("COUNTDOWN_CONFIG", "countdown.toml")
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file; defaults and environment only.
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if keys := md.Undecoded(); len(keys) > 0 {
			log.Printf("Warning: unknown keys in %s: %v", path, keys)
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Seed = getEnvInt64("COUNTDOWN_SEED", c.Seed)
	c.LettersSeconds = getEnvInt("COUNTDOWN_LETTERS_SECONDS", c.LettersSeconds)
	c.NumbersSeconds = getEnvInt("COUNTDOWN_NUMBERS_SECONDS", c.NumbersSeconds)
	c.ConundrumSeconds = getEnvInt("COUNTDOWN_CONUNDRUM_SECONDS", c.ConundrumSeconds)
	c.LeaderboardDSN = getEnv("COUNTDOWN_LEADERBOARD_DSN", c.LeaderboardDSN)
	c.LeaderboardSize = getEnvInt("COUNTDOWN_LEADERBOARD_SIZE", c.LeaderboardSize)
	c.LexiconURL = getEnv("COUNTDOWN_LEXICON_URL", c.LexiconURL)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("COUNTDOWN_LOG_FILE", c.LogFile)
	c.LineMode = getEnvBool("COUNTDOWN_LINE_MODE", c.LineMode)
	c.Telemetry = getEnvBool("COUNTDOWN_TELEMETRY", c.Telemetry)
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	for name, secs := range map[string]int{
		"letters_seconds":   c.LettersSeconds,
		"numbers_seconds":   c.NumbersSeconds,
		"conundrum_seconds": c.ConundrumSeconds,
	} {
		if secs <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, secs))
		}
	}
	if c.LeaderboardSize <= 0 {
		errs = append(errs, fmt.Errorf("leaderboard_size must be positive, got %d", c.LeaderboardSize))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}
