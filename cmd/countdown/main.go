// Package main is the entry point for Countdown.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/samdwyer/countdown/internal/config"
	"github.com/samdwyer/countdown/internal/game"
	"github.com/samdwyer/countdown/internal/leaderboard"
	"github.com/samdwyer/countdown/internal/logging"
	"github.com/samdwyer/countdown/internal/telemetry"
	"github.com/samdwyer/countdown/internal/ui"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_COUNTDOWN_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logs, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logs.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Telemetry {
		// Set up OTEL environment variables from our .env variables
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			zlog.Warn().Err(err).Msg("telemetry setup failed, running without observability")
			telemetry.Disable()
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					zlog.Error().Err(err).Msg("telemetry shutdown")
				}
			}()
		}
	} else {
		telemetry.Disable()
	}

	var board leaderboard.Store
	sqlBoard, err := leaderboard.Open(ctx, cfg.LeaderboardDSN, cfg.LeaderboardSize)
	if err != nil {
		zlog.Warn().Err(err).Msg("leaderboard unavailable, scores kept for this session only")
		board = leaderboard.NewMemory(cfg.LeaderboardSize)
	} else {
		board = sqlBoard
	}
	defer board.Close()

	gcfg := gameConfig(cfg)
	deps, err := game.NewDeps(gcfg)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	prompter, err := ui.NewPrompter(cfg.LineMode)
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}

	g := game.New(gcfg, prompter, deps, board)
	err = g.Run(ctx)
	g.Close()
	if err != nil && ctx.Err() == nil {
		log.Fatalf("Game error: %v", err)
	}
}

func gameConfig(cfg config.Config) game.Config {
	gcfg := game.DefaultConfig()
	gcfg.Seed = cfg.Seed
	gcfg.LettersTime = time.Duration(cfg.LettersSeconds) * time.Second
	gcfg.NumbersTime = time.Duration(cfg.NumbersSeconds) * time.Second
	gcfg.ConundrumTime = time.Duration(cfg.ConundrumSeconds) * time.Second
	gcfg.LeaderboardSize = cfg.LeaderboardSize
	gcfg.LexiconURL = cfg.LexiconURL
	return gcfg
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// The .env file may hold an unexpanded variable reference, so the
	// headers are built here.
	apiKey := os.Getenv("HONEYCOMB_COUNTDOWN_API_KEY")
	dataset := os.Getenv("HONEYCOMB_COUNTDOWN_DATASET")
	if dataset == "" {
		dataset = "countdown"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
