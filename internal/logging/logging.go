// Package logging configures the structured logger.
//
// The terminal belongs to the game screen, so logs go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global zerolog logger at path at the given level.
// An empty path discards logs. The returned closer releases the file.
func Setup(level, path string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if path == "" {
		log.Logger = zerolog.Nop()
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	log.Logger = New(f)
	return f, nil
}

// New returns a logger writing JSON lines to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("app", "countdown").Logger()
}
