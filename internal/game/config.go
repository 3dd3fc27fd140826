package game

import "time"

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible draws.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	LettersTime   time.Duration
	NumbersTime   time.Duration
	ConundrumTime time.Duration

	LeaderboardSize int

	// LexiconURL, when set, is asked for definitions before the embedded
	// word list.
	LexiconURL string

	// HintTimeout bounds the search for a suggested numbers solution.
	HintTimeout time.Duration
}

// DefaultConfig returns the standard round times.
func DefaultConfig() Config {
	return Config{
		LettersTime:     30 * time.Second,
		NumbersTime:     60 * time.Second,
		ConundrumTime:   30 * time.Second,
		LeaderboardSize: 10,
		HintTimeout:     2 * time.Second,
	}
}
