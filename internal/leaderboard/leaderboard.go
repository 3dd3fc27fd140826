// Package leaderboard stores the best completed game scores.
package leaderboard

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSize is how many scores make the board.
const DefaultSize = 10

// Entry is one completed game on the board.
type Entry struct {
	GameID    string
	Name      string
	Score     int
	CreatedAt time.Time
}

// Store persists the leaderboard.
type Store interface {
	// TopScores returns up to limit entries, best first. Ties keep the
	// earlier game first.
	TopScores(ctx context.Context, limit int) ([]Entry, error)
	// InsertIfTop records a score if it would make the board and reports
	// whether it did.
	InsertIfTop(ctx context.Context, name string, score int) (bool, error)
	Close() error
}

// HighScoreFor returns the best score on the board for name, or 0. Names
// match regardless of case.
func HighScoreFor(entries []Entry, name string) int {
	best := 0
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) && e.Score > best {
			best = e.Score
		}
	}
	return best
}

// qualifies reports whether score makes a board currently holding top.
func qualifies(top []Entry, size, score int) bool {
	if score <= 0 {
		return false
	}
	return len(top) < size || score > top[len(top)-1].Score
}

// Memory is an in-process Store.
type Memory struct {
	mu      sync.Mutex
	size    int
	entries []Entry
	now     func() time.Time
}

// NewMemory creates an empty board holding size entries.
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = DefaultSize
	}
	return &Memory{size: size, now: time.Now}
}

// TopScores implements Store.
func (m *Memory) TopScores(_ context.Context, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.entries) || limit <= 0 {
		limit = len(m.entries)
	}
	out := make([]Entry, limit)
	copy(out, m.entries)
	return out, nil
}

// InsertIfTop implements Store.
func (m *Memory) InsertIfTop(_ context.Context, name string, score int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !qualifies(m.entries, m.size, score) {
		return false, nil
	}
	m.entries = append(m.entries, Entry{
		GameID:    uuid.NewString(),
		Name:      name,
		Score:     score,
		CreatedAt: m.now(),
	})
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.entries[i].Score > m.entries[j].Score
	})
	if len(m.entries) > m.size {
		m.entries = m.entries[:m.size]
	}
	return true, nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }
