// Package score computes round scores.
package score

import (
	"fmt"

	"github.com/samdwyer/countdown/internal/entity"
	"github.com/samdwyer/countdown/internal/gameerr"
)

// FlatRate is the per-second score for numbers and conundrum rounds.
const FlatRate = 10

// LetterRound scores a letters-round word as its length times the seconds
// left. Zero seconds scores zero.
func LetterRound(word string, secs int) (int, error) {
	if secs < 0 {
		return 0, gameerr.New(gameerr.ErrRange, fmt.Sprintf("negative time remaining: %d", secs))
	}
	return len(word) * secs, nil
}

// Flat scores a numbers or conundrum round.
func Flat(secs int) (int, error) {
	if secs < 0 {
		return 0, gameerr.New(gameerr.ErrRange, fmt.Sprintf("negative time remaining: %d", secs))
	}
	return FlatRate * secs, nil
}

// ForRound scores a successful answer in a 1-indexed round.
func ForRound(round int, word string, secs int) (int, error) {
	switch entity.KindOf(round) {
	case entity.KindLetters:
		return LetterRound(word, secs)
	case entity.KindNumbers, entity.KindConundrum:
		return Flat(secs)
	default:
		return 0, gameerr.New(gameerr.ErrRange, fmt.Sprintf("no such round: %d", round))
	}
}

// Apply adds delta to the player's score and lifts the high score when it
// is passed. Negative deltas are ignored.
func Apply(p *entity.Player, delta int) {
	if delta <= 0 {
		return
	}
	p.Score += delta
	if p.Score > p.HighScore {
		p.HighScore = p.Score
	}
}
