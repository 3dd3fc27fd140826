// Package conundrum picks and scrambles the nine-letter word for the final
// round.
package conundrum

import (
	"math/rand"
	"strings"

	"github.com/samdwyer/countdown/internal/gameerr"
	"github.com/samdwyer/countdown/internal/profanity"
)

const (
	// Length is the length of every conundrum word.
	Length = 9

	maxPicks    = 50
	maxShuffles = 20
)

// Conundrum is a target word and its scrambled letters.
type Conundrum struct {
	Target    string // Uppercase answer
	Scrambled string // Permutation of Target shown to the player
}

// WordSource supplies candidate nine-letter words.
type WordSource interface {
	NineLetterWords() []string
}

// Generator produces conundrums from a word source.
type Generator struct {
	words  []string
	scorer profanity.Scorer
	rng    *rand.Rand
}

// NewGenerator creates a generator. Words that are not exactly Length
// letters are skipped. A nil scorer accepts every word.
func NewGenerator(src WordSource, scorer profanity.Scorer, rng *rand.Rand) *Generator {
	var words []string
	for _, w := range src.NineLetterWords() {
		if len(w) == Length {
			words = append(words, strings.ToUpper(w))
		}
	}
	return &Generator{words: words, scorer: scorer, rng: rng}
}

// Generate picks a clean word and scrambles it. Scrambling repeats while the
// result reads the same as the answer, unless every letter is the same.
func (g *Generator) Generate() (Conundrum, error) {
	if len(g.words) == 0 {
		return Conundrum{}, gameerr.New(gameerr.ErrExternalService, "no conundrum words available")
	}

	var target string
	for i := 0; ; i++ {
		if i == maxPicks {
			return Conundrum{}, gameerr.New(gameerr.ErrExternalService, "no clean conundrum word found")
		}
		target = g.words[g.rng.Intn(len(g.words))]
		if !profanity.Rejects(g.scorer, target) {
			break
		}
	}

	scrambled := target
	if distinct(target) > 1 {
		for i := 0; i < maxShuffles && scrambled == target; i++ {
			scrambled = g.shuffle(target)
		}
	}
	return Conundrum{Target: target, Scrambled: scrambled}, nil
}

func (g *Generator) shuffle(word string) string {
	letters := []rune(word)
	g.rng.Shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
	return string(letters)
}

func distinct(word string) int {
	seen := make(map[rune]struct{}, len(word))
	for _, r := range word {
		seen[r] = struct{}{}
	}
	return len(seen)
}
