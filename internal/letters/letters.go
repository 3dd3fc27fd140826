// Package letters draws the nine letters for a letters round.
package letters

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/samdwyer/countdown/internal/gamedata"
	"github.com/samdwyer/countdown/internal/gameerr"
)

const (
	// Total is the number of letters drawn per round.
	Total = 9
	// MinVowels is the fewest vowels a player may ask for.
	MinVowels = 3
	// MaxVowels is the most vowels a player may ask for.
	MaxVowels = 9
)

// Set is one round's draw.
type Set struct {
	Vowels  int    // Number of vowels the player asked for
	Letters []rune // Vowels first, then consonants; always Total long
}

// String returns the letters as an uppercase string.
func (s Set) String() string {
	return string(s.Letters)
}

// Pool draws letters from fixed weighted vowel and consonant pools.
// The canonical pools are never consumed; each draw samples a fresh copy.
type Pool struct {
	vowels     []gamedata.TileDef
	consonants []gamedata.TileDef
	rng        *rand.Rand
}

// NewPool creates a pool from loaded tile definitions.
func NewPool(pools gamedata.LetterPoolsFile, rng *rand.Rand) *Pool {
	return &Pool{
		vowels:     pools.Vowels,
		consonants: pools.Consonants,
		rng:        rng,
	}
}

// LoadPool creates a pool from the embedded letters.json.
func LoadPool(rng *rand.Rand) (*Pool, error) {
	pools, err := gamedata.LoadLetterPools()
	if err != nil {
		return nil, err
	}
	return NewPool(pools, rng), nil
}

// Draw returns vowelCount vowels and Total-vowelCount consonants, each
// sampled without replacement from its pool.
func (p *Pool) Draw(vowelCount int) (Set, error) {
	if vowelCount < MinVowels || vowelCount > MaxVowels {
		return Set{}, gameerr.New(gameerr.ErrRange,
			fmt.Sprintf("Please enter only numbers between %d and %d", MinVowels, MaxVowels))
	}

	letters := make([]rune, 0, Total)
	letters = append(letters, p.sample(p.vowels, vowelCount)...)
	letters = append(letters, p.sample(p.consonants, Total-vowelCount)...)

	return Set{Vowels: vowelCount, Letters: letters}, nil
}

// sample shuffles a fresh bag and takes the first n tiles.
func (p *Pool) sample(tiles []gamedata.TileDef, n int) []rune {
	bag := gamedata.Bag(tiles)
	p.rng.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
	if n > len(bag) {
		n = len(bag)
	}
	return bag[:n]
}

// IsVowel reports whether r is one of AEIOU, ignoring case.
func IsVowel(r rune) bool {
	return strings.ContainsRune("AEIOUaeiou", r)
}
