package gamedata

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// TileDef is one letter and how many copies of it sit in a pool.
type TileDef struct {
	Letter string `json:"letter"` // Single uppercase letter (e.g., "E")
	Count  int    `json:"count"`  // Copies in the pool; higher = more likely to be drawn
}

// Rune returns the tile's letter as an uppercase rune.
func (t TileDef) Rune() rune {
	r, _ := utf8.DecodeRuneInString(strings.ToUpper(t.Letter))
	return r
}

// LetterPoolsFile represents the structure of letters.json.
type LetterPoolsFile struct {
	Vowels     []TileDef `json:"vowels"`
	Consonants []TileDef `json:"consonants"`
}

// Bag expands tile definitions into a flat multiset, one rune per copy.
// The returned slice is freshly allocated on every call.
func Bag(tiles []TileDef) []rune {
	total := 0
	for _, t := range tiles {
		total += t.Count
	}
	bag := make([]rune, 0, total)
	for _, t := range tiles {
		r := t.Rune()
		for i := 0; i < t.Count; i++ {
			bag = append(bag, r)
		}
	}
	return bag
}

// LoadLetterPools loads the vowel and consonant pools from letters.json.
func LoadLetterPools() (LetterPoolsFile, error) {
	file, err := Load[LetterPoolsFile]("letters.json")
	if err != nil {
		return file, err
	}
	if len(file.Vowels) == 0 || len(file.Consonants) == 0 {
		return file, errors.New("letters.json must define vowels and consonants")
	}
	for _, t := range append(append([]TileDef{}, file.Vowels...), file.Consonants...) {
		if utf8.RuneCountInString(t.Letter) != 1 || t.Count <= 0 {
			return file, fmt.Errorf("letters.json: invalid tile %+v", t)
		}
	}
	return file, nil
}
