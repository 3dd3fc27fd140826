package gamedata

import (
	"errors"
	"strings"
)

// Word list files.
const (
	WordsFile     = "words.txt"      // Every word the embedded dictionary knows
	NineWordsFile = "words_nine.txt" // Conundrum candidates
	// Dictionary words that only contain a listed profanity, like "asset"
	AllowedWordsFile = "words_allowed.txt"
)

// WordRegistry holds a loaded word list and provides lookup.
type WordRegistry struct {
	words []string
	index map[string]struct{}
}

// NewWordRegistry creates a registry from a list of words.
// Duplicates are kept in the list but indexed once.
func NewWordRegistry(words []string) *WordRegistry {
	registry := &WordRegistry{
		words: make([]string, 0, len(words)),
		index: make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		w = strings.ToLower(w)
		registry.words = append(registry.words, w)
		registry.index[w] = struct{}{}
	}
	return registry
}

// LoadWordRegistry loads a registry from an embedded word list file.
func LoadWordRegistry(filename string) (*WordRegistry, error) {
	words, err := LoadWords(filename)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, errors.New("no words loaded from " + filename)
	}
	return NewWordRegistry(words), nil
}

// Contains reports whether word is in the registry, ignoring case.
func (r *WordRegistry) Contains(word string) bool {
	_, ok := r.index[strings.ToLower(word)]
	return ok
}

// All returns every word in load order.
func (r *WordRegistry) All() []string {
	return r.words
}
