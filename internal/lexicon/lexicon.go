// Package lexicon answers dictionary questions about words.
//
// The game only needs to know whether a word has a definition. Meanings are
// carried along for display when a source provides them.
package lexicon

import (
	"context"
	"errors"
	"strings"

	"github.com/samdwyer/countdown/internal/gamedata"
)

// Meaning is one sense of a word.
type Meaning struct {
	PartOfSpeech string
	Text         string
}

// Definition is what a lexicon knows about a word.
type Definition struct {
	Word     string
	Meanings []Meaning // May be empty for word-list sources
	Source   string
}

// First returns the first meaning, if any.
func (d *Definition) First() (Meaning, bool) {
	if d == nil || len(d.Meanings) == 0 {
		return Meaning{}, false
	}
	return d.Meanings[0], true
}

// Lexicon looks up words. A nil Definition with a nil error means the word
// is unknown; an error means the source could not answer.
type Lexicon interface {
	MeaningOf(ctx context.Context, word string) (*Definition, error)
}

// Corpus supplies word lists for conundrums and best-word hints.
type Corpus interface {
	NineLetterWords() []string
	Words() []string
}

// Dictionary is the embedded word-list lexicon. It knows which words exist
// but carries no meanings.
type Dictionary struct {
	words *gamedata.WordRegistry
	nine  *gamedata.WordRegistry
}

// NewDictionary builds a dictionary from explicit lists. Nine-letter words
// are added to the main list as well.
func NewDictionary(words, nine []string) *Dictionary {
	all := make([]string, 0, len(words)+len(nine))
	all = append(all, words...)
	all = append(all, nine...)
	return &Dictionary{
		words: gamedata.NewWordRegistry(all),
		nine:  gamedata.NewWordRegistry(nine),
	}
}

// LoadDictionary builds a dictionary from the embedded word lists. The main
// list already holds every conundrum word.
func LoadDictionary() (*Dictionary, error) {
	words, err := gamedata.LoadWordRegistry(gamedata.WordsFile)
	if err != nil {
		return nil, err
	}
	nine, err := gamedata.LoadWordRegistry(gamedata.NineWordsFile)
	if err != nil {
		return nil, err
	}
	return &Dictionary{words: words, nine: nine}, nil
}

// MeaningOf returns a bare definition when the word is listed.
func (d *Dictionary) MeaningOf(ctx context.Context, word string) (*Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" || !d.words.Contains(w) {
		return nil, nil
	}
	return &Definition{Word: w, Source: "embedded"}, nil
}

// NineLetterWords returns the conundrum candidates.
func (d *Dictionary) NineLetterWords() []string {
	return d.nine.All()
}

// Words returns every word the dictionary knows.
func (d *Dictionary) Words() []string {
	return d.words.All()
}

// Chain asks each lexicon in turn. The first definition found wins. When no
// source finds the word, Chain reports it unknown if any source answered,
// and returns the joined errors only if every source failed.
type Chain []Lexicon

// MeaningOf implements Lexicon.
func (c Chain) MeaningOf(ctx context.Context, word string) (*Definition, error) {
	var errs []error
	answered := false
	for _, lex := range c {
		def, err := lex.MeaningOf(ctx, word)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		answered = true
		if def != nil {
			return def, nil
		}
	}
	if answered || len(errs) == 0 {
		return nil, nil
	}
	return nil, errors.Join(errs...)
}
