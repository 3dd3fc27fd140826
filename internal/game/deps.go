package game

import (
	"math/rand"
	"time"

	"github.com/samdwyer/countdown/internal/conundrum"
	"github.com/samdwyer/countdown/internal/letters"
	"github.com/samdwyer/countdown/internal/lexicon"
	"github.com/samdwyer/countdown/internal/numbers"
	"github.com/samdwyer/countdown/internal/profanity"
)

// lexiconTimeout bounds a single remote dictionary lookup.
const lexiconTimeout = 3 * time.Second

// NewDeps builds the standard collaborators from the embedded data, sharing
// one random source seeded from cfg.
func NewDeps(cfg Config) (Deps, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	letterPool, err := letters.LoadPool(rng)
	if err != nil {
		return Deps{}, err
	}
	numberPool, err := numbers.LoadPool(rng)
	if err != nil {
		return Deps{}, err
	}
	dict, err := lexicon.LoadDictionary()
	if err != nil {
		return Deps{}, err
	}

	detector, err := profanity.LoadDetector()
	if err != nil {
		return Deps{}, err
	}
	var lex lexicon.Lexicon = dict
	if cfg.LexiconURL != "" {
		lex = lexicon.Chain{lexicon.NewHTTP(cfg.LexiconURL, lexiconTimeout), dict}
	}

	return Deps{
		Letters:    letterPool,
		Numbers:    numberPool,
		Conundrums: conundrum.NewGenerator(dict, detector, rng),
		Lexicon:    lex,
		Scorer:     detector,
		Corpus:     dict,
	}, nil
}
