// Package profanity scores text for offensive language.
package profanity

import (
	"strings"

	goaway "github.com/TwiN/go-away"

	"github.com/samdwyer/countdown/internal/gamedata"
)

// Threshold is the score at or above which text is rejected.
const Threshold = 0.9

// Scorer rates text from 0 (clean) to 1 (certainly profane).
type Scorer interface {
	Score(text string) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(text string) float64

// Score calls f(text).
func (f ScorerFunc) Score(text string) float64 { return f(text) }

// Rejects reports whether s scores text at or above Threshold.
func Rejects(s Scorer, text string) bool {
	if s == nil {
		return false
	}
	return s.Score(text) >= Threshold
}

// Detector is a Scorer backed by go-away's dictionary detector.
// go-away gives a yes/no answer, so scores are either 0 or 1.
type Detector struct {
	detector *goaway.ProfanityDetector
}

// NewDetector creates a detector that also catches leetspeak and
// special-character substitutions. go-away matches substrings, so allowed
// lists clean words that contain a profanity ("asset", "canal"); they are
// added to go-away's own false positives.
func NewDetector(allowed ...string) *Detector {
	falsePositives := make([]string, 0, len(goaway.DefaultFalsePositives)+len(allowed))
	falsePositives = append(falsePositives, goaway.DefaultFalsePositives...)
	for _, w := range allowed {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			falsePositives = append(falsePositives, w)
		}
	}
	return &Detector{
		detector: goaway.NewProfanityDetector().
			WithSanitizeLeetSpeak(true).
			WithSanitizeSpecialCharacters(true).
			WithSanitizeAccents(true).
			WithCustomDictionary(goaway.DefaultProfanities, falsePositives, goaway.DefaultFalseNegatives),
	}
}

// LoadDetector creates a detector that allows the embedded list of clean
// dictionary words.
func LoadDetector() (*Detector, error) {
	allowed, err := gamedata.LoadWords(gamedata.AllowedWordsFile)
	if err != nil {
		return nil, err
	}
	return NewDetector(allowed...), nil
}

// Score returns 1 when the text contains profanity and 0 otherwise.
func (d *Detector) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	if d.detector.IsProfane(text) {
		return 1
	}
	return 0
}
