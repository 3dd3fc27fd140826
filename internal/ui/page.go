package ui

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tone picks the colour a line is drawn in.
type Tone int

const (
	TonePlain Tone = iota
	ToneAccent
	ToneError
	ToneSuccess
	ToneMuted
)

// Line is one line of page text.
type Line struct {
	Text string
	Tone Tone
}

// Page is everything on screen apart from the prompt.
type Page struct {
	Title  string
	Lines  []Line
	Status Line // Shown just above the prompt; validation errors and verdicts
}

// Text converts plain strings into lines.
func Text(lines ...string) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{Text: l}
	}
	return out
}

// WithStatus returns a copy of p with its status line replaced.
func (p Page) WithStatus(text string, tone Tone) Page {
	p.Status = Line{Text: text, Tone: tone}
	return p
}

var numberWords = []string{"ZERO", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE", "TEN"}

// Banner returns the heading for a 1-indexed round, e.g. "ROUND ONE".
func Banner(round int) string {
	if round < 0 || round >= len(numberWords) {
		return "ROUND"
	}
	return "ROUND " + numberWords[round]
}

var titleCaser = cases.Title(language.English)

// DisplayName formats a player name for display.
func DisplayName(name string) string {
	return titleCaser.String(strings.ToLower(name))
}

// Spaced returns s with a space between each character, for showing drawn
// letters.
func Spaced(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
