// Package validate checks player input against the rules of each round.
//
// Every check is a pure function. Failures are *gameerr.Error values whose
// message is shown to the player as-is.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/samdwyer/countdown/internal/gameerr"
	"github.com/samdwyer/countdown/internal/profanity"
)

const (
	// MinWordLength is the shortest word accepted in a letters round.
	MinWordLength = 3
	// ConundrumLength is the exact length of a conundrum answer.
	ConundrumLength = 9
	// MinNameLength and MaxNameLength bound a player's name.
	MinNameLength = 2
	MaxNameLength = 10
)

var (
	numberLiteral   = regexp.MustCompile(`\b\d+\b`)
	illegalInNumber = regexp.MustCompile(`[^0-9()*+/\-\s]`)
)

// LettersUsageValid reports whether word uses each letter no more often than
// it appears in available, ignoring case.
func LettersUsageValid(word string, available []rune) bool {
	counts := make(map[rune]int, len(available))
	for _, r := range available {
		counts[unicode.ToLower(r)]++
	}
	for _, r := range word {
		r = unicode.ToLower(r)
		if counts[r] == 0 {
			return false
		}
		counts[r]--
	}
	return true
}

// WordGuess validates a letters-round word. Checks run in a fixed order and
// the first failure is returned: letters usage, profanity, empty,
// alphabetic, length.
func WordGuess(word string, available []rune, scorer profanity.Scorer) error {
	if !LettersUsageValid(word, available) {
		return gameerr.New(gameerr.ErrConstraint, "You can only use the letters above!")
	}
	return wordShape(word, scorer, func(n int) error {
		if n < MinWordLength {
			return gameerr.New(gameerr.ErrInputFormat,
				fmt.Sprintf("Your word must be at least %d letters long!", MinWordLength))
		}
		return nil
	})
}

// ConundrumGuess validates a conundrum answer against the conundrum's
// letters. Same order as WordGuess, but the word must be exactly nine letters.
func ConundrumGuess(word, target string, scorer profanity.Scorer) error {
	if !LettersUsageValid(word, []rune(target)) {
		return gameerr.New(gameerr.ErrConstraint, "You can only use the conundrum letters!")
	}
	return wordShape(word, scorer, func(n int) error {
		if n != ConundrumLength {
			return gameerr.New(gameerr.ErrInputFormat,
				fmt.Sprintf("Your answer must use all %d letters!", ConundrumLength))
		}
		return nil
	})
}

func wordShape(word string, scorer profanity.Scorer, length func(int) error) error {
	switch {
	case profanity.Rejects(scorer, word):
		return gameerr.New(gameerr.ErrProfanity, "That word is on our profanity list and is not allowed.")
	case word == "":
		return gameerr.New(gameerr.ErrInputFormat, "Please enter a word!")
	case !isAlpha(word):
		return gameerr.New(gameerr.ErrInputFormat, "Please enter letters only")
	}
	return length(len(word))
}

// NumbersUsageValid reports whether every integer literal in expr is
// available, counting repeats against the available multiset. Operators,
// parentheses and whitespace are ignored.
func NumbersUsageValid(expr string, available []int) bool {
	counts := make(map[int]int, len(available))
	for _, n := range available {
		counts[n]++
	}
	for _, lit := range numberLiteral.FindAllString(expr, -1) {
		n, err := strconv.Atoi(lit)
		if err != nil || counts[n] == 0 {
			return false
		}
		counts[n]--
	}
	return true
}

// NumberExpression validates a numbers-round solution before evaluation:
// numbers usage, then emptiness, then the allowed character set.
func NumberExpression(expr string, available []int) error {
	switch {
	case !NumbersUsageValid(expr, available):
		return gameerr.New(gameerr.ErrConstraint, "You can only use the chosen numbers above!")
	case strings.TrimSpace(expr) == "":
		return gameerr.New(gameerr.ErrInputFormat, "Please enter a solution!")
	case illegalInNumber.MatchString(expr):
		return gameerr.New(gameerr.ErrInputFormat, "Please use only numbers or the operators + - / * ()")
	}
	return nil
}

// Name validates a player name: 2-10 letters, nothing profane.
func Name(name string, scorer profanity.Scorer) error {
	switch n := len([]rune(name)); {
	case name == "":
		return gameerr.New(gameerr.ErrInputFormat, "Please enter some text")
	case n < MinNameLength:
		return gameerr.New(gameerr.ErrInputFormat,
			fmt.Sprintf("Please enter a name at least %d characters long", MinNameLength))
	case n > MaxNameLength:
		return gameerr.New(gameerr.ErrInputFormat,
			fmt.Sprintf("Please enter a name no more than %d characters long", MaxNameLength))
	case !isAlpha(name):
		return gameerr.New(gameerr.ErrInputFormat, "Please enter letters only")
	case profanity.Rejects(scorer, name):
		return gameerr.New(gameerr.ErrProfanity, "That name is not allowed, please choose another")
	}
	return nil
}

// MenuChoice parses a menu selection between 1 and max.
func MenuChoice(input string, max int) (int, error) {
	return intInRange(input, 1, max)
}

// VowelCount parses the number of vowels for a letters round.
func VowelCount(input string) (int, error) {
	return intInRange(input, 3, 9)
}

// BigCount parses the number of big numbers for a numbers round.
func BigCount(input string) (int, error) {
	return intInRange(input, 0, 4)
}

func intInRange(input string, lo, hi int) (int, error) {
	msg := fmt.Sprintf("Please enter only numbers between %d and %d", lo, hi)
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, gameerr.Wrap(gameerr.ErrInputFormat, msg, err)
	}
	if n < lo || n > hi {
		return 0, gameerr.New(gameerr.ErrRange, msg)
	}
	return n, nil
}

// isAlpha reports whether s is non-empty ASCII letters only.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
