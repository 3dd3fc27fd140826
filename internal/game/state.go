// Package game provides the round state machine and the loop that drives it.
package game

import (
	"errors"
	"fmt"
)

// State is a phase of the game.
type State int

const (
	StateIntro State = iota
	StateRules
	StateScores
	StateEnterName
	StateLettersRound
	StateShowLetters
	StateLettersGuess
	StateLettersFeedback
	StateNumbersRound
	StateShowNumbers
	StateNumbersGuess
	StateNumbersFeedback
	StateShowConundrum
	StateConundrumGuess
	StateConundrumFeedback
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIntro:
		return "intro"
	case StateRules:
		return "rules"
	case StateScores:
		return "scores"
	case StateEnterName:
		return "enter_name"
	case StateLettersRound:
		return "letters_round"
	case StateShowLetters:
		return "show_letters"
	case StateLettersGuess:
		return "letters_guess"
	case StateLettersFeedback:
		return "letters_feedback"
	case StateNumbersRound:
		return "numbers_round"
	case StateShowNumbers:
		return "show_numbers"
	case StateNumbersGuess:
		return "numbers_guess"
	case StateNumbersFeedback:
		return "numbers_feedback"
	case StateShowConundrum:
		return "show_conundrum"
	case StateConundrumGuess:
		return "conundrum_guess"
	case StateConundrumFeedback:
		return "conundrum_feedback"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned for a move the transition table does not
// allow.
var ErrInvalidTransition = errors.New("invalid state transition")

// transitions lists every legal move. Intro -> LettersRound is a restart
// with a carried-over player.
var transitions = map[State][]State{
	StateIntro:             {StateEnterName, StateRules, StateScores, StateLettersRound},
	StateRules:             {StateEnterName, StateIntro},
	StateScores:            {StateIntro},
	StateEnterName:         {StateLettersRound},
	StateLettersRound:      {StateShowLetters},
	StateShowLetters:       {StateLettersGuess},
	StateLettersGuess:      {StateLettersFeedback},
	StateLettersFeedback:   {StateLettersRound, StateNumbersRound},
	StateNumbersRound:      {StateShowNumbers},
	StateShowNumbers:       {StateNumbersGuess},
	StateNumbersGuess:      {StateNumbersFeedback},
	StateNumbersFeedback:   {StateShowConundrum},
	StateShowConundrum:     {StateConundrumGuess, StateConundrumFeedback},
	StateConundrumGuess:    {StateConundrumFeedback},
	StateConundrumFeedback: {StateGameOver},
	StateGameOver:          nil,
}

// CanMove reports whether the table allows from -> to.
func CanMove(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func invalidMove(from, to State) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// startsRound reports whether entering s begins a new round.
func startsRound(s State) bool {
	return s == StateLettersRound || s == StateNumbersRound || s == StateShowConundrum
}
