package game

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samdwyer/countdown/internal/conundrum"
	"github.com/samdwyer/countdown/internal/entity"
	"github.com/samdwyer/countdown/internal/letters"
	"github.com/samdwyer/countdown/internal/lexicon"
	"github.com/samdwyer/countdown/internal/numbers"
	"github.com/samdwyer/countdown/internal/profanity"
	"github.com/samdwyer/countdown/internal/score"
	"github.com/samdwyer/countdown/internal/validate"
)

// LetterDrawer draws the letters for a letters round.
type LetterDrawer interface {
	Draw(vowels int) (letters.Set, error)
}

// NumberDealer deals the numbers and target for a numbers round.
type NumberDealer interface {
	Deal(big int) (numbers.Set, error)
}

// ConundrumSource produces the final round's conundrum.
type ConundrumSource interface {
	Generate() (conundrum.Conundrum, error)
}

// Deps are the collaborators a Machine consults.
type Deps struct {
	Letters    LetterDrawer
	Numbers    NumberDealer
	Conundrums ConundrumSource
	Lexicon    lexicon.Lexicon
	Scorer     profanity.Scorer
	Corpus     lexicon.Corpus // Best-word hints; may be nil
}

// Feedback describes the outcome of the last finished round.
type Feedback struct {
	Round    int
	Kind     entity.Kind
	Guess    string
	Points   int
	TimedOut bool

	// Unavailable is set when the round could not be dealt; Cause says why.
	Unavailable bool
	Cause       error

	// Letters and conundrum rounds.
	Known       bool                // Word found in the dictionary
	Definition  *lexicon.Definition // Set when the lexicon knew the word
	LexiconDown bool                // Dictionary could not be consulted
	Answer      string              // Conundrum target

	// Numbers round.
	Evaluated bool
	Value     int
	Diff      int
	Closeness validate.Closeness
}

// Verdict is a short label for logs and spans.
func (f Feedback) Verdict() string {
	switch {
	case f.Unavailable:
		return "unavailable"
	case f.TimedOut:
		return "timeout"
	case f.Points > 0:
		return "scored"
	case f.LexiconDown:
		return "lexicon_unavailable"
	case f.Kind == entity.KindNumbers && !f.Evaluated:
		return "not_evaluated"
	default:
		return "no_score"
	}
}

// Machine is the round state machine for one game. It owns the round
// counter and the draws; it performs no I/O of its own beyond asking its
// lexicon about words.
type Machine struct {
	deps   Deps
	state  State
	round  int
	player *entity.Player

	letters   letters.Set
	numbers   numbers.Set
	conundrum conundrum.Conundrum
	feedback  Feedback

	conundrumErr error // Set when no conundrum could be generated
}

// NewMachine creates a machine at the intro screen.
func NewMachine(deps Deps) *Machine {
	return &Machine{deps: deps, state: StateIntro}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Round returns the 1-indexed round, or 0 before the first round.
func (m *Machine) Round() int { return m.round }

// Player returns the current player, nil before a name is entered.
func (m *Machine) Player() *entity.Player { return m.player }

// Letters returns the current letters draw.
func (m *Machine) Letters() letters.Set { return m.letters }

// Numbers returns the current numbers deal.
func (m *Machine) Numbers() numbers.Set { return m.numbers }

// Conundrum returns the current conundrum.
func (m *Machine) Conundrum() conundrum.Conundrum { return m.conundrum }

// Feedback returns the outcome of the most recent round.
func (m *Machine) Feedback() Feedback { return m.feedback }

// Over reports whether the game has finished.
func (m *Machine) Over() bool { return m.state == StateGameOver }

func (m *Machine) move(to State) error {
	if !CanMove(m.state, to) {
		return invalidMove(m.state, to)
	}
	m.state = to
	if startsRound(to) {
		m.round++
	}
	return nil
}

func (m *Machine) expect(s State) error {
	if m.state != s {
		return fmt.Errorf("%w: %s while in %s", ErrInvalidTransition, s, m.state)
	}
	return nil
}

// Select handles a menu choice on the intro, rules and scores screens.
func (m *Machine) Select(input string) error {
	switch m.state {
	case StateIntro:
		n, err := validate.MenuChoice(input, 3)
		if err != nil {
			return err
		}
		return m.move([]State{StateEnterName, StateRules, StateScores}[n-1])
	case StateRules:
		if strings.TrimSpace(input) == "1" {
			return m.move(StateEnterName)
		}
		return m.move(StateIntro)
	case StateScores:
		return m.move(StateIntro)
	default:
		return invalidMove(m.state, StateIntro)
	}
}

// EnterName validates the player's name and starts round one.
func (m *Machine) EnterName(name string, highScore int) error {
	if err := m.expect(StateEnterName); err != nil {
		return err
	}
	if err := validate.Name(name, m.deps.Scorer); err != nil {
		return err
	}
	m.player = entity.NewPlayer(name, highScore)
	return m.move(StateLettersRound)
}

// Restart starts round one from the intro with a carried-over player.
func (m *Machine) Restart(p *entity.Player) error {
	if err := m.expect(StateIntro); err != nil {
		return err
	}
	m.player = p
	return m.move(StateLettersRound)
}

// ChooseVowels draws the letters for the current round.
func (m *Machine) ChooseVowels(vowels int) error {
	if err := m.expect(StateLettersRound); err != nil {
		return err
	}
	set, err := m.deps.Letters.Draw(vowels)
	if err != nil {
		return err
	}
	m.letters = set
	m.player.Letters = append(m.player.Letters[:0], set.Letters...)
	return m.move(StateShowLetters)
}

// ChooseBig deals the numbers and target for the numbers round.
func (m *Machine) ChooseBig(big int) error {
	if err := m.expect(StateNumbersRound); err != nil {
		return err
	}
	set, err := m.deps.Numbers.Deal(big)
	if err != nil {
		return err
	}
	m.numbers = set
	m.player.Numbers = append(m.player.Numbers[:0], set.Numbers...)
	m.player.Target = set.Target
	return m.move(StateShowNumbers)
}

// Next advances past a display or feedback state.
func (m *Machine) Next() error {
	switch m.state {
	case StateScores:
		return m.move(StateIntro)
	case StateShowLetters:
		return m.move(StateLettersGuess)
	case StateShowNumbers:
		return m.move(StateNumbersGuess)
	case StateShowConundrum:
		if m.conundrumErr != nil {
			return m.skipConundrum()
		}
		return m.move(StateConundrumGuess)
	case StateLettersFeedback:
		if m.round <= 2 {
			return m.move(StateLettersRound)
		}
		return m.move(StateNumbersRound)
	case StateNumbersFeedback:
		// A failed draw still starts round five, which then ends unplayed.
		c, err := m.deps.Conundrums.Generate()
		m.conundrum = c
		m.conundrumErr = err
		return m.move(StateShowConundrum)
	case StateConundrumFeedback:
		return m.move(StateGameOver)
	default:
		return fmt.Errorf("%w: no next state from %s", ErrInvalidTransition, m.state)
	}
}

// skipConundrum ends a conundrum round that has no word to play.
func (m *Machine) skipConundrum() error {
	m.player.Record(m.round, entity.NoGuess)
	m.player.TimeRemaining = 0
	m.feedback = Feedback{
		Round:       m.round,
		Kind:        entity.KindConundrum,
		Unavailable: true,
		Cause:       m.conundrumErr,
	}
	return m.move(StateConundrumFeedback)
}

// Timeout records an empty guess for the round in progress.
func (m *Machine) Timeout() error {
	var next State
	switch m.state {
	case StateLettersGuess:
		next = StateLettersFeedback
	case StateNumbersGuess:
		next = StateNumbersFeedback
	case StateConundrumGuess:
		next = StateConundrumFeedback
	default:
		return fmt.Errorf("%w: timeout while in %s", ErrInvalidTransition, m.state)
	}
	m.player.Record(m.round, entity.NoGuess)
	m.player.TimeRemaining = 0
	m.feedback = Feedback{
		Round:    m.round,
		Kind:     entity.KindOf(m.round),
		TimedOut: true,
		Answer:   m.conundrum.Target,
	}
	return m.move(next)
}

// SubmitLetters checks a letters-round word with secs seconds left.
// Validation failures leave the machine in LettersGuess.
func (m *Machine) SubmitLetters(ctx context.Context, word string, secs int) error {
	if err := m.expect(StateLettersGuess); err != nil {
		return err
	}
	if err := validate.WordGuess(word, m.letters.Letters, m.deps.Scorer); err != nil {
		return err
	}

	fb := Feedback{Round: m.round, Kind: entity.KindLetters, Guess: word}
	def, err := validate.Lookup(ctx, m.deps.Lexicon, word)
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case err != nil:
		fb.LexiconDown = true
	case def != nil:
		fb.Known = true
		fb.Definition = def
		if fb.Points, err = score.ForRound(m.round, word, secs); err != nil {
			return err
		}
	}
	m.finish(fb, secs)
	return m.move(StateLettersFeedback)
}

// SubmitNumbers checks a numbers-round expression with secs seconds left.
// Format and usage failures leave the machine in NumbersGuess; an
// expression that fails to evaluate ends the round with no score.
func (m *Machine) SubmitNumbers(expr string, secs int) error {
	if err := m.expect(StateNumbersGuess); err != nil {
		return err
	}
	if err := validate.NumberExpression(expr, m.numbers.Numbers); err != nil {
		return err
	}

	fb := Feedback{Round: m.round, Kind: entity.KindNumbers, Guess: expr}
	res, err := validate.Evaluate(expr, m.numbers.Target)
	if err == nil {
		fb.Evaluated = true
		fb.Value = res.Value
		fb.Diff = res.Diff
		fb.Closeness = validate.CloseTo(res.Diff)
		if res.Exact {
			if fb.Points, err = score.ForRound(m.round, expr, secs); err != nil {
				return err
			}
		}
	}
	m.finish(fb, secs)
	return m.move(StateNumbersFeedback)
}

// SubmitConundrum checks a conundrum answer with secs seconds left. The
// target word and any other dictionary word using all nine letters both
// score.
func (m *Machine) SubmitConundrum(ctx context.Context, word string, secs int) error {
	if err := m.expect(StateConundrumGuess); err != nil {
		return err
	}
	if err := validate.ConundrumGuess(word, m.conundrum.Target, m.deps.Scorer); err != nil {
		return err
	}

	fb := Feedback{Round: m.round, Kind: entity.KindConundrum, Guess: word, Answer: m.conundrum.Target}
	if strings.EqualFold(word, m.conundrum.Target) {
		fb.Known = true
	} else {
		known, err := validate.InDictionary(ctx, m.deps.Lexicon, word)
		if errors.Is(err, context.Canceled) {
			return err
		}
		if err != nil {
			fb.LexiconDown = true
		}
		fb.Known = known
	}
	if fb.Known {
		var err error
		if fb.Points, err = score.ForRound(m.round, word, secs); err != nil {
			return err
		}
	}
	m.finish(fb, secs)
	return m.move(StateConundrumFeedback)
}

func (m *Machine) finish(fb Feedback, secs int) {
	m.player.Record(m.round, fb.Guess)
	m.player.TimeRemaining = secs
	score.Apply(m.player, fb.Points)
	m.feedback = fb
}
