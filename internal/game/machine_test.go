package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/countdown/internal/conundrum"
	"github.com/samdwyer/countdown/internal/entity"
	"github.com/samdwyer/countdown/internal/gameerr"
	"github.com/samdwyer/countdown/internal/letters"
	"github.com/samdwyer/countdown/internal/lexicon"
	"github.com/samdwyer/countdown/internal/numbers"
	"github.com/samdwyer/countdown/internal/score"
	"github.com/samdwyer/countdown/internal/validate"
)

type fixedLetters struct{ set letters.Set }

func (f fixedLetters) Draw(vowels int) (letters.Set, error) {
	if vowels < letters.MinVowels || vowels > letters.MaxVowels {
		return letters.Set{}, gameerr.New(gameerr.ErrRange, "Please enter only numbers between 3 and 9")
	}
	return f.set, nil
}

type fixedNumbers struct{ set numbers.Set }

func (f fixedNumbers) Deal(int) (numbers.Set, error) { return f.set, nil }

type fixedConundrum struct{ c conundrum.Conundrum }

func (f fixedConundrum) Generate() (conundrum.Conundrum, error) { return f.c, nil }

type brokenLexicon struct{}

func (brokenLexicon) MeaningOf(context.Context, string) (*lexicon.Definition, error) {
	return nil, errors.New("connection refused")
}

func testDeps() Deps {
	dict := lexicon.NewDictionary(
		[]string{"gamer", "game", "master", "stream", "train", "tamers"},
		[]string{"countdown", "aspirated", "disparate"},
	)
	return Deps{
		Letters: fixedLetters{letters.Set{Vowels: 3, Letters: []rune("GAMERSTXA")}},
		Numbers: fixedNumbers{numbers.Set{
			Big:     []int{25, 50, 75, 100},
			Small:   []int{3, 7},
			Numbers: []int{25, 50, 75, 100, 3, 7},
			Target:  583,
		}},
		Conundrums: fixedConundrum{conundrum.Conundrum{Target: "DISPARATE", Scrambled: "TRAPASIDE"}},
		Lexicon:    dict,
		Corpus:     dict,
	}
}

// toLettersGuess walks a fresh machine to the first letters guess.
func toLettersGuess(t *testing.T, deps Deps) *Machine {
	t.Helper()
	m := NewMachine(deps)
	must(t, m.Select("1"))
	must(t, m.EnterName("Matt", 0))
	must(t, m.ChooseVowels(3))
	must(t, m.Next())
	return m
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateIntro, "intro"},
		{StateLettersGuess, "letters_guess"},
		{StateNumbersFeedback, "numbers_feedback"},
		{StateGameOver, "game_over"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}

func TestMenuTransitions(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
		want   State
	}{
		{"start", []string{"1"}, StateEnterName},
		{"rules", []string{"2"}, StateRules},
		{"scores", []string{"3"}, StateScores},
		{"rules then start", []string{"2", "1"}, StateEnterName},
		{"rules then back", []string{"2", "2"}, StateIntro},
		{"rules then anything", []string{"2", "x"}, StateIntro},
		{"scores then back", []string{"3", ""}, StateIntro},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(testDeps())
			for _, in := range tt.inputs {
				must(t, m.Select(in))
			}
			if m.State() != tt.want {
				t.Errorf("State() = %v, want %v", m.State(), tt.want)
			}
			if m.Round() != 0 {
				t.Errorf("Round() = %d, want 0", m.Round())
			}
		})
	}
}

func TestIntroRejectsBadChoice(t *testing.T) {
	m := NewMachine(testDeps())
	for _, in := range []string{"4", "0", "start", ""} {
		err := m.Select(in)
		if err == nil {
			t.Errorf("Select(%q) error = nil", in)
		}
		if gameerr.Message(err) == "" {
			t.Errorf("Select(%q) error %v has no message", in, err)
		}
		if m.State() != StateIntro {
			t.Errorf("State() = %v after Select(%q), want intro", m.State(), in)
		}
	}
}

func TestInvalidTransitions(t *testing.T) {
	m := NewMachine(testDeps())

	checks := []struct {
		name string
		call func() error
	}{
		{"next from intro", m.Next},
		{"timeout from intro", m.Timeout},
		{"vowels from intro", func() error { return m.ChooseVowels(5) }},
		{"big from intro", func() error { return m.ChooseBig(2) }},
		{"letters from intro", func() error { return m.SubmitLetters(context.Background(), "gamer", 10) }},
		{"numbers from intro", func() error { return m.SubmitNumbers("25", 10) }},
		{"conundrum from intro", func() error { return m.SubmitConundrum(context.Background(), "countdown", 10) }},
		{"name from intro", func() error { return m.EnterName("Matt", 0) }},
	}
	for _, c := range checks {
		if err := c.call(); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s: error = %v, want ErrInvalidTransition", c.name, err)
		}
	}
	if m.State() != StateIntro {
		t.Errorf("State() = %v, want intro", m.State())
	}

	if CanMove(StateGameOver, StateIntro) {
		t.Error("CanMove(game_over, intro) = true, want false")
	}
	if !CanMove(StateLettersFeedback, StateNumbersRound) {
		t.Error("CanMove(letters_feedback, numbers_round) = false, want true")
	}
}

func TestEnterName(t *testing.T) {
	m := NewMachine(testDeps())
	must(t, m.Select("1"))

	if err := m.EnterName("M", 0); !errors.Is(err, gameerr.ErrInputFormat) {
		t.Errorf("EnterName(M) error = %v, want ErrInputFormat", err)
	}
	if m.State() != StateEnterName || m.Player() != nil {
		t.Fatalf("rejected name changed state to %v", m.State())
	}

	must(t, m.EnterName("Matt", 75))
	if m.State() != StateLettersRound || m.Round() != 1 {
		t.Errorf("after name: state %v round %d, want letters_round 1", m.State(), m.Round())
	}
	if p := m.Player(); p.Name != "Matt" || p.HighScore != 75 || p.Score != 0 {
		t.Errorf("Player() = %+v", p)
	}
}

func TestLettersRoundWithRealPool(t *testing.T) {
	deps := testDeps()
	pool, err := letters.LoadPool(rand.New(rand.NewSource(3)))
	must(t, err)
	deps.Letters = pool

	m := NewMachine(deps)
	must(t, m.Select("1"))
	must(t, m.EnterName("Matt", 0))

	if err := m.ChooseVowels(10); !errors.Is(err, gameerr.ErrRange) {
		t.Errorf("ChooseVowels(10) error = %v, want ErrRange", err)
	}
	if m.State() != StateLettersRound {
		t.Fatalf("State() = %v after bad vowel count", m.State())
	}

	must(t, m.ChooseVowels(5))
	set := m.Letters()
	if len(set.Letters) != letters.Total {
		t.Fatalf("drew %d letters, want %d", len(set.Letters), letters.Total)
	}
	vowels := 0
	for _, r := range set.Letters {
		if letters.IsVowel(r) {
			vowels++
		}
	}
	if vowels != 5 {
		t.Errorf("drew %d vowels, want 5", vowels)
	}
	if string(m.Player().Letters) != set.String() {
		t.Errorf("Player().Letters = %q, want %q", string(m.Player().Letters), set.String())
	}
	if m.State() != StateShowLetters {
		t.Errorf("State() = %v, want show_letters", m.State())
	}
}

func TestSubmitLetters(t *testing.T) {
	ctx := context.Background()
	m := toLettersGuess(t, testDeps())

	err := m.SubmitLetters(ctx, "party", 25)
	if !errors.Is(err, gameerr.ErrConstraint) {
		t.Fatalf("SubmitLetters(party) error = %v, want ErrConstraint", err)
	}
	if m.State() != StateLettersGuess || m.Player().Score != 0 {
		t.Fatalf("rejected word moved to %v with score %d", m.State(), m.Player().Score)
	}

	must(t, m.SubmitLetters(ctx, "gamer", 12))
	if m.State() != StateLettersFeedback {
		t.Fatalf("State() = %v, want letters_feedback", m.State())
	}
	fb := m.Feedback()
	if !fb.Known || fb.Points != 60 {
		t.Errorf("Feedback() = %+v, want known word worth 60", fb)
	}
	p := m.Player()
	if p.Score != 60 || p.Guess(1) != "gamer" || p.TimeRemaining != 12 {
		t.Errorf("Player() = %+v", p)
	}
}

func TestSubmitLettersUnknownWord(t *testing.T) {
	m := toLettersGuess(t, testDeps())
	must(t, m.SubmitLetters(context.Background(), "mares", 20))

	fb := m.Feedback()
	if fb.Known || fb.Points != 0 || fb.Verdict() != "no_score" {
		t.Errorf("Feedback() = %+v, want unknown word worth 0", fb)
	}
	if m.Player().Guess(1) != "mares" {
		t.Errorf("Guess(1) = %q, want mares", m.Player().Guess(1))
	}
}

func TestSubmitLettersLexiconDown(t *testing.T) {
	deps := testDeps()
	deps.Lexicon = brokenLexicon{}
	m := toLettersGuess(t, deps)

	must(t, m.SubmitLetters(context.Background(), "gamer", 20))
	fb := m.Feedback()
	if !fb.LexiconDown || fb.Points != 0 {
		t.Errorf("Feedback() = %+v, want lexicon down with no points", fb)
	}
	if m.State() != StateLettersFeedback {
		t.Errorf("State() = %v, want letters_feedback", m.State())
	}
}

func TestLettersTimeout(t *testing.T) {
	m := toLettersGuess(t, testDeps())

	must(t, m.Timeout())
	if m.State() != StateLettersFeedback {
		t.Fatalf("State() = %v, want letters_feedback", m.State())
	}
	fb := m.Feedback()
	if !fb.TimedOut || fb.Points != 0 {
		t.Errorf("Feedback() = %+v, want timed out with no points", fb)
	}
	if m.Player().Guess(1) != entity.NoGuess || m.Player().Score != 0 {
		t.Errorf("Player() = %+v, want empty guess and no score", m.Player())
	}
}

func TestRoundCounter(t *testing.T) {
	ctx := context.Background()
	m := toLettersGuess(t, testDeps())

	wantRounds := []int{1, 2, 3}
	for i, want := range wantRounds {
		if m.Round() != want {
			t.Fatalf("letters round %d: Round() = %d, want %d", i, m.Round(), want)
		}
		must(t, m.SubmitLetters(ctx, "game", 10))
		must(t, m.Next())
		if i < 2 {
			must(t, m.ChooseVowels(3))
			must(t, m.Next())
		}
	}

	if m.State() != StateNumbersRound || m.Round() != 4 {
		t.Fatalf("after letters: state %v round %d, want numbers_round 4", m.State(), m.Round())
	}
	must(t, m.ChooseBig(4))
	must(t, m.Next())
	must(t, m.SubmitNumbers("100", 10))
	must(t, m.Next())
	if m.State() != StateShowConundrum || m.Round() != 5 {
		t.Fatalf("after numbers: state %v round %d, want show_conundrum 5", m.State(), m.Round())
	}
	if m.Conundrum().Target != "DISPARATE" {
		t.Errorf("Conundrum() = %+v", m.Conundrum())
	}
	must(t, m.Next())
	must(t, m.Timeout())
	must(t, m.Next())
	if !m.Over() || m.Round() != 5 {
		t.Errorf("final state %v round %d, want game_over 5", m.State(), m.Round())
	}
	if err := m.Next(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Next() from game over error = %v, want ErrInvalidTransition", err)
	}
}

// toNumbersGuess plays three timed-out letters rounds and deals numbers.
func toNumbersGuess(t *testing.T) *Machine {
	t.Helper()
	m := toLettersGuess(t, testDeps())
	for i := 0; i < 3; i++ {
		must(t, m.Timeout())
		must(t, m.Next())
		if i < 2 {
			must(t, m.ChooseVowels(4))
			must(t, m.Next())
		}
	}
	must(t, m.ChooseBig(4))
	must(t, m.Next())
	return m
}

func TestSubmitNumbers(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		points    int
		value     int
		diff      int
		closeness validate.Closeness
		evaluated bool
	}{
		{"close miss", "75*7+50-3", 0, 572, 11, validate.Close, true},
		{"far miss", "100", 0, 100, 483, validate.Far, true},
		{"exact", "(50+3)*(7+100/25)", 200, 583, 0, validate.Exact, true},
		{"division by zero", "100/(75-50-25)", 0, 0, 0, validate.Exact, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := toNumbersGuess(t)
			must(t, m.SubmitNumbers(tt.expr, 20))
			fb := m.Feedback()
			if fb.Evaluated != tt.evaluated {
				t.Fatalf("Evaluated = %v, want %v", fb.Evaluated, tt.evaluated)
			}
			if tt.evaluated && (fb.Value != tt.value || fb.Diff != tt.diff || fb.Closeness != tt.closeness) {
				t.Errorf("Feedback() = %+v, want value %d diff %d %v", fb, tt.value, tt.diff, tt.closeness)
			}
			if fb.Points != tt.points || m.Player().Score != tt.points {
				t.Errorf("Points = %d, Score = %d, want %d", fb.Points, m.Player().Score, tt.points)
			}
			if m.State() != StateNumbersFeedback {
				t.Errorf("State() = %v, want numbers_feedback", m.State())
			}
		})
	}
}

func TestSubmitNumbersRejected(t *testing.T) {
	m := toNumbersGuess(t)
	tests := []struct {
		expr string
		want error
	}{
		{"4 + 25 + 100", gameerr.ErrConstraint},
		{"7 * 7", gameerr.ErrConstraint},
		{"  ", gameerr.ErrInputFormat},
		{"25 % 3", gameerr.ErrInputFormat},
	}
	for _, tt := range tests {
		if err := m.SubmitNumbers(tt.expr, 30); !errors.Is(err, tt.want) {
			t.Errorf("SubmitNumbers(%q) error = %v, want %v", tt.expr, err, tt.want)
		}
	}
	if m.State() != StateNumbersGuess {
		t.Errorf("State() = %v, want numbers_guess", m.State())
	}
}

// toConundrumGuess plays through to the conundrum guess.
func toConundrumGuess(t *testing.T, deps Deps) *Machine {
	t.Helper()
	m := toLettersGuess(t, deps)
	for i := 0; i < 3; i++ {
		must(t, m.Timeout())
		must(t, m.Next())
		if i < 2 {
			must(t, m.ChooseVowels(4))
			must(t, m.Next())
		}
	}
	must(t, m.ChooseBig(2))
	must(t, m.Next())
	must(t, m.Timeout())
	must(t, m.Next())
	must(t, m.Next())
	return m
}

func TestSubmitConundrum(t *testing.T) {
	tests := []struct {
		name   string
		word   string
		known  bool
		points int
	}{
		{"target", "disparate", true, 150},
		{"target uppercase", "DISPARATE", true, 150},
		{"alternate anagram", "aspirated", true, 150},
		{"not a word", "sprdiaate", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := toConundrumGuess(t, testDeps())
			must(t, m.SubmitConundrum(context.Background(), tt.word, 15))
			fb := m.Feedback()
			if fb.Known != tt.known || fb.Points != tt.points {
				t.Errorf("Feedback() = %+v, want known %v points %d", fb, tt.known, tt.points)
			}
			if fb.Answer != "DISPARATE" {
				t.Errorf("Answer = %q, want DISPARATE", fb.Answer)
			}
			if m.State() != StateConundrumFeedback {
				t.Errorf("State() = %v, want conundrum_feedback", m.State())
			}
		})
	}
}

func TestSubmitConundrumRejected(t *testing.T) {
	m := toConundrumGuess(t, testDeps())
	for _, word := range []string{"dispar", "disparates", ""} {
		if err := m.SubmitConundrum(context.Background(), word, 15); err == nil {
			t.Errorf("SubmitConundrum(%q) error = nil", word)
		}
	}
	if m.State() != StateConundrumGuess {
		t.Errorf("State() = %v, want conundrum_guess", m.State())
	}
}

func TestRestart(t *testing.T) {
	m := toConundrumGuess(t, testDeps())
	must(t, m.SubmitConundrum(context.Background(), "disparate", 10))
	must(t, m.Next())
	if !m.Over() {
		t.Fatalf("State() = %v, want game_over", m.State())
	}

	next := NewMachine(testDeps())
	must(t, next.Restart(m.Player().CarryOver()))
	if next.State() != StateLettersRound || next.Round() != 1 {
		t.Errorf("after restart: state %v round %d, want letters_round 1", next.State(), next.Round())
	}
	p := next.Player()
	if p.Name != "Matt" || p.Score != 0 || p.HighScore != 100 {
		t.Errorf("Player() = %+v, want Matt with score 0 and high score 100", p)
	}
	if err := m.Restart(p); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Restart() from game over error = %v, want ErrInvalidTransition", err)
	}
}

type failingConundrum struct{}

func (failingConundrum) Generate() (conundrum.Conundrum, error) {
	return conundrum.Conundrum{}, gameerr.New(gameerr.ErrExternalService, "no clean nine-letter word found")
}

func TestConundrumUnavailable(t *testing.T) {
	deps := testDeps()
	deps.Conundrums = failingConundrum{}
	m := toNumbersGuess(t)
	m.deps = deps
	must(t, m.Timeout())

	// The failed draw must not stop the game.
	must(t, m.Next())
	if m.State() != StateShowConundrum || m.Round() != 5 {
		t.Fatalf("state %v round %d, want show_conundrum 5", m.State(), m.Round())
	}
	must(t, m.Next())
	if m.State() != StateConundrumFeedback {
		t.Fatalf("State() = %v, want conundrum_feedback", m.State())
	}
	fb := m.Feedback()
	if !fb.Unavailable || fb.Points != 0 || fb.Verdict() != "unavailable" {
		t.Errorf("Feedback() = %+v, want unavailable with no points", fb)
	}
	if !errors.Is(fb.Cause, gameerr.ErrExternalService) {
		t.Errorf("Cause = %v, want ErrExternalService", fb.Cause)
	}
	if got := m.Player().Guess(5); got != entity.NoGuess {
		t.Errorf("Guess(5) = %q, want no guess", got)
	}
	must(t, m.Next())
	if !m.Over() {
		t.Errorf("State() = %v, want game_over", m.State())
	}
}

func TestSubmitCancelledLookup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := toLettersGuess(t, testDeps())
	if err := m.SubmitLetters(ctx, "gamer", 20); !errors.Is(err, context.Canceled) {
		t.Errorf("SubmitLetters() error = %v, want context.Canceled", err)
	}
	if m.State() != StateLettersGuess || m.Player().Score != 0 {
		t.Errorf("state %v score %d, want letters_guess with no score", m.State(), m.Player().Score)
	}

	m = toConundrumGuess(t, testDeps())
	if err := m.SubmitConundrum(ctx, "aspirated", 20); !errors.Is(err, context.Canceled) {
		t.Errorf("SubmitConundrum() error = %v, want context.Canceled", err)
	}
	if m.State() != StateConundrumGuess {
		t.Errorf("State() = %v, want conundrum_guess", m.State())
	}
}

func TestPointsFollowRoundFormula(t *testing.T) {
	const secs = 12

	m := toLettersGuess(t, testDeps())
	must(t, m.SubmitLetters(context.Background(), "master", secs))
	want, _ := score.ForRound(1, "master", secs)
	if got := m.Feedback().Points; got != want || got != 6*secs {
		t.Errorf("letters Points = %d, want %d", got, want)
	}

	m = toNumbersGuess(t)
	must(t, m.SubmitNumbers("(50+3)*(7+100/25)", secs))
	want, _ = score.ForRound(4, "(50+3)*(7+100/25)", secs)
	if got := m.Feedback().Points; got != want || got != score.FlatRate*secs {
		t.Errorf("numbers Points = %d, want %d", got, want)
	}

	m = toConundrumGuess(t, testDeps())
	must(t, m.SubmitConundrum(context.Background(), "disparate", secs))
	want, _ = score.ForRound(5, "disparate", secs)
	if got := m.Feedback().Points; got != want || got != score.FlatRate*secs {
		t.Errorf("conundrum Points = %d, want %d", got, want)
	}
}
