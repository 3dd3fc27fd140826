package validate

import (
	"context"
	"errors"

	"github.com/samdwyer/countdown/internal/calc"
	"github.com/samdwyer/countdown/internal/gameerr"
	"github.com/samdwyer/countdown/internal/lexicon"
)

// CloseRange is the largest miss still reported as close.
const CloseRange = 50

// Result is the outcome of evaluating a numbers-round solution.
type Result struct {
	Exact bool // Value equals the target
	Value int  // Evaluated result, truncated toward zero
	Diff  int  // Absolute distance from the target
}

// Evaluate computes expr and compares it with target.
// Malformed expressions and division by zero return gameerr.ErrEvaluation.
func Evaluate(expr string, target int) (Result, error) {
	v, err := calc.EvalInt(expr)
	if err != nil {
		return Result{}, gameerr.Wrap(gameerr.ErrEvaluation, "Your solution didn't evaluate", err)
	}
	diff := target - v
	if diff < 0 {
		diff = -diff
	}
	return Result{Exact: diff == 0, Value: v, Diff: diff}, nil
}

// Closeness grades how near a numbers-round result came to the target.
type Closeness int

const (
	Exact Closeness = iota
	Close
	Far
)

// String returns a human-readable closeness name.
func (c Closeness) String() string {
	switch c {
	case Exact:
		return "exact"
	case Close:
		return "close"
	case Far:
		return "far"
	default:
		return "unknown"
	}
}

// CloseTo grades a difference from the target.
func CloseTo(diff int) Closeness {
	switch {
	case diff == 0:
		return Exact
	case diff <= CloseRange:
		return Close
	default:
		return Far
	}
}

// InDictionary reports whether lex has a definition for word. Only the
// presence of a definition matters.
func InDictionary(ctx context.Context, lex lexicon.Lexicon, word string) (bool, error) {
	def, err := Lookup(ctx, lex, word)
	return def != nil, err
}

// Lookup asks lex for word. Lexicon failures are wrapped in
// gameerr.ErrExternalService; a cancelled context is returned unwrapped.
func Lookup(ctx context.Context, lex lexicon.Lexicon, word string) (*lexicon.Definition, error) {
	if lex == nil {
		return nil, gameerr.New(gameerr.ErrExternalService, "No dictionary available")
	}
	def, err := lex.MeaningOf(ctx, word)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, gameerr.Wrap(gameerr.ErrExternalService, "Dictionary lookup failed", err)
	}
	return def, nil
}
