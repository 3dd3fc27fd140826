// Package gameerr defines the error taxonomy shared by the game packages.
//
// Every failure a player can cause is one of a small set of kinds. Callers
// match on the kind with errors.Is and show Error() to the player.
package gameerr

import "errors"

// Error kinds. None of them are fatal to the process.
var (
	// ErrInputFormat - non-numeric menu choice, wrong characters in a name,
	// word or expression.
	ErrInputFormat = errors.New("input format")
	// ErrRange - a number outside the allowed interval.
	ErrRange = errors.New("out of range")
	// ErrConstraint - a guess uses letters or numbers not in the current draw.
	ErrConstraint = errors.New("constraint violation")
	// ErrProfanity - a name or guess scored over the profanity threshold.
	ErrProfanity = errors.New("profanity")
	// ErrEvaluation - an arithmetic expression could not be evaluated.
	ErrEvaluation = errors.New("evaluation failed")
	// ErrExternalService - a lexicon, word list or leaderboard call failed.
	ErrExternalService = errors.New("external service")
)

// Error carries a kind, the message shown to the player and an optional cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

// New returns an Error of the given kind with a player-facing message.
func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap returns an Error of the given kind wrapping cause.
func Wrap(kind error, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Error returns the player-facing message.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the player-facing text of err without the cause chain.
func Message(err error) string {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
