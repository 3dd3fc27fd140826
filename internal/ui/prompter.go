package ui

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/samdwyer/countdown/internal/gamedata"
)

var (
	// ErrTimeout is returned when a timed prompt's budget runs out.
	ErrTimeout = errors.New("out of time")
	// ErrQuit is returned when the player asks to leave the game.
	ErrQuit = errors.New("player quit")
)

// QuitCommand typed at any prompt leaves the game.
const QuitCommand = ":q"

// Prompter shows pages and reads lines of input from the player.
type Prompter interface {
	// Show replaces the page drawn above the prompt.
	Show(page Page)
	// ReadLine waits for a line. A zero budget waits indefinitely;
	// otherwise ErrTimeout is returned once budget has passed.
	ReadLine(ctx context.Context, prompt string, budget time.Duration) (string, error)
	Close() error
}

// NewPrompter opens the full-screen terminal prompter when stdin and stdout
// are terminals and lineMode is off, and a plain line prompter otherwise.
func NewPrompter(lineMode bool) (Prompter, error) {
	if lineMode || !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return NewLinePrompter(os.Stdin, os.Stdout), nil
	}

	theme, err := gamedata.LoadTheme()
	if err != nil {
		return nil, err
	}
	palette := theme.Palette()
	screen, err := NewScreen(palette)
	if err != nil {
		return nil, err
	}
	return NewTerminalPrompter(screen, palette), nil
}

func isQuit(line string) bool {
	return strings.TrimSpace(line) == QuitCommand
}

// deadlineFor returns the deadline for a budget, zero for none.
func deadlineFor(now time.Time, budget time.Duration) time.Time {
	if budget <= 0 {
		return time.Time{}
	}
	return now.Add(budget)
}
