package ui

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/countdown/internal/gamedata"
)

// refresh is how often a timed prompt redraws its clock.
const refresh = 250 * time.Millisecond

// TerminalPrompter reads input on a full-screen tcell display.
type TerminalPrompter struct {
	screen   *Screen
	renderer *Renderer
	page     Page
	once     sync.Once
}

// NewTerminalPrompter creates a prompter drawing on screen.
func NewTerminalPrompter(screen *Screen, palette gamedata.Palette) *TerminalPrompter {
	return &TerminalPrompter{
		screen:   screen,
		renderer: NewRenderer(screen, palette),
	}
}

// Show replaces the page and redraws it with an empty prompt.
func (p *TerminalPrompter) Show(page Page) {
	p.page = page
	p.renderer.Render(page, "", "", 0, false)
}

// ReadLine collects keystrokes until Enter. While waiting, a watchdog wakes
// the event loop so the clock redraws and the deadline and ctx are noticed
// even without key presses.
func (p *TerminalPrompter) ReadLine(ctx context.Context, prompt string, budget time.Duration) (string, error) {
	deadline := deadlineFor(time.Now(), budget)
	timed := !deadline.IsZero()

	stop := make(chan struct{})
	defer close(stop)
	go p.watch(ctx, stop, timed)
	if timed {
		t := time.AfterFunc(budget, p.screen.Interrupt)
		defer t.Stop()
	}

	var input []rune
	for {
		left := time.Until(deadline)
		if timed && left <= 0 {
			return "", ErrTimeout
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p.renderer.Render(p.page, prompt, string(input), left, timed)

		switch ev := p.screen.PollEvent().(type) {
		case nil:
			// Screen finalized underneath us.
			return "", ErrQuit
		case *tcell.EventResize:
			p.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return "", ErrQuit
			case tcell.KeyEnter:
				line := string(input)
				if isQuit(line) {
					return "", ErrQuit
				}
				if timed && time.Until(deadline) <= 0 {
					return "", ErrTimeout
				}
				return line, nil
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(input) > 0 {
					input = input[:len(input)-1]
				}
			case tcell.KeyRune:
				if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
					return "", ErrQuit
				}
				input = append(input, ev.Rune())
			}
		}
	}
}

// watch posts wake-ups until stop closes: on cancellation, and on every
// refresh tick for timed prompts.
func (p *TerminalPrompter) watch(ctx context.Context, stop <-chan struct{}, timed bool) {
	var tick <-chan time.Time
	if timed {
		t := time.NewTicker(refresh)
		defer t.Stop()
		tick = t.C
	}
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			p.screen.Interrupt()
			return
		case <-tick:
			p.screen.Interrupt()
		}
	}
}

// Close restores the terminal. It is safe to call more than once.
func (p *TerminalPrompter) Close() error {
	p.once.Do(p.screen.Close)
	return nil
}
