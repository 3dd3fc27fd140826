package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/countdown/internal/gamedata"
)

// Renderer handles drawing pages and the prompt to the screen.
type Renderer struct {
	screen  *Screen
	palette gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws a page with the prompt and the player's input beneath it.
// A timed prompt shows the whole seconds left.
func (r *Renderer) Render(page Page, prompt, input string, left time.Duration, timed bool) {
	r.screen.Clear()
	_, height := r.screen.Size()

	y := 1
	if page.Title != "" {
		r.drawText(2, y, page.Title, r.style(ToneAccent).Bold(true))
		y += 2
	}
	for _, line := range page.Lines {
		r.drawText(2, y, line.Text, r.style(line.Tone))
		y++
	}

	// Prompt block sits at the bottom when there is room, otherwise
	// straight after the page text.
	base := height - 4
	if base < y+1 {
		base = y + 1
	}
	if page.Status.Text != "" {
		r.drawText(2, base, page.Status.Text, r.style(page.Status.Tone))
	}
	if timed {
		clock := fmt.Sprintf("[%2ds]", int((left+time.Second-1)/time.Second))
		r.drawText(2, base+1, clock, r.style(ToneMuted))
		r.drawText(8, base+1, prompt, r.style(TonePlain))
	} else {
		r.drawText(2, base+1, prompt, r.style(TonePlain))
	}
	x := r.drawText(2, base+2, "> "+input, r.style(ToneAccent))
	r.screen.SetContent(x, base+2, '_', r.style(ToneMuted))

	r.screen.Show()
}

// drawText writes text from (x, y), clipped to the screen width, and
// returns the column after the last character.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	width, _ := r.screen.Size()
	for _, ch := range text {
		if x >= width {
			break
		}
		r.screen.SetContent(x, y, ch, style)
		x++
	}
	return x
}

func (r *Renderer) style(t Tone) tcell.Style {
	base := tcell.StyleDefault.Background(r.palette.Background)
	switch t {
	case ToneAccent:
		return base.Foreground(r.palette.Accent)
	case ToneError:
		return base.Foreground(r.palette.Error)
	case ToneSuccess:
		return base.Foreground(r.palette.Success)
	case ToneMuted:
		return base.Foreground(r.palette.Muted)
	default:
		return base.Foreground(r.palette.Foreground)
	}
}
