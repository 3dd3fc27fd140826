package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ThemeDef holds the screen colours loaded from theme.json as hex strings.
type ThemeDef struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Accent     string `json:"accent"`  // Banners, drawn letters and numbers
	Error      string `json:"error"`   // Validation messages
	Success    string `json:"success"` // Scored answers
	Muted      string `json:"muted"`   // Timers and hints
}

// Palette is a ThemeDef resolved to tcell colours.
type Palette struct {
	Background tcell.Color
	Foreground tcell.Color
	Accent     tcell.Color
	Error      tcell.Color
	Success    tcell.Color
	Muted      tcell.Color
}

// Palette resolves every hex colour, falling back to the terminal default
// for entries that fail to parse.
func (t ThemeDef) Palette() Palette {
	return Palette{
		Background: colorOr(t.Background, tcell.ColorNavy),
		Foreground: colorOr(t.Foreground, tcell.ColorWhite),
		Accent:     colorOr(t.Accent, tcell.ColorYellow),
		Error:      colorOr(t.Error, tcell.ColorRed),
		Success:    colorOr(t.Success, tcell.ColorGreen),
		Muted:      colorOr(t.Muted, tcell.ColorSilver),
	}
}

// LoadTheme loads the screen colours from theme.json.
func LoadTheme() (ThemeDef, error) {
	return Load[ThemeDef]("theme.json")
}

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewRGBColor(int32(rgb>>16&0xFF), int32(rgb>>8&0xFF), int32(rgb&0xFF)), nil
}

func colorOr(hex string, fallback tcell.Color) tcell.Color {
	c, err := ParseHexColor(hex)
	if err != nil {
		return fallback
	}
	return c
}
