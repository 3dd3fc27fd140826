// Package data provides the embedded screen text shown between rounds.
package data

import (
	"embed"
	"fmt"
	"strings"
)

// dataFS embeds all screen text files at build time.
//
//go:embed *.txt
var dataFS embed.FS

// Screen names.
const (
	Intro    = "intro"
	Rules    = "rules"
	GameOver = "game_over"
)

// Screen returns the lines of a named screen, without the trailing newline.
func Screen(name string) ([]string, error) {
	raw, err := dataFS.ReadFile(name + ".txt")
	if err != nil {
		return nil, fmt.Errorf("reading screen %s: %w", name, err)
	}
	return strings.Split(strings.TrimRight(string(raw), "\n"), "\n"), nil
}
