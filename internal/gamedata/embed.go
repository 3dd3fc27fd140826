// Package gamedata provides the embedded letter, number, word and theme data
// and utilities for loading it.
package gamedata

import "embed"

// dataFS embeds all JSON and word list files from this directory at build time.
//
//go:embed *.json *.txt
var dataFS embed.FS
