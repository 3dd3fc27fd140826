package gamedata

import "errors"

// NumberPoolsFile represents the structure of numbers.json.
type NumberPoolsFile struct {
	Big       []int `json:"big"`       // Large numbers, each usable once per draw
	Small     []int `json:"small"`     // Small numbers, each usable once per draw
	Picks     int   `json:"picks"`     // Total numbers dealt per round
	TargetMin int   `json:"targetMin"` // Inclusive lower bound of the target
	TargetMax int   `json:"targetMax"` // Inclusive upper bound of the target
}

// LoadNumberPools loads the number pools from numbers.json.
func LoadNumberPools() (NumberPoolsFile, error) {
	file, err := Load[NumberPoolsFile]("numbers.json")
	if err != nil {
		return file, err
	}
	if file.Picks <= 0 || len(file.Small) < file.Picks {
		return file, errors.New("numbers.json: small pool must cover every pick")
	}
	if file.TargetMin > file.TargetMax {
		return file, errors.New("numbers.json: targetMin exceeds targetMax")
	}
	return file, nil
}
