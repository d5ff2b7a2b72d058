// Package examples supplies demonstration texts and candidate labels, either
// bundled or loaded from a JSON file.
package examples

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type Example struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Text        string `json:"text"`
}

type Set struct {
	Labels   []string  `json:"labels"`
	Examples []Example `json:"examples"`
}

//go:embed default.json
var defaultJSON []byte

// Default returns the bundled example set.
func Default() Set {
	var s Set
	if err := json.Unmarshal(defaultJSON, &s); err != nil {
		panic("examples: corrupt embedded default set: " + err.Error())
	}
	return s
}

// Load reads an example set from a JSON file.
func Load(path string) (Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}
	var s Set
	if err := json.Unmarshal(raw, &s); err != nil {
		return Set{}, fmt.Errorf("parse examples: %w", err)
	}
	if len(s.Labels) == 0 {
		return Set{}, errors.New("examples file has no labels")
	}
	if len(s.Examples) == 0 {
		return Set{}, errors.New("examples file has no examples")
	}
	return s, nil
}
