package gliner

import (
	"context"
	"strings"
	"unicode"

	"glint/internal/extract"
)

// HeuristicPredictor is a model-free stand-in for demo runs without an ONNX
// model: runs of capitalized words (past the first word of the text) become
// entities of the first candidate label. Deliberately crude.
type HeuristicPredictor struct{}

func (HeuristicPredictor) Predict(ctx context.Context, text string, labels []string) ([]extract.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" || len(labels) == 0 {
		return nil, nil
	}
	label := labels[0]
	words := splitWords(text)

	var out []extract.Entity
	runStart := -1
	flush := func(last int) {
		if runStart < 0 {
			return
		}
		end := words[last].End
		for end > words[runStart].Start && strings.ContainsRune(".,;:!?\"')", rune(text[end-1])) {
			end--
		}
		if end > words[runStart].Start {
			out = append(out, extract.Entity{
				Text:  text[words[runStart].Start:end],
				Label: label,
			})
		}
		runStart = -1
	}
	for i, w := range words {
		if i > 0 && looksCapitalized(w.Text) && len(w.Text) > 2 {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		flush(i - 1)
	}
	flush(len(words) - 1)
	return out, nil
}

func looksCapitalized(s string) bool {
	runes := []rune(strings.TrimRight(s, ".,;:!?\"')"))
	if len(runes) == 0 {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
