package gliner

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// word is a whitespace-delimited run of text with its byte offsets in the
// source.
type word struct {
	Text       string
	Start, End int
}

func splitWords(text string) []word {
	words := make([]word, 0)
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				words = append(words, word{Text: text[start:i], Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, word{Text: text[start:], Start: start, End: len(text)})
	}
	return words
}

// wordPieceTokenizer encodes words as subword pieces from a tokenizer.json
// vocabulary, greedy longest-match with "##" continuation pieces.
type wordPieceTokenizer struct {
	vocab      map[string]int
	unkID      int
	clsID      int
	sepID      int
	maxWordLen int
	lowercase  bool
}

type tokenizerJSON struct {
	Model struct {
		Vocab map[string]int `json:"vocab"`
	} `json:"model"`
	Normalizer struct {
		Lowercase *bool `json:"lowercase"`
	} `json:"normalizer"`
}

func newWordPieceTokenizer(path string) (*wordPieceTokenizer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg tokenizerJSON
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse tokenizer.json: %w", err)
	}
	if len(cfg.Model.Vocab) == 0 {
		return nil, fmt.Errorf("tokenizer.json model.vocab is empty")
	}
	unkID, ok := cfg.Model.Vocab["[UNK]"]
	if !ok {
		return nil, fmt.Errorf("tokenizer vocab is missing [UNK]")
	}
	// DeBERTa-style exports number [CLS]=1 and [SEP]=2 without listing them
	// in the vocab.
	clsID, ok := cfg.Model.Vocab["[CLS]"]
	if !ok {
		clsID = 1
	}
	sepID, ok := cfg.Model.Vocab["[SEP]"]
	if !ok {
		sepID = 2
	}
	lowercase := false
	if cfg.Normalizer.Lowercase != nil {
		lowercase = *cfg.Normalizer.Lowercase
	}
	return &wordPieceTokenizer{
		vocab:      cfg.Model.Vocab,
		unkID:      unkID,
		clsID:      clsID,
		sepID:      sepID,
		maxWordLen: 100,
		lowercase:  lowercase,
	}, nil
}

func (t *wordPieceTokenizer) encodeWord(w string) []int {
	if w == "" {
		return []int{t.unkID}
	}
	normalized := w
	if t.lowercase {
		normalized = strings.ToLower(w)
	}
	runes := []rune(normalized)
	if len(runes) > t.maxWordLen {
		return []int{t.unkID}
	}
	if id, ok := t.vocab[string(runes)]; ok {
		return []int{id}
	}
	ids := make([]int, 0)
	start := 0
	for start < len(runes) {
		end := len(runes)
		found := -1
		for end > start {
			piece := string(runes[start:end])
			if start > 0 {
				piece = "##" + piece
			}
			if id, ok := t.vocab[piece]; ok {
				found = id
				break
			}
			end--
		}
		if found == -1 {
			return []int{t.unkID}
		}
		ids = append(ids, found)
		start = end
	}
	return ids
}

// encodeText encodes free text as the concatenated pieces of its words, with
// no special tokens. Used for the label prompt.
func (t *wordPieceTokenizer) encodeText(text string) []int {
	var ids []int
	for _, w := range splitWords(text) {
		ids = append(ids, t.encodeWord(w.Text)...)
	}
	return ids
}
