package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubPredictor returns a canned entity list per call, in order, and records
// the texts it was asked about.
type stubPredictor struct {
	calls   []string
	results [][]Entity
	err     error
}

func (s *stubPredictor) Predict(_ context.Context, text string, _ []string) ([]Entity, error) {
	s.calls = append(s.calls, text)
	if s.err != nil {
		return nil, s.err
	}
	if len(s.results) == 0 {
		return nil, nil
	}
	out := s.results[0]
	s.results = s.results[1:]
	return out, nil
}

func newChunker(t *testing.T, p Predictor, maxLen, overlap int) *Chunker {
	t.Helper()
	c, err := NewChunker(p, ChunkerConfig{MaxLen: maxLen, Overlap: overlap}, nil)
	require.NoError(t, err)
	return c
}

func TestExtractShortTextIsSingleCall(t *testing.T) {
	p := &stubPredictor{results: [][]Entity{{
		{Text: "Ronaldo", Label: "person"},
		{Text: "Ronaldo", Label: "person"},
	}}}
	c := newChunker(t, p, 100, 10)

	got, err := c.Extract(context.Background(), "Ronaldo plays for Al Nassr.", []string{"person"})
	require.NoError(t, err)
	require.Equal(t, []string{"Ronaldo plays for Al Nassr."}, p.calls)
	// Pass-through keeps model-internal duplicates.
	require.Equal(t, []Entity{
		{Text: "Ronaldo", Label: "person"},
		{Text: "Ronaldo", Label: "person"},
	}, got)
}

func TestExtractEmptyText(t *testing.T) {
	p := &stubPredictor{}
	c := newChunker(t, p, 100, 10)

	for _, text := range []string{"", "   \n\t "} {
		got, err := c.Extract(context.Background(), text, []string{"person"})
		require.NoError(t, err)
		require.Nil(t, got)
	}
	require.Empty(t, p.calls)
}

func TestExtractWindowBoundaries(t *testing.T) {
	p := &stubPredictor{}
	c := newChunker(t, p, 8, 3)

	_, err := c.Extract(context.Background(), "abcdefghijklmnopqrst", []string{"x"})
	require.NoError(t, err)
	require.Equal(t, []string{
		"abcdefgh", // [0:8)
		"fghijklm", // [5:13)
		"klmnopqr", // [10:18)
		"pqrst",    // [15:20)
	}, p.calls)
}

func TestExtractWindowBoundariesMultibyte(t *testing.T) {
	p := &stubPredictor{}
	c := newChunker(t, p, 4, 1)

	_, err := c.Extract(context.Background(), "日本語のテキスト", []string{"x"})
	require.NoError(t, err)
	require.Equal(t, []string{"日本語の", "のテキス", "スト"}, p.calls)
}

func TestExtractMergesAndDeduplicates(t *testing.T) {
	p := &stubPredictor{results: [][]Entity{
		{{Text: "Ronaldo", Label: "person"}, {Text: "Portugal", Label: "location"}},
		{{Text: "Portugal", Label: "location"}, {Text: "Al Nassr", Label: "organization"}},
		{{Text: "Ronaldo", Label: "person"}, {Text: "Portugal", Label: "country"}},
	}}
	c := newChunker(t, p, 8, 3)

	got, err := c.Extract(context.Background(), "abcdefghijklmnop", []string{"x"})
	require.NoError(t, err)
	require.Len(t, p.calls, 3)
	// First-seen wins; a different label makes a different entity.
	require.Equal(t, []Entity{
		{Text: "Ronaldo", Label: "person"},
		{Text: "Portugal", Label: "location"},
		{Text: "Al Nassr", Label: "organization"},
		{Text: "Portugal", Label: "country"},
	}, got)
}

func TestExtractFirstWindowKeepsDuplicates(t *testing.T) {
	p := &stubPredictor{results: [][]Entity{
		{{Text: "a", Label: "x"}, {Text: "a", Label: "x"}},
		{{Text: "a", Label: "x"}, {Text: "b", Label: "x"}},
	}}
	c := newChunker(t, p, 8, 3)

	got, err := c.Extract(context.Background(), "abcdefghijklm", []string{"x"})
	require.NoError(t, err)
	require.Equal(t, []Entity{
		{Text: "a", Label: "x"},
		{Text: "a", Label: "x"},
		{Text: "b", Label: "x"},
	}, got)
}

func TestExtractIdempotentMerge(t *testing.T) {
	results := [][]Entity{
		{{Text: "a", Label: "x"}},
		{{Text: "a", Label: "x"}, {Text: "b", Label: "y"}},
	}
	run := func() []Entity {
		cp := make([][]Entity, len(results))
		copy(cp, results)
		p := &stubPredictor{results: cp}
		c := newChunker(t, p, 8, 3)
		got, err := c.Extract(context.Background(), "abcdefghijklm", []string{"x"})
		require.NoError(t, err)
		return got
	}
	require.Equal(t, run(), run())
}

func TestExtractPropagatesPredictorError(t *testing.T) {
	boom := errors.New("inference failed")
	p := &stubPredictor{err: boom}
	c := newChunker(t, p, 8, 3)

	_, err := c.Extract(context.Background(), "abcdefghijklm", []string{"x"})
	require.ErrorIs(t, err, boom)
}

func TestNewChunkerValidation(t *testing.T) {
	_, err := NewChunker(nil, DefaultChunkerConfig(), nil)
	require.Error(t, err)

	_, err = NewChunker(&stubPredictor{}, ChunkerConfig{MaxLen: 10, Overlap: 10}, nil)
	require.Error(t, err)

	_, err = NewChunker(&stubPredictor{}, ChunkerConfig{MaxLen: 10, Overlap: -1}, nil)
	require.Error(t, err)
}
