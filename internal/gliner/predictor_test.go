package gliner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPredictModelUnavailable(t *testing.T) {
	p := NewPredictor(Config{ModelDir: t.TempDir()}, nil)
	_, err := p.Predict(context.Background(), "Jane works at Acme", []string{"person"})
	require.ErrorIs(t, err, ErrModelUnavailable)
}

func TestPredictEmptyInputs(t *testing.T) {
	p := NewPredictor(Config{ModelDir: t.TempDir()}, nil)

	got, err := p.Predict(context.Background(), "  ", []string{"person"})
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = p.Predict(context.Background(), "Jane", nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestBuildPrompt(t *testing.T) {
	require.Equal(t, "<<ENT>>person<<SEP>><<ENT>>award<<SEP>>", buildPrompt([]string{"person", "award"}))
}

func TestDecodeSpans(t *testing.T) {
	p := &Predictor{model: ModelConfig{MaxWidth: 2, MaxLen: 512, Threshold: 0.5}}
	words := splitWords("Jane works")
	labels := []string{"person", "organization"}

	// Grid is [words=2, width=2, labels=2]; only ("Jane", width 1, person)
	// scores above threshold.
	logits := []float32{
		10, -10, // w=0 wi=0
		-10, -10, // w=0 wi=1
		-10, -10, // w=1 wi=0
		-10, -10, // w=1 wi=1
	}
	spans := p.decode(logits, []int64{1, 2, 2, 2}, words, labels)
	require.Len(t, spans, 1)
	require.Equal(t, 0, spans[0].start)
	require.Equal(t, 4, spans[0].end)
	require.Equal(t, "person", spans[0].label)
	require.Greater(t, spans[0].score, 0.99)
}

func TestSuppressOverlapsKeepsHighestScore(t *testing.T) {
	kept := suppressOverlaps([]span{
		{start: 0, end: 4, label: "a", score: 0.6},
		{start: 2, end: 8, label: "b", score: 0.9},
		{start: 10, end: 12, label: "c", score: 0.7},
	})
	require.Len(t, kept, 2)
	require.Equal(t, "b", kept[0].label)
	require.Equal(t, "c", kept[1].label)
}

func TestBuildInputsShape(t *testing.T) {
	tok, err := newWordPieceTokenizer(writeTokenizer(t, t.TempDir()))
	require.NoError(t, err)
	p := &Predictor{model: ModelConfig{MaxWidth: 3, MaxLen: 512, Threshold: 0.5}, tokenizer: tok}

	words := splitWords("Jane worked")
	in, wordCount := p.buildInputs(words, []string{"person"})
	require.Equal(t, 2, wordCount)
	require.Equal(t, in.SeqLen, len(in.InputIDs))
	require.Equal(t, in.SeqLen, len(in.AttentionMask))
	require.Equal(t, in.SeqLen, len(in.WordsMask))
	require.Equal(t, 2*3, in.NumSpans)
	require.Len(t, in.SpanIdx, in.NumSpans*2)
	require.Len(t, in.SpanMask, in.NumSpans)

	// CLS and SEP frame the sequence and belong to no word.
	require.Equal(t, int64(tok.clsID), in.InputIDs[0])
	require.Equal(t, int64(tok.sepID), in.InputIDs[in.SeqLen-1])
	require.Equal(t, int64(0), in.WordsMask[0])
	require.Equal(t, int64(0), in.WordsMask[in.SeqLen-1])

	// "Jane" is one piece, "worked" two; three text tokens total.
	require.Equal(t, []int64{3}, in.TextLengths)
}
