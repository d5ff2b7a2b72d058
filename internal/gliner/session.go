package gliner

import "context"

// modelInputs is one assembled inference request. SpanIdx is a flat
// [NumSpans, 2] grid; the remaining slices are [SeqLen] except TextLengths,
// which is [1, 1].
type modelInputs struct {
	InputIDs      []int64
	AttentionMask []int64
	WordsMask     []int64
	TextLengths   []int64
	SpanIdx       []int64
	SpanMask      []bool
	SeqLen        int
	NumSpans      int
}

// session abstracts the ONNX runtime backend. Run returns the flat logits
// tensor and its shape ([batch, words, width, labels]).
type session interface {
	Run(ctx context.Context, in modelInputs) (logits []float32, shape []int64, err error)
	Close() error
}
