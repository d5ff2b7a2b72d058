//go:build onnxruntime

package gliner

import (
	"context"
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"
)

type ortSession struct {
	sess *ort.DynamicAdvancedSession
}

func newSession(modelFile string) (session, error) {
	if !ort.IsInitialized() {
		if lib := os.Getenv("GLINT_ONNXRUNTIME_LIB"); lib != "" {
			ort.SetSharedLibraryPath(lib)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}
	sess, err := ort.NewDynamicAdvancedSession(modelFile,
		[]string{"input_ids", "attention_mask", "words_mask", "text_lengths", "span_idx", "span_mask"},
		[]string{"logits"},
		nil)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}
	return &ortSession{sess: sess}, nil
}

func (s *ortSession) Run(ctx context.Context, in modelInputs) ([]float32, []int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	seq := int64(in.SeqLen)
	spans := int64(in.NumSpans)

	inputIDs, err := ort.NewTensor(ort.NewShape(1, seq), in.InputIDs)
	if err != nil {
		return nil, nil, err
	}
	defer inputIDs.Destroy()
	attentionMask, err := ort.NewTensor(ort.NewShape(1, seq), in.AttentionMask)
	if err != nil {
		return nil, nil, err
	}
	defer attentionMask.Destroy()
	wordsMask, err := ort.NewTensor(ort.NewShape(1, seq), in.WordsMask)
	if err != nil {
		return nil, nil, err
	}
	defer wordsMask.Destroy()
	textLengths, err := ort.NewTensor(ort.NewShape(1, 1), in.TextLengths)
	if err != nil {
		return nil, nil, err
	}
	defer textLengths.Destroy()
	spanIdx, err := ort.NewTensor(ort.NewShape(1, spans, 2), in.SpanIdx)
	if err != nil {
		return nil, nil, err
	}
	defer spanIdx.Destroy()
	spanMask, err := ort.NewTensor(ort.NewShape(1, spans), in.SpanMask)
	if err != nil {
		return nil, nil, err
	}
	defer spanMask.Destroy()

	outputs := []ort.Value{nil}
	err = s.sess.Run(
		[]ort.Value{inputIDs, attentionMask, wordsMask, textLengths, spanIdx, spanMask},
		outputs)
	if err != nil {
		return nil, nil, fmt.Errorf("run onnx session: %w", err)
	}
	out := outputs[0]
	defer out.Destroy()

	logits, ok := out.(*ort.Tensor[float32])
	if !ok {
		return nil, nil, fmt.Errorf("unexpected logits tensor type %T", out)
	}
	data := make([]float32, len(logits.GetData()))
	copy(data, logits.GetData())
	shape := make([]int64, len(logits.GetShape()))
	copy(shape, logits.GetShape())
	return data, shape, nil
}

func (s *ortSession) Close() error {
	return s.sess.Destroy()
}
