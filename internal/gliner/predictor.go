package gliner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"glint/internal/extract"
)

// ErrModelUnavailable reports that no usable ONNX model could be loaded.
var ErrModelUnavailable = errors.New("gliner model unavailable")

// Config configures a Predictor. Zero values fall back to the model's own
// gliner_config.json (or its defaults).
type Config struct {
	ModelDir  string
	Threshold float64
	MaxWidth  int
}

// Predictor runs zero-shot named entity recognition with a GLiNER ONNX
// export: the candidate labels are encoded into the prompt at inference time,
// so any label set works without retraining. Implements extract.Predictor.
type Predictor struct {
	cfg    Config
	logger *zap.Logger

	once      sync.Once
	loadErr   error
	model     ModelConfig
	tokenizer *wordPieceTokenizer
	session   session
}

func NewPredictor(cfg Config, logger *zap.Logger) *Predictor {
	if cfg.ModelDir == "" {
		cfg.ModelDir = DefaultModelDir()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Predictor{cfg: cfg, logger: logger}
}

// DefaultModelDir prefers the per-user install location when a model is
// present there.
func DefaultModelDir() string {
	home, err := os.UserHomeDir()
	if err == nil {
		preferred := filepath.Join(home, ".glint", "models", "gliner_multi")
		if _, statErr := os.Stat(filepath.Join(preferred, "model.onnx")); statErr == nil {
			return preferred
		}
	}
	return filepath.Join("internal", "models", "gliner_multi")
}

func (p *Predictor) init() error {
	p.once.Do(func() {
		model, err := LoadModelConfig(p.cfg.ModelDir)
		if err != nil {
			p.loadErr = err
			return
		}
		if p.cfg.Threshold > 0 {
			model.Threshold = p.cfg.Threshold
		}
		if p.cfg.MaxWidth > 0 {
			model.MaxWidth = p.cfg.MaxWidth
		}
		tok, err := newWordPieceTokenizer(filepath.Join(p.cfg.ModelDir, "tokenizer.json"))
		if err != nil {
			p.loadErr = err
			return
		}
		sess, err := newSession(model.ModelFile)
		if err != nil {
			p.loadErr = err
			return
		}
		p.model = model
		p.tokenizer = tok
		p.session = sess
		p.logger.Info("gliner model loaded",
			zap.String("model_dir", model.ModelDir),
			zap.Int("max_len", model.MaxLen),
			zap.Int("max_width", model.MaxWidth),
			zap.Float64("threshold", model.Threshold))
	})
	return p.loadErr
}

// Close releases the underlying session, if one was created.
func (p *Predictor) Close() error {
	if p.session != nil {
		return p.session.Close()
	}
	return nil
}

func (p *Predictor) Predict(ctx context.Context, text string, labels []string) ([]extract.Entity, error) {
	if strings.TrimSpace(text) == "" || len(labels) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	words := splitWords(text)
	if len(words) == 0 {
		return nil, nil
	}
	in, wordCount := p.buildInputs(words, labels)
	logits, shape, err := p.session.Run(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("gliner inference: %w", err)
	}
	spans := p.decode(logits, shape, words[:wordCount], labels)
	if p.model.FlatNER {
		spans = suppressOverlaps(spans)
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end < spans[j].end
	})

	entities := make([]extract.Entity, 0, len(spans))
	for _, s := range spans {
		entities = append(entities, extract.Entity{Text: text[s.start:s.end], Label: s.label})
	}
	return entities, nil
}

// buildPrompt prefixes the candidate labels in the format the GLiNER exports
// expect: <<ENT>>label1<<SEP>><<ENT>>label2<<SEP>>...
func buildPrompt(labels []string) string {
	var sb strings.Builder
	for _, label := range labels {
		sb.WriteString("<<ENT>>")
		sb.WriteString(label)
		sb.WriteString("<<SEP>>")
	}
	return sb.String()
}

// buildInputs assembles [CLS] + prompt pieces + word pieces + [SEP] together
// with the word mask and the (word, width) span grid. Returns how many words
// survived truncation to the model's sequence limit.
func (p *Predictor) buildInputs(words []word, labels []string) (modelInputs, int) {
	var in modelInputs
	appendTok := func(id int64, attention, wordIdx int64) {
		in.InputIDs = append(in.InputIDs, id)
		in.AttentionMask = append(in.AttentionMask, attention)
		in.WordsMask = append(in.WordsMask, wordIdx)
	}

	appendTok(int64(p.tokenizer.clsID), 1, 0)
	for _, id := range p.tokenizer.encodeText(buildPrompt(labels)) {
		appendTok(int64(id), 1, 0)
	}

	wordCount := 0
	textTokens := 0
	for _, w := range words {
		if len(in.InputIDs) >= p.model.MaxLen-1 {
			break
		}
		pieces := p.tokenizer.encodeWord(w.Text)
		appended := false
		for _, id := range pieces {
			if len(in.InputIDs) >= p.model.MaxLen-1 {
				break
			}
			appendTok(int64(id), 1, int64(wordCount+1))
			textTokens++
			appended = true
		}
		if appended {
			wordCount++
		}
	}
	appendTok(int64(p.tokenizer.sepID), 1, 0)

	in.SeqLen = len(in.InputIDs)
	in.TextLengths = []int64{int64(textTokens)}
	in.NumSpans = wordCount * p.model.MaxWidth
	in.SpanIdx = make([]int64, 0, in.NumSpans*2)
	in.SpanMask = make([]bool, 0, in.NumSpans)
	for t := 0; t < wordCount; t++ {
		for wi := 0; wi < p.model.MaxWidth; wi++ {
			in.SpanIdx = append(in.SpanIdx, int64(t), int64(t+wi))
			in.SpanMask = append(in.SpanMask, t+wi < wordCount)
		}
	}
	return in, wordCount
}

type span struct {
	start, end int // byte offsets in the source text
	label      string
	score      float64
}

// decode walks the (word, width, label) logit grid and keeps every span
// scoring at or above the threshold.
func (p *Predictor) decode(logits []float32, shape []int64, words []word, labels []string) []span {
	maxWidth := p.model.MaxWidth
	numLabels := len(labels)
	if len(shape) >= 4 {
		maxWidth = int(shape[2])
		numLabels = int(shape[3])
	}
	if maxWidth <= 0 || numLabels <= 0 {
		return nil
	}

	var spans []span
	for w := range words {
		for wi := 0; wi < maxWidth; wi++ {
			last := w + wi
			if last >= len(words) {
				break
			}
			base := (w*maxWidth + wi) * numLabels
			for li := 0; li < numLabels && li < len(labels); li++ {
				idx := base + li
				if idx >= len(logits) {
					continue
				}
				score := sigmoid(logits[idx])
				if score < p.model.Threshold {
					continue
				}
				spans = append(spans, span{
					start: words[w].Start,
					end:   words[last].End,
					label: labels[li],
					score: score,
				})
			}
		}
	}
	return spans
}

// suppressOverlaps drops overlapping spans, keeping higher scores first
// (flat NER).
func suppressOverlaps(spans []span) []span {
	if len(spans) <= 1 {
		return spans
	}
	sorted := make([]span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].score > sorted[j].score })

	kept := make([]span, 0, len(sorted))
	for _, s := range sorted {
		overlaps := false
		for _, k := range kept {
			if s.start < k.end && s.end > k.start {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, s)
		}
	}
	return kept
}

func sigmoid(x float32) float64 {
	return 1.0 / (1.0 + math.Exp(-float64(x)))
}
