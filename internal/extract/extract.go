package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ChunkerConfig bounds the text a single predictor call may see. Both fields
// are rune counts.
type ChunkerConfig struct {
	// MaxLen is the longest text submitted to the predictor in one call.
	MaxLen int
	// Overlap is how far each window reaches back into its predecessor.
	Overlap int
}

func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{MaxLen: 512, Overlap: 64}
}

// Chunker splits long texts into overlapping windows, runs the predictor on
// each window in order, and merges the per-window results into one list.
type Chunker struct {
	predictor Predictor
	cfg       ChunkerConfig
	logger    *zap.Logger
}

func NewChunker(predictor Predictor, cfg ChunkerConfig, logger *zap.Logger) (*Chunker, error) {
	if predictor == nil {
		return nil, errors.New("predictor is required")
	}
	if cfg.MaxLen <= 0 {
		cfg.MaxLen = DefaultChunkerConfig().MaxLen
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.MaxLen {
		return nil, fmt.Errorf("overlap must be in [0, max_len): got overlap=%d max_len=%d", cfg.Overlap, cfg.MaxLen)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chunker{predictor: predictor, cfg: cfg, logger: logger}, nil
}

type entityKey struct {
	text, label string
}

// Extract runs the predictor over text. Texts of at most MaxLen runes are a
// single pass-through call whose result is returned unchanged. Longer texts
// are cut into windows of MaxLen runes, each window starting Overlap runes
// before its predecessor's end; windows run strictly in order because later
// windows deduplicate against the accumulated result. The first window's
// entities are kept verbatim; later windows contribute only (text, label)
// pairs not seen before. A predictor failure aborts the whole call.
//
// Empty or whitespace-only text yields no entities and no error.
func (c *Chunker) Extract(ctx context.Context, text string, labels []string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	runes := []rune(text)
	if len(runes) <= c.cfg.MaxLen {
		return c.predictor.Predict(ctx, text, labels)
	}

	seen := make(map[entityKey]struct{})
	var merged []Entity
	start := 0
	for window := 0; ; window++ {
		end := start + c.cfg.MaxLen
		if end > len(runes) {
			end = len(runes)
		}
		entities, err := c.predictor.Predict(ctx, string(runes[start:end]), labels)
		if err != nil {
			return nil, fmt.Errorf("window %d [%d:%d): %w", window, start, end, err)
		}
		added := 0
		for _, e := range entities {
			k := entityKey{e.Text, e.Label}
			if window > 0 {
				if _, dup := seen[k]; dup {
					continue
				}
			}
			seen[k] = struct{}{}
			merged = append(merged, e)
			added++
		}
		c.logger.Debug("window extracted",
			zap.Int("window", window),
			zap.Int("start", start),
			zap.Int("end", end),
			zap.Int("predicted", len(entities)),
			zap.Int("added", added))
		if end == len(runes) {
			break
		}
		start = end - c.cfg.Overlap
	}
	return merged, nil
}
