package gliner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ModelConfig holds the parsed configuration of a GLiNER ONNX export.
type ModelConfig struct {
	ModelDir    string
	ModelFile   string
	MaxWidth    int
	MaxLen      int
	Threshold   float64
	FlatNER     bool
	WordsJoiner string
}

type rawModelConfig struct {
	MaxWidth    int     `json:"max_width"`
	MaxLen      int     `json:"max_len"`
	Threshold   float64 `json:"threshold"`
	FlatNER     *bool   `json:"flat_ner"`
	WordsJoiner string  `json:"words_joiner"`
}

// LoadModelConfig reads gliner_config.json from the model directory, falling
// back to the defaults the upstream exports ship with.
func LoadModelConfig(modelDir string) (ModelConfig, error) {
	cfg := ModelConfig{
		ModelDir:    modelDir,
		ModelFile:   filepath.Join(modelDir, "model.onnx"),
		MaxWidth:    12,
		MaxLen:      512,
		Threshold:   0.5,
		FlatNER:     true,
		WordsJoiner: " ",
	}
	if _, err := os.Stat(cfg.ModelFile); err != nil {
		return ModelConfig{}, fmt.Errorf("model missing: %w", err)
	}

	raw, err := os.ReadFile(filepath.Join(modelDir, "gliner_config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return ModelConfig{}, fmt.Errorf("read gliner_config.json: %w", err)
	}
	var rc rawModelConfig
	if err := json.Unmarshal(raw, &rc); err != nil {
		return ModelConfig{}, fmt.Errorf("parse gliner_config.json: %w", err)
	}
	if rc.MaxWidth > 0 {
		cfg.MaxWidth = rc.MaxWidth
	}
	if rc.MaxLen > 0 {
		cfg.MaxLen = rc.MaxLen
	}
	if rc.Threshold > 0 {
		cfg.Threshold = rc.Threshold
	}
	if rc.FlatNER != nil {
		cfg.FlatNER = *rc.FlatNER
	}
	if rc.WordsJoiner != "" {
		cfg.WordsJoiner = rc.WordsJoiner
	}
	return cfg, nil
}
