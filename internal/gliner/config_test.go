package gliner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadModelConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.onnx"), []byte("onnx"), 0o644))

	cfg, err := LoadModelConfig(dir)
	require.NoError(t, err)
	require.Equal(t, 12, cfg.MaxWidth)
	require.Equal(t, 512, cfg.MaxLen)
	require.Equal(t, 0.5, cfg.Threshold)
	require.True(t, cfg.FlatNER)
}

func TestLoadModelConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.onnx"), []byte("onnx"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gliner_config.json"),
		[]byte(`{"max_width": 8, "max_len": 384, "threshold": 0.3, "flat_ner": false}`), 0o644))

	cfg, err := LoadModelConfig(dir)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.MaxWidth)
	require.Equal(t, 384, cfg.MaxLen)
	require.Equal(t, 0.3, cfg.Threshold)
	require.False(t, cfg.FlatNER)
}

func TestLoadModelConfigMissingModel(t *testing.T) {
	_, err := LoadModelConfig(t.TempDir())
	require.Error(t, err)
}
