package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultMaxLen  = 512
	defaultOverlap = 64
)

type Config struct {
	// MaxLen and Overlap bound the extraction windows, in runes.
	MaxLen  int `mapstructure:"max_len"`
	Overlap int `mapstructure:"overlap"`
	// Labels are the candidate entity types passed to the model.
	Labels   []string `mapstructure:"labels"`
	ModelDir string   `mapstructure:"model_dir"`
	LogLevel string   `mapstructure:"log_level"`
	NoColor  bool     `mapstructure:"no_color"`
}

func Default() Config {
	return Config{
		MaxLen:   defaultMaxLen,
		Overlap:  defaultOverlap,
		Labels:   []string{"person", "award", "date", "organization", "location"},
		LogLevel: "info",
	}
}

func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".glint", "config.yaml"), nil
}

// Load reads the config file at path (missing file is fine: defaults apply)
// and merges GLINT_* environment variables over it.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetDefault("max_len", cfg.MaxLen)
	v.SetDefault("overlap", cfg.Overlap)
	v.SetDefault("labels", cfg.Labels)
	v.SetDefault("model_dir", cfg.ModelDir)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("no_color", cfg.NoColor)
	v.SetEnvPrefix("GLINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return Config{}, fmt.Errorf("read config: %w", err)
				}
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxLen <= 0 {
		return fmt.Errorf("max_len must be positive: got %d", c.MaxLen)
	}
	if c.Overlap < 0 || c.Overlap >= c.MaxLen {
		return fmt.Errorf("overlap must be in [0, max_len): got overlap=%d max_len=%d", c.Overlap, c.MaxLen)
	}
	if len(c.Labels) == 0 {
		return errors.New("at least one label is required")
	}
	return nil
}
