package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"glint/internal/config"
	"glint/internal/extract"
	"glint/internal/gliner"
)

type rootOptions struct {
	configPath string
	modelDir   string
	labels     []string
	maxLen     int
	overlap    int
	noColor    bool
	logLevel   string
	fallback   bool

	flags *pflag.FlagSet
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "glint",
		Short:         "Zero-shot named entity extraction with annotated terminal output",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default ~/.glint/config.yaml)")
	pf.StringVar(&opts.modelDir, "model", "", "model directory")
	pf.StringSliceVar(&opts.labels, "labels", nil, "candidate entity labels")
	pf.IntVar(&opts.maxLen, "max-len", 0, "extraction window length in runes")
	pf.IntVar(&opts.overlap, "overlap", -1, "window overlap in runes")
	pf.BoolVar(&opts.noColor, "no-color", false, "bracket markers instead of ANSI styling")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&opts.fallback, "fallback", false, "use the heuristic predictor instead of the ONNX model")
	opts.flags = pf

	cmd.AddCommand(
		newExtractCmd(opts),
		newDemoCmd(opts),
		newModelCmd(),
		newVersionCmd(),
	)
	return cmd
}

// load resolves the effective configuration: file and environment first,
// explicitly set flags on top.
func (o *rootOptions) load() (config.Config, error) {
	path := o.configPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if o.flags.Changed("model") {
		cfg.ModelDir = o.modelDir
	}
	if o.flags.Changed("labels") {
		cfg.Labels = o.labels
	}
	if o.flags.Changed("max-len") {
		cfg.MaxLen = o.maxLen
	}
	if o.flags.Changed("overlap") {
		cfg.Overlap = o.overlap
	}
	if o.flags.Changed("no-color") {
		cfg.NoColor = o.noColor
	}
	if o.flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.OutputPaths = []string{"stderr"}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zc.Build()
}

func (o *rootOptions) newPredictor(cfg config.Config, logger *zap.Logger) extract.Predictor {
	if o.fallback {
		return gliner.HeuristicPredictor{}
	}
	return gliner.NewPredictor(gliner.Config{ModelDir: cfg.ModelDir}, logger)
}

func (o *rootOptions) newChunker(cfg config.Config, logger *zap.Logger) (*extract.Chunker, error) {
	return extract.NewChunker(
		o.newPredictor(cfg, logger),
		extract.ChunkerConfig{MaxLen: cfg.MaxLen, Overlap: cfg.Overlap},
		logger,
	)
}
