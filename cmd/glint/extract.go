package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"glint/internal/extract"
	"glint/internal/gliner"
	"glint/internal/render"
)

func newExtractCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <text>",
		Short: "Extract entities from one text and print the annotated result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := buildLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			chunker, err := opts.newChunker(cfg, logger)
			if err != nil {
				return err
			}
			entities, err := chunker.Extract(cmd.Context(), args[0], cfg.Labels)
			if err != nil {
				if errors.Is(err, gliner.ErrModelUnavailable) {
					return fmt.Errorf("%w\n\nDownload a model with 'glint model download gliner_multi', or retry with --fallback", err)
				}
				return err
			}
			printReport(cmd.OutOrStdout(), args[0], entities, cfg.NoColor)
			return nil
		},
	}
}

func printReport(out io.Writer, text string, entities []extract.Entity, noColor bool) {
	res := render.Render(text, entities)

	if noColor {
		fmt.Fprintln(out, res.Plain())
	} else {
		fmt.Fprintln(out, res.ANSI())
	}
	if len(entities) == 0 {
		fmt.Fprintln(out, "\nNo entities found")
		return
	}

	fmt.Fprintln(out, "\nLegend:")
	for _, le := range res.Legend {
		if noColor {
			fmt.Fprintf(out, "  %s\n", le.Label)
		} else {
			fmt.Fprintf(out, "  %s\n", le.Style.Render(le.Label))
		}
	}

	fmt.Fprintf(out, "\n%-5s %-14s %s\n", "#", "Label", "Text")
	fmt.Fprintln(out, strings.Repeat("-", 60))
	i := 0
	for _, g := range res.Groups {
		for _, t := range g.Texts {
			i++
			fmt.Fprintf(out, "%-5d %-14s %s\n", i, g.Label, t)
		}
	}
}
