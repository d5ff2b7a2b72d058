package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"glint/internal/examples"
	"glint/internal/gliner"
	"glint/internal/render"
)

func newDemoCmd(opts *rootOptions) *cobra.Command {
	var examplesPath string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the bundled (or a custom) example set and summarize the results",
		Args:  cobra.NoArgs,
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

			set := examples.Default()
			if examplesPath != "" {
				set, err = examples.Load(examplesPath)
				if err != nil {
					return err
				}
			}
			// The example set carries its own labels unless overridden.
			labels := set.Labels
			if opts.flags.Changed("labels") {
				labels = cfg.Labels
			}

			chunker, err := opts.newChunker(cfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var groupSets [][]render.Group
			for _, ex := range set.Examples {
				entities, err := chunker.Extract(cmd.Context(), ex.Text, labels)
				if err != nil {
					if errors.Is(err, gliner.ErrModelUnavailable) {
						return fmt.Errorf("%w\n\nDownload a model with 'glint model download gliner_multi', or retry with --fallback", err)
					}
					return fmt.Errorf("example %d: %w", ex.ID, err)
				}
				fmt.Fprintf(out, "Example %d: %s\n", ex.ID, ex.Description)
				fmt.Fprintln(out, strings.Repeat("-", 60))
				printReport(out, ex.Text, entities, cfg.NoColor)
				fmt.Fprintln(out)
				groupSets = append(groupSets, render.GroupByLabel(entities))
			}

			summary := render.Summarize(groupSets...)
			fmt.Fprintf(out, "Overall: %d entities across %d examples\n", summary.Total, len(set.Examples))
			fmt.Fprintln(out, strings.Repeat("-", 40))
			for _, lc := range summary.ByLabel {
				fmt.Fprintf(out, "%-14s %5d  %5.1f%%\n", lc.Label, lc.Count, lc.Percent)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&examplesPath, "examples", "", "examples JSON file (default: bundled set)")
	return cmd
}
