package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"glint/internal/models"
)

func newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage installed GLiNER models",
	}
	cmd.AddCommand(newModelListCmd(), newModelDownloadCmd(), newModelRemoveCmd())
	return cmd
}

func loadRegistry() (models.Registry, string, error) {
	registry, err := models.LoadEmbeddedRegistry()
	if err != nil {
		return models.Registry{}, "", err
	}
	root, err := models.DefaultModelsRoot()
	if err != nil {
		return models.Registry{}, "", err
	}
	return registry, root, nil
}

func newModelListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, root, err := loadRegistry()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-14s %-8s %-8s %-14s %s\n", "NAME", "LANG", "SIZE", "STATUS", "DESCRIPTION")
			fmt.Fprintln(out, strings.Repeat("-", 80))
			installed := 0
			for _, m := range registry.Models {
				status := "not installed"
				if models.IsInstalled(root, m) {
					status = "installed"
					installed++
				}
				fmt.Fprintf(out, "%-14s %-8s %-8s %-14s %s\n",
					m.Name, strings.Join(m.Languages, ","), humanBytes(m.SizeBytes), status, m.Description)
			}
			fmt.Fprintln(out, strings.Repeat("-", 80))
			fmt.Fprintf(out, "Installed: %d/%d models\n", installed, len(registry.Models))
			fmt.Fprintln(out, "\nTip: use 'glint model download <name>' to install a model")
			return nil
		},
	}
}

func newModelDownloadCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "download [name]",
		Short: "Download and install a model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, root, err := loadRegistry()
			if err != nil {
				return err
			}
			var selected []models.ModelSpec
			if all {
				for _, m := range registry.Models {
					if m.Recommended {
						selected = append(selected, m)
					}
				}
			} else {
				if len(args) != 1 {
					return fmt.Errorf("usage: glint model download <name> or glint model download --all")
				}
				m, ok := registry.Find(args[0])
				if !ok {
					return fmt.Errorf("model %q not found", args[0])
				}
				selected = append(selected, m)
			}

			out := cmd.OutOrStdout()
			dl := models.NewDownloader()
			for _, m := range selected {
				fmt.Fprintf(out, "\nDownloading %s v%s\n", m.Name, m.Version)
				fmt.Fprintf(out, "Source: %s\n\n", m.URL)
				lastUpdate := time.Time{}
				err := dl.DownloadAndInstall(cmd.Context(), m, root, func(p models.Progress) {
					if time.Since(lastUpdate) < 120*time.Millisecond && p.Total > 0 {
						return
					}
					lastUpdate = time.Now()
					pct := float64(0)
					if p.Total > 0 {
						pct = float64(p.Downloaded) * 100 / float64(p.Total)
					}
					fmt.Fprintf(out, "\rDownloading... %6.2f%% | %s / %s | %.2f MB/s",
						pct, humanBytes(p.Downloaded), humanBytes(p.Total), p.SpeedMBps)
				})
				fmt.Fprintln(out)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nModel %s installed to %s\n", m.Name, models.ModelInstallPath(root, m.Name))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "download all recommended models")
	return cmd
}

func newModelRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove an installed model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, root, err := loadRegistry()
			if err != nil {
				return err
			}
			m, ok := registry.Find(args[0])
			if !ok {
				return fmt.Errorf("model %q not found", args[0])
			}
			loc := models.ModelInstallPath(root, m.Name)
			if _, err := os.Stat(loc); err != nil {
				if os.IsNotExist(err) {
					fmt.Fprintf(cmd.OutOrStdout(), "Model %s is not installed\n", m.Name)
					return nil
				}
				return err
			}
			if err := os.RemoveAll(loc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Model %s removed\n", m.Name)
			return nil
		},
	}
}

func humanBytes(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	const mb = 1024 * 1024
	if n >= mb {
		return fmt.Sprintf("%d MB", n/mb)
	}
	return fmt.Sprintf("%d KB", n/1024)
}
