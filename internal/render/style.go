package render

import (
	"github.com/charmbracelet/lipgloss"

	"glint/internal/extract"
)

// palette is the fixed set of entity styles. Labels are assigned styles by
// index modulo the palette size, so a ninth label shares the first style.
var palette = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),  // magenta
	lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),  // green
	lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),  // blue
	lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),  // yellow
	lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),  // cyan
	lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),  // red
	lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true), // bright magenta
	lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true), // bright green
}

// PaletteSize reports how many distinct styles exist before reuse begins.
func PaletteSize() int { return len(palette) }

type LegendEntry struct {
	Label string
	Style lipgloss.Style
}

// AssignStyles maps each distinct label to a style, in first-seen order of
// the entity list. The assignment is stable for one rendering pass only.
func AssignStyles(entities []extract.Entity) []LegendEntry {
	seen := make(map[string]struct{})
	var legend []LegendEntry
	for _, e := range entities {
		if _, ok := seen[e.Label]; ok {
			continue
		}
		seen[e.Label] = struct{}{}
		legend = append(legend, LegendEntry{
			Label: e.Label,
			Style: palette[len(legend)%len(palette)],
		})
	}
	return legend
}
