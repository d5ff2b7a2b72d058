package render

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"glint/internal/extract"
)

// Occurrence is one concrete appearance of an entity in the source text,
// as byte offsets. Occurrences are derived by scanning, never authoritative:
// an entity may have zero, one, or many.
type Occurrence struct {
	Start int
	End   int
	Text  string
	Label string
}

// Segment is a fragment of the source text. Label is empty for unannotated
// fragments.
type Segment struct {
	Text  string
	Label string
}

type Result struct {
	Segments []Segment
	Legend   []LegendEntry
	Groups   []Group
}

// Render locates every entity occurrence in text, resolves overlaps
// leftmost-longest, and returns the annotated segment sequence together with
// the per-label legend and the grouped entity lists. Entities whose text does
// not appear in the source contribute no segments but still appear in the
// groups: the summary is entity-list-driven, the annotation is text-driven.
func Render(text string, entities []extract.Entity) Result {
	return Result{
		Segments: annotate(text, entities),
		Legend:   AssignStyles(entities),
		Groups:   GroupByLabel(entities),
	}
}

// findOccurrences scans text for every non-overlapping literal occurrence of
// each entity's surface text, bucketed by start offset. The surface text is
// treated as literal content, not a pattern.
func findOccurrences(text string, entities []extract.Entity) map[int][]Occurrence {
	byStart := make(map[int][]Occurrence)
	for _, e := range entities {
		if e.Text == "" {
			continue
		}
		from := 0
		for {
			i := strings.Index(text[from:], e.Text)
			if i < 0 {
				break
			}
			start := from + i
			byStart[start] = append(byStart[start], Occurrence{
				Start: start,
				End:   start + len(e.Text),
				Text:  e.Text,
				Label: e.Label,
			})
			from = start + len(e.Text)
		}
	}
	return byStart
}

// resolve walks start offsets in ascending order, skipping any start inside
// the previously accepted span, and keeps the longest occurrence at each
// surviving start (the first one on equal length). Greedy and local: a span
// starting inside an accepted span is never considered, even if it would
// extend further.
func resolve(byStart map[int][]Occurrence) []Occurrence {
	starts := make([]int, 0, len(byStart))
	for s := range byStart {
		starts = append(starts, s)
	}
	sort.Ints(starts)

	chosen := make([]Occurrence, 0, len(starts))
	lastEnd := 0
	for _, s := range starts {
		if s < lastEnd {
			continue
		}
		best := byStart[s][0]
		for _, o := range byStart[s][1:] {
			if o.End > best.End {
				best = o
			}
		}
		chosen = append(chosen, best)
		lastEnd = best.End
	}
	return chosen
}

func annotate(text string, entities []extract.Entity) []Segment {
	chosen := resolve(findOccurrences(text, entities))
	segments := make([]Segment, 0, 2*len(chosen)+1)
	cursor := 0
	for _, o := range chosen {
		if o.Start > cursor {
			segments = append(segments, Segment{Text: text[cursor:o.Start]})
		}
		segments = append(segments, Segment{Text: text[o.Start:o.End], Label: o.Label})
		cursor = o.End
	}
	if cursor < len(text) {
		segments = append(segments, Segment{Text: text[cursor:]})
	}
	return segments
}

// ANSI renders the segments with each label's assigned style.
func (r Result) ANSI() string {
	styles := make(map[string]lipgloss.Style, len(r.Legend))
	for _, le := range r.Legend {
		styles[le.Label] = le.Style
	}
	var b strings.Builder
	for _, s := range r.Segments {
		if s.Label == "" {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(styles[s.Label].Render(s.Text))
	}
	return b.String()
}

// Plain renders the segments as [text](label) markers, for no-color output.
func (r Result) Plain() string {
	var b strings.Builder
	for _, s := range r.Segments {
		if s.Label == "" {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString("[")
		b.WriteString(s.Text)
		b.WriteString("](")
		b.WriteString(s.Label)
		b.WriteString(")")
	}
	return b.String()
}
