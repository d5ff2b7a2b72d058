package render

import (
	"sort"

	"glint/internal/extract"
)

// Group is the entity texts sharing one label, in the order the entities
// appeared in the input list.
type Group struct {
	Label string
	Texts []string
}

// GroupByLabel partitions entities by label, preserving insertion order of
// both labels and texts.
func GroupByLabel(entities []extract.Entity) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, e := range entities {
		i, ok := index[e.Label]
		if !ok {
			i = len(groups)
			index[e.Label] = i
			groups = append(groups, Group{Label: e.Label})
		}
		groups[i].Texts = append(groups[i].Texts, e.Text)
	}
	return groups
}

type LabelCount struct {
	Label   string
	Count   int
	Percent float64
}

type Summary struct {
	Total   int
	ByLabel []LabelCount
}

// Summarize aggregates grouped entities, typically across several texts, into
// per-label counts with a share of the overall total. Sorted by count
// descending, then label.
func Summarize(groupSets ...[]Group) Summary {
	counts := make(map[string]int)
	total := 0
	for _, groups := range groupSets {
		for _, g := range groups {
			counts[g.Label] += len(g.Texts)
			total += len(g.Texts)
		}
	}
	out := Summary{Total: total}
	for label, n := range counts {
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(n) / float64(total)
		}
		out.ByLabel = append(out.ByLabel, LabelCount{Label: label, Count: n, Percent: pct})
	}
	sort.Slice(out.ByLabel, func(i, j int) bool {
		if out.ByLabel[i].Count == out.ByLabel[j].Count {
			return out.ByLabel[i].Label < out.ByLabel[j].Label
		}
		return out.ByLabel[i].Count > out.ByLabel[j].Count
	})
	return out
}
