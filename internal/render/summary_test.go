package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"glint/internal/extract"
)

func TestGroupByLabelInsertionOrder(t *testing.T) {
	groups := GroupByLabel([]extract.Entity{
		{Text: "Ronaldo", Label: "person"},
		{Text: "Al Nassr", Label: "organization"},
		{Text: "Messi", Label: "person"},
	})
	require.Equal(t, []Group{
		{Label: "person", Texts: []string{"Ronaldo", "Messi"}},
		{Label: "organization", Texts: []string{"Al Nassr"}},
	}, groups)
}

func TestSummarizeCountsAndPercentages(t *testing.T) {
	a := GroupByLabel([]extract.Entity{
		{Text: "Ronaldo", Label: "person"},
		{Text: "Messi", Label: "person"},
		{Text: "Al Nassr", Label: "organization"},
	})
	b := GroupByLabel([]extract.Entity{
		{Text: "Curie", Label: "person"},
	})

	sum := Summarize(a, b)
	require.Equal(t, 4, sum.Total)
	require.Equal(t, []LabelCount{
		{Label: "person", Count: 3, Percent: 75},
		{Label: "organization", Count: 1, Percent: 25},
	}, sum.ByLabel)
}

func TestSummarizeTieBreaksByLabel(t *testing.T) {
	sum := Summarize([]Group{
		{Label: "b", Texts: []string{"1"}},
		{Label: "a", Texts: []string{"2"}},
	})
	require.Equal(t, "a", sum.ByLabel[0].Label)
	require.Equal(t, "b", sum.ByLabel[1].Label)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize()
	require.Zero(t, sum.Total)
	require.Empty(t, sum.ByLabel)
}
