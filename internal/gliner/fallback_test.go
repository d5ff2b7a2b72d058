package gliner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"glint/internal/extract"
)

func TestHeuristicPredictorFindsCapitalizedRuns(t *testing.T) {
	got, err := HeuristicPredictor{}.Predict(context.Background(),
		"My name is Jane Doe and I work at Initech.", []string{"person", "organization"})
	require.NoError(t, err)
	require.Equal(t, []extract.Entity{
		{Text: "Jane Doe", Label: "person"},
		{Text: "Initech", Label: "person"},
	}, got)
}

func TestHeuristicPredictorSkipsSentenceStart(t *testing.T) {
	got, err := HeuristicPredictor{}.Predict(context.Background(),
		"Yesterday nothing happened.", []string{"person"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestHeuristicPredictorEmpty(t *testing.T) {
	got, err := HeuristicPredictor{}.Predict(context.Background(), " ", []string{"person"})
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = HeuristicPredictor{}.Predict(context.Background(), "text", nil)
	require.NoError(t, err)
	require.Nil(t, got)
}
