package extract

import "context"

// Entity is one model prediction: a surface text and its label. Two entities
// with the same (Text, Label) pair are the same entity for merging purposes.
// Entities carry no position; occurrences are recovered later by scanning the
// source text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Predictor is the external entity-recognition call. It must be side-effect
// free and may be slow (model inference). Returned entities carry text and
// label only.
type Predictor interface {
	Predict(ctx context.Context, text string, labels []string) ([]Entity, error)
}
