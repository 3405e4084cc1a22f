package ai

import "errors"

// EmotionLabels defines the valid labels an EmotionClassifier may return.
// The set mirrors core.Emotions; classifiers never invent new labels.
var EmotionLabels = []string{
	"calm",
	"joy",
	"sadness",
	"anger",
	"fear",
	"surprise",
}

var (
	// ErrUnknownCategory is returned when the model selects a category name
	// that matches none of the supplied active categories.
	ErrUnknownCategory = errors.New("routed category not in active set")

	// ErrUnknownEmotion is returned when the model answers with a label
	// outside EmotionLabels.
	ErrUnknownEmotion = errors.New("emotion label not in declared set")

	// ErrEmptyResponse is returned when the model produces no usable output.
	ErrEmptyResponse = errors.New("empty model response")
)
