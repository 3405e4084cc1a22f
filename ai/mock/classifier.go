package mock

import (
	"context"
	"strings"
)

// MockEmotionClassifier is a test double for ai.EmotionClassifier.
// It allows custom behavior injection via function fields.
type MockEmotionClassifier struct {
	// ClassifyEmotionFunc is called by ClassifyEmotion if set.
	// If nil, uses default keyword-based behavior.
	ClassifyEmotionFunc func(ctx context.Context, text string) (string, error)

	callCount int
}

// NewMockEmotionClassifier creates a mock classifier with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockClassifier().
func NewMockEmotionClassifier() *MockEmotionClassifier {
	return &MockEmotionClassifier{}
}

// ClassifyEmotion returns a label based on trivial keyword spotting.
// Default behavior: "joy" for texts containing "great" or "love",
// "sadness" for "sad", otherwise "calm".
func (m *MockEmotionClassifier) ClassifyEmotion(ctx context.Context, text string) (string, error) {
	m.callCount++

	if m.ClassifyEmotionFunc != nil {
		return m.ClassifyEmotionFunc(ctx, text)
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "great"), strings.Contains(lower, "love"):
		return "joy", nil
	case strings.Contains(lower, "sad"):
		return "sadness", nil
	}
	return "calm", nil
}

// CallCount returns the number of times ClassifyEmotion was called.
func (m *MockEmotionClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockEmotionClassifier) Reset() {
	m.callCount = 0
	m.ClassifyEmotionFunc = nil
}
