package openai

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/recall/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// EmotionClassifier implements ai.EmotionClassifier using OpenAI-compatible chat APIs.
type EmotionClassifier struct {
	client  llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

// newEmotionClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmotionClassifier(config *ai.Config) (*EmotionClassifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &EmotionClassifier{
		client:  client,
		timeout: config.Timeout,
		logger:  slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewEmotionClassifier creates a new emotion classifier using the provided configuration.
//
// Returns ai.EmotionClassifier interface to enforce abstraction.
func NewEmotionClassifier(config *ai.Config) (ai.EmotionClassifier, error) {
	return newEmotionClassifier(config)
}

// ClassifyEmotion returns one label from ai.EmotionLabels for the text.
// A model answer outside the label set is an error, never silently coerced
// to a default.
func (c *EmotionClassifier) ClassifyEmotion(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildEmotionPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(scrubString(text)),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, messages, llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("failed to classify emotion", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", ai.ErrEmptyResponse
	}

	label := strings.ToLower(strings.TrimSpace(response.Choices[0].Content))
	label = strings.Trim(label, ".\"'")
	if !slices.Contains(ai.EmotionLabels, label) {
		c.logger.Warn("model answered outside the emotion label set", "label", label)
		return "", fmt.Errorf("%w: %q", ai.ErrUnknownEmotion, label)
	}

	return label, nil
}
