// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/recall/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Router implements ai.Router using OpenAI-compatible chat APIs.
type Router struct {
	client      llms.Model
	timeout     time.Duration
	maxKeywords int
	logger      *slog.Logger
}

// routing is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type routing struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// newRouter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRouter(config *ai.Config) (*Router, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Router{
		client:      client,
		timeout:     config.Timeout,
		maxKeywords: config.MaxKeywords,
		logger:      slog.Default().With("component", "openai-router"),
	}, nil
}

// NewRouter creates a new query router using the provided configuration.
//
// Returns ai.Router interface to enforce abstraction.
func NewRouter(config *ai.Config) (ai.Router, error) {
	return newRouter(config)
}

// RouteQuery selects the best matching category and extracts keywords.
// The category in the result is always one of the supplied names.
func (r *Router) RouteQuery(ctx context.Context, query string, categories []string) (ai.Routing, error) {
	// No active categories: skip the network call entirely.
	if len(categories) == 0 {
		return ai.Routing{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildRoutingPrompt(categories, r.maxKeywords)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(scrubString(query)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON; the network call itself
	// is not retried beyond these parse attempts.
	var result routing
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			r.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return ai.Routing{}, err
		}

		if len(response.Choices) < 1 {
			r.logger.Debug("no choices returned from model")
			return ai.Routing{}, ai.ErrEmptyResponse
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			r.logger.Warn("error parsing router response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		r.logger.Error("failed to parse router response after retries", "err", lastErr)
		return ai.Routing{}, lastErr
	}

	selected, ok := matchCategory(result.Category, categories)
	if !ok {
		r.logger.Warn("model selected unknown category", "selected", result.Category)
		return ai.Routing{}, fmt.Errorf("%w: %q", ai.ErrUnknownCategory, result.Category)
	}

	return ai.Routing{
		Category: selected,
		Keywords: cleanKeywords(result.Keywords, r.maxKeywords),
	}, nil
}

// matchCategory finds the supplied category name the model's choice refers
// to, comparing trimmed and case-folded. Returns the caller's spelling.
func matchCategory(selected string, categories []string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(selected))
	if key == "" {
		return "", false
	}
	for _, category := range categories {
		if strings.ToLower(strings.TrimSpace(category)) == key {
			return category, true
		}
	}
	return "", false
}

// cleanKeywords lowercases keywords, drops multi-word and empty entries,
// deduplicates, and truncates to the configured cap.
func cleanKeywords(keywords []string, max int) []string {
	seen := make(map[string]bool, len(keywords))
	cleaned := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" || strings.ContainsAny(keyword, " \t") || seen[keyword] {
			continue
		}
		seen[keyword] = true
		cleaned = append(cleaned, keyword)
		if len(cleaned) == max {
			break
		}
	}
	return cleaned
}
