package mock

import (
	"context"
	"strings"

	"github.com/poiesic/recall/ai"
)

// MockRouter is a test double for ai.Router.
// It allows custom behavior injection via function fields.
type MockRouter struct {
	// RouteQueryFunc is called by RouteQuery if set.
	// If nil, uses default deterministic behavior.
	RouteQueryFunc func(ctx context.Context, query string, categories []string) (ai.Routing, error)

	callCount int
}

// NewMockRouter creates a mock router with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via GetMockRouter().
func NewMockRouter() *MockRouter {
	return &MockRouter{}
}

// RouteQuery selects the first category and extracts keywords from the query words.
// Default behavior: every word longer than three characters becomes a keyword.
func (m *MockRouter) RouteQuery(ctx context.Context, query string, categories []string) (ai.Routing, error) {
	m.callCount++

	if m.RouteQueryFunc != nil {
		return m.RouteQueryFunc(ctx, query, categories)
	}

	if len(categories) == 0 {
		return ai.Routing{}, nil
	}

	words := strings.Fields(strings.ToLower(query))
	keywords := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if len(word) > 3 {
			keywords = append(keywords, word)
		}
		if len(keywords) == 5 {
			break
		}
	}

	return ai.Routing{
		Category: categories[0],
		Keywords: keywords,
	}, nil
}

// CallCount returns the number of times RouteQuery was called.
func (m *MockRouter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockRouter) Reset() {
	m.callCount = 0
	m.RouteQueryFunc = nil
}
