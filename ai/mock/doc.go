// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Router, ai.Synthesizer,
// ai.EmotionClassifier, and ai.AIProvider for use in unit tests. The mocks
// allow tests to run without external AI service dependencies and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	routing, err := mockProvider.Router().RouteQuery(ctx, "query", []string{"Pets"})
//
//	// Custom behavior injection
//	mockRouter := mock.NewMockRouter()
//	mockRouter.RouteQueryFunc = func(ctx context.Context, query string, categories []string) (ai.Routing, error) {
//	    return ai.Routing{Category: "Pets", Keywords: []string{"animal"}}, nil
//	}
//
//	// Check call counts
//	count := mockRouter.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockRouter: Selects the first category, keywords from long query words
//   - MockSynthesizer: Returns a deterministic one-sentence answer
//   - MockEmotionClassifier: Keyword-spots joy/sadness, defaults to calm
//   - MockProvider: Aggregates the three mock services
package mock
