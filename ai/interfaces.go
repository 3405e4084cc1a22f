package ai

import "context"

// Router maps a free-text query to the single best matching category label
// out of the caller's active categories, plus a small set of keyword terms
// extracted from the query.
// Implementations must be thread-safe for concurrent use.
type Router interface {
	// RouteQuery asks the language model to pick one category name from the
	// supplied list and extract single-word keywords from the query.
	// The returned category matches one of the supplied names after
	// trimming and case folding.
	// When categories is empty, RouteQuery returns an empty Routing without
	// contacting the model.
	// Returns an error if the external call fails or the model's choice
	// matches no supplied name; callers treat that as a routing failure and
	// continue without a routed candidate pool.
	RouteQuery(ctx context.Context, query string, categories []string) (Routing, error)
}

// Routing is the structured result of query routing.
type Routing struct {
	// Category is the selected category name, exactly as supplied by the
	// caller. Empty when routing was skipped.
	Category string

	// Keywords are single-word, lowercase terms extracted from the query.
	Keywords []string
}

// Empty reports whether the routing carries no signal.
func (r Routing) Empty() bool {
	return r.Category == "" && len(r.Keywords) == 0
}

// Synthesizer composes a short natural-language answer from top-ranked note
// contents and the original query.
// Implementations must be thread-safe for concurrent use.
type Synthesizer interface {
	// Synthesize asks the language model for a single-sentence inferential
	// answer grounded in the supplied note contents, avoiding verbatim
	// quoting where possible.
	// Returns an error if the external call fails; callers treat a failed
	// synthesis as "no answer available" rather than a hard error.
	Synthesize(ctx context.Context, query string, contents []string) (string, error)
}

// EmotionClassifier infers the emotional tone of a note.
// Implementations must be thread-safe for concurrent use.
type EmotionClassifier interface {
	// ClassifyEmotion returns one label from EmotionLabels for the text.
	// Returns an error if the external call fails or the model answers
	// outside the label set.
	ClassifyEmotion(ctx context.Context, text string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Router, Synthesizer,
// and EmotionClassifier instances, ensuring they share configuration and
// resources appropriately. It is an injected capability, never a process
// singleton, so every consumer is trivially testable with ai/mock.
type AIProvider interface {
	// Router returns the query routing service.
	// The returned Router is safe for concurrent use.
	Router() Router

	// Synthesizer returns the answer synthesis service.
	// The returned Synthesizer is safe for concurrent use.
	Synthesizer() Synthesizer

	// EmotionClassifier returns the emotion classification service.
	// The returned EmotionClassifier is safe for concurrent use.
	EmotionClassifier() EmotionClassifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
