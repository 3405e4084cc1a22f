package search

import (
	"context"
	"log/slog"
	"sync"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/text"
)

// Embedder turns query text into a vector comparable with stored note
// vectors.
type Embedder interface {
	Embed(content string) []float32
}

// Snapshot is the read-only view of stored data a single query runs
// against. Concurrent external mutation is tolerated; a stale read is
// acceptable.
type Snapshot struct {
	Notes      []*core.Note
	Categories []*core.Category
}

// Strategy selects the candidate pool for a query. Implementations
// must treat the snapshot as read-only and degrade to a smaller (or
// empty) pool instead of failing when an external collaborator is
// unavailable.
type Strategy interface {
	// Select returns candidates ordered most relevant first.
	Select(ctx context.Context, query string, snapshot *Snapshot, monitor SearchMonitor) ([]*core.SearchResult, error)
}

// LexicalStrategy matches notes whose contents share at least one
// normalized query token. No model calls and no embeddings involved.
type LexicalStrategy struct{}

var _ Strategy = (*LexicalStrategy)(nil)

// NewLexicalStrategy creates a lexical token-match strategy.
func NewLexicalStrategy() *LexicalStrategy {
	return &LexicalStrategy{}
}

// Select returns notes sharing a token with the query, in snapshot order.
func (s *LexicalStrategy) Select(ctx context.Context, query string, snapshot *Snapshot, monitor SearchMonitor) ([]*core.SearchResult, error) {
	var results []*core.SearchResult
	for _, note := range snapshot.Notes {
		if text.ContainsAnyWord(note.Contents, query) {
			results = append(results, &core.SearchResult{Note: note, Score: 1.0})
		}
	}
	monitor.AfterRanking(results)
	return results, nil
}

// EmbeddingStrategy ranks the snapshot by cosine similarity between the
// query embedding and each stored note vector.
type EmbeddingStrategy struct {
	embedder Embedder
	limit    int
}

var _ Strategy = (*EmbeddingStrategy)(nil)

// NewEmbeddingStrategy creates a pure similarity-ranking strategy.
func NewEmbeddingStrategy(embedder Embedder, limit int) (*EmbeddingStrategy, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &EmbeddingStrategy{embedder: embedder, limit: limit}, nil
}

// Select ranks every embedded note against the query vector.
// An unembeddable query (no known tokens) yields an empty vector, which
// scores every note 0 rather than erroring.
func (s *EmbeddingStrategy) Select(ctx context.Context, query string, snapshot *Snapshot, monitor SearchMonitor) ([]*core.SearchResult, error) {
	vector := s.embedder.Embed(query)
	monitor.AfterEmbedding(vector)

	ranked := Rank(vector, snapshot.Notes, s.limit)
	monitor.AfterRanking(ranked)
	return ranked, nil
}

// ModelRoutedStrategy combines similarity ranking with model-based
// category routing and keyword filtering. The two branches run
// concurrently over the same snapshot; the similarity-ranked pool is
// authoritative, with routed-only matches appended after it.
type ModelRoutedStrategy struct {
	embedder Embedder
	router   ai.Router
	limit    int
	logger   *slog.Logger
}

var _ Strategy = (*ModelRoutedStrategy)(nil)

// NewModelRoutedStrategy creates the hybrid routing strategy.
func NewModelRoutedStrategy(embedder Embedder, router ai.Router, limit int, logger *slog.Logger) (*ModelRoutedStrategy, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if router == nil {
		return nil, ErrRouterRequired
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelRoutedStrategy{
		embedder: embedder,
		router:   router,
		limit:    limit,
		logger:   logger,
	}, nil
}

// Select runs the similarity and routing branches concurrently.
// A routing failure degrades to an empty routed pool; it never fails
// the query.
func (s *ModelRoutedStrategy) Select(ctx context.Context, query string, snapshot *Snapshot, monitor SearchMonitor) ([]*core.SearchResult, error) {
	var (
		wg     sync.WaitGroup
		ranked []*core.SearchResult
		routed []*core.Note
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		vector := s.embedder.Embed(query)
		monitor.AfterEmbedding(vector)
		ranked = Rank(vector, snapshot.Notes, s.limit)
		monitor.AfterRanking(ranked)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		routed = s.routeAndFilter(ctx, query, snapshot, monitor)
	}()

	wg.Wait()

	return mergeCandidates(ranked, routed), nil
}

// routeAndFilter asks the model for a category and keywords, then
// narrows the snapshot to keyword-bearing notes in that category.
func (s *ModelRoutedStrategy) routeAndFilter(ctx context.Context, query string, snapshot *Snapshot, monitor SearchMonitor) []*core.Note {
	// Routing needs a category list to pick from
	if len(snapshot.Categories) == 0 {
		return nil
	}

	names := make([]string, 0, len(snapshot.Categories))
	for _, category := range snapshot.Categories {
		names = append(names, category.Name)
	}

	routing, err := s.router.RouteQuery(ctx, query, names)
	if err != nil {
		s.logger.Warn("query routing failed, continuing on similarity alone", "err", err)
		return nil
	}
	monitor.AfterRouting(routing)
	if routing.Empty() {
		return nil
	}

	pool := snapshot.Notes
	if routing.Category != "" {
		for _, category := range snapshot.Categories {
			if category.Key() == core.CategoryKey(routing.Category) {
				pool = FilterByCategory(pool, category.Id)
				break
			}
		}
	}

	filtered := FilterByKeywords(pool, routing.Keywords)
	monitor.AfterFiltering(filtered)
	return filtered
}

// mergeCandidates appends routed-only notes after the authoritative
// similarity ranking.
func mergeCandidates(ranked []*core.SearchResult, routed []*core.Note) []*core.SearchResult {
	seen := make(map[core.ID]bool, len(ranked))
	merged := make([]*core.SearchResult, 0, len(ranked)+len(routed))
	for _, result := range ranked {
		seen[result.Note.Id] = true
		merged = append(merged, result)
	}
	for _, note := range routed {
		if seen[note.Id] {
			continue
		}
		merged = append(merged, &core.SearchResult{Note: note, Score: 0})
	}
	return merged
}
