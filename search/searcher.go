package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

const (
	// DefaultLimit is the default size of the similarity-ranked pool.
	DefaultLimit = 5

	// maxSynthesisNotes caps how many top-ranked notes feed the
	// synthesized answer.
	maxSynthesisNotes = 5
)

// Searcher runs the end-to-end query pipeline: snapshot the stored
// notes, select candidates via the configured strategy, and synthesize
// a one-sentence answer from the top of the pool.
type Searcher struct {
	noteRepository     storage.NoteRepository
	categoryRepository storage.CategoryRepository
	strategy           Strategy
	synthesizer        ai.Synthesizer
	logger             *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithStrategy replaces the candidate-selection strategy.
func WithStrategy(strategy Strategy) Option {
	return func(s *Searcher) error {
		if strategy == nil {
			return ErrStrategyRequired
		}
		s.strategy = strategy
		return nil
	}
}

// WithSynthesizer sets the answer synthesizer. A nil synthesizer
// disables answer generation; ranked results are still returned.
func WithSynthesizer(synthesizer ai.Synthesizer) Option {
	return func(s *Searcher) error {
		s.synthesizer = synthesizer
		return nil
	}
}

// NewSearcher creates a new searcher with the given strategy.
func NewSearcher(
	noteRepository storage.NoteRepository,
	categoryRepository storage.CategoryRepository,
	strategy Strategy,
	opts ...Option,
) (*Searcher, error) {
	if noteRepository == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if categoryRepository == nil {
		return nil, ErrCategoryRepositoryRequired
	}
	if strategy == nil {
		return nil, ErrStrategyRequired
	}

	s := &Searcher{
		noteRepository:     noteRepository,
		categoryRepository: categoryRepository,
		strategy:           strategy,
		logger:             slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search runs the full pipeline for a query.
// An empty or whitespace-only query resets to an empty result without
// touching storage. External-collaborator failures degrade to a partial
// result; only storage errors cross this boundary.
func (s *Searcher) Search(ctx context.Context, query string) (*core.QueryResult, error) {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor runs the full pipeline with monitoring.
// The monitor receives callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, monitor SearchMonitor) (*core.QueryResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return &core.QueryResult{}, nil
	}

	monitor.Start(query)

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		s.logger.Error("error reading note snapshot", "err", err)
		return nil, err
	}

	ranked, err := s.strategy.Select(ctx, query, snapshot, monitor)
	if err != nil {
		s.logger.Error("error selecting candidates", "query", query, "err", err)
		return nil, err
	}

	result := &core.QueryResult{
		Ranked: ranked,
		Answer: s.synthesize(ctx, query, ranked, monitor),
	}
	monitor.Finish(result)

	return result, nil
}

// snapshot reads the notes and active categories a single query runs
// against.
func (s *Searcher) snapshot(ctx context.Context) (*Snapshot, error) {
	notes, err := s.noteRepository.GetAllNotes(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepository.GetActiveCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Notes: notes, Categories: categories}, nil
}

// synthesize composes a one-sentence answer from the top-ranked notes.
// Any failure degrades to an empty answer; ranked results are never
// withheld because the model was unavailable.
func (s *Searcher) synthesize(ctx context.Context, query string, ranked []*core.SearchResult, monitor SearchMonitor) string {
	if s.synthesizer == nil || len(ranked) == 0 {
		return ""
	}

	top := ranked
	if len(top) > maxSynthesisNotes {
		top = top[:maxSynthesisNotes]
	}
	contents := make([]string, 0, len(top))
	for _, result := range top {
		contents = append(contents, result.Note.Contents)
	}

	answer, err := s.synthesizer.Synthesize(ctx, query, contents)
	if err != nil {
		s.logger.Warn("answer synthesis failed, returning ranked results only", "err", err)
		return ""
	}
	monitor.AfterSynthesis(answer)
	return answer
}
