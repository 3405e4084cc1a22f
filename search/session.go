package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/recall/core"
)

// DefaultDebounce is the delay between the last query edit and
// pipeline execution.
const DefaultDebounce = 500 * time.Millisecond

// ResultFunc receives the result of a completed query. Only results
// for the most recently issued query are delivered.
type ResultFunc func(query string, result *core.QueryResult)

// ErrorFunc receives errors from failed query runs.
type ErrorFunc func(query string, err error)

// QuerySession drives interactive search over a stream of query edits.
// Each edit restarts a debounce timer; only after the timer fires does
// a pipeline run start. A new edit supersedes any in-flight run: the
// superseded run is cancelled and its result, if it still completes,
// is discarded rather than delivered.
type QuerySession struct {
	searcher *Searcher
	onResult ResultFunc
	onError  ErrorFunc
	debounce time.Duration
	logger   *slog.Logger

	mu         sync.Mutex
	generation uint64
	timer      *time.Timer
	cancel     context.CancelFunc
	closed     bool
}

// SessionOption configures a QuerySession.
type SessionOption func(*QuerySession) error

// WithDebounce overrides the debounce delay.
// Default is DefaultDebounce.
func WithDebounce(d time.Duration) SessionOption {
	return func(s *QuerySession) error {
		if d > 0 {
			s.debounce = d
		}
		return nil
	}
}

// WithSessionLogger sets a custom logger.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *QuerySession) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithErrorFunc sets the error callback. Default logs and drops.
func WithErrorFunc(fn ErrorFunc) SessionOption {
	return func(s *QuerySession) error {
		s.onError = fn
		return nil
	}
}

// NewQuerySession creates a session delivering results to onResult.
func NewQuerySession(searcher *Searcher, onResult ResultFunc, opts ...SessionOption) (*QuerySession, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if onResult == nil {
		onResult = func(string, *core.QueryResult) {}
	}

	s := &QuerySession{
		searcher: searcher,
		onResult: onResult,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Update submits the current query text, typically once per keystroke.
// The pipeline runs once the text has been stable for the debounce
// interval. An empty query cancels pending and in-flight work and
// delivers an empty result immediately.
func (s *QuerySession) Update(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	gen := s.supersedeLocked()

	if isBlank(query) {
		s.onResult("", &core.QueryResult{})
		return
	}

	s.timer = time.AfterFunc(s.debounce, func() {
		s.run(gen, query)
	})
}

// Flush runs any pending query immediately instead of waiting out the
// debounce interval.
func (s *QuerySession) Flush(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	gen := s.supersedeLocked()
	s.mu.Unlock()

	if isBlank(query) {
		s.onResult("", &core.QueryResult{})
		return
	}
	s.run(gen, query)
}

// Close cancels pending and in-flight work. The session delivers no
// further results.
func (s *QuerySession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.supersedeLocked()
}

// supersedeLocked invalidates the previous query: stops the debounce
// timer, cancels the in-flight context, and advances the generation.
// Callers must hold s.mu.
func (s *QuerySession) supersedeLocked() uint64 {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	return s.generation
}

// run executes one pipeline pass and commits the result only if it is
// still the latest issued query.
func (s *QuerySession) run(gen uint64, query string) {
	s.mu.Lock()
	if s.closed || gen != s.generation {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	result, err := s.searcher.Search(ctx, query)

	s.mu.Lock()
	stale := s.closed || gen != s.generation
	s.mu.Unlock()
	if stale {
		s.logger.Debug("discarding stale query result", "query", query)
		return
	}

	if err != nil {
		if s.onError != nil {
			s.onError(query, err)
			return
		}
		s.logger.Error("query failed", "query", query, "err", err)
		return
	}

	s.onResult(query, result)
}

func isBlank(query string) bool {
	for _, r := range query {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
