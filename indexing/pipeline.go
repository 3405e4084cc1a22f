package indexing

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// Pipeline orchestrates storing notes and enriching them.
// Embedding computation and emotion tagging run asynchronously on
// worker pools; callers never block on a model call.
type Pipeline struct {
	noteRepository storage.NoteRepository
	embeddingPool  *ants.Pool
	emotionPool    *ants.Pool
	embeddingProc  processor
	emotionProc    processor
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pools
		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}
		if p.emotionPool != nil {
			p.emotionPool.Release()
		}

		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		emotionPool, err := ants.NewPool(size)
		if err != nil {
			embeddingPool.Release()
			return err
		}

		p.embeddingPool = embeddingPool
		p.emotionPool = emotionPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new indexing pipeline.
func NewPipeline(
	noteRepository storage.NoteRepository,
	embedder Embedder,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if noteRepository == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	logger := slog.Default()

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	emotionPool, err := ants.NewPool(poolSize)
	if err != nil {
		embeddingPool.Release()
		return nil, err
	}

	p := &Pipeline{
		noteRepository: noteRepository,
		embeddingPool:  embeddingPool,
		emotionPool:    emotionPool,
		logger:         logger,
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create processors after options are applied (so they get final config)
	embeddingProc, err := newEmbeddingProcessor(noteRepository, embedder, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}

	emotionProc, err := newEmotionProcessor(noteRepository, provider.EmotionClassifier(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}

	p.embeddingProc = embeddingProc
	p.emotionProc = emotionProc

	return p, nil
}

// Index stores the given notes and enriches them asynchronously.
// Enrichment errors are logged but do not fail the indexing operation.
func (p *Pipeline) Index(ctx context.Context, notes ...*core.Note) ([]*core.Note, error) {
	for _, note := range notes {
		if note.CreatedAt.IsZero() {
			note.CreatedAt = time.Now().UTC()
		}
	}

	added, err := p.noteRepository.AddNotes(ctx, notes...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	ids := make([]core.ID, len(added))
	for i, note := range added {
		ids[i] = note.Id
	}

	p.enqueue(ids)
	return added, nil
}

// Reindex recomputes embeddings and emotion tags for already stored
// notes, typically after an edit. The previous embedding stays valid
// for ranking until the recomputed one lands.
func (p *Pipeline) Reindex(ctx context.Context, ids ...core.ID) error {
	if len(ids) == 0 {
		return nil
	}

	// Fail fast on unknown IDs before queueing async work
	notes, err := p.noteRepository.GetNotes(ctx, ids...)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		return storage.ErrNotFound
	}

	found := make([]core.ID, len(notes))
	for i, note := range notes {
		found[i] = note.Id
	}

	p.enqueue(found)
	return nil
}

// enqueue submits enrichment work for the given note IDs.
// Emotion tagging waits for the embeddings of the same batch so the
// two writers never race on one note.
func (p *Pipeline) enqueue(ids []core.ID) {
	p.embeddingPool.Submit(func() {
		if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
		}

		p.emotionPool.Submit(func() {
			if err := p.emotionProc.process(context.Background(), ids...); err != nil {
				p.logger.Error("error processing emotions", "err", err)
			}
		})
	})
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
	if p.emotionPool != nil {
		p.emotionPool.Release()
	}
}
