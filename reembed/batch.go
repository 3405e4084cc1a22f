package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// Embedder computes vector representations for note contents.
type Embedder interface {
	EmbedTexts(contents []string) [][]float32
}

// BatchProcessor recomputes embeddings for batches of notes.
type BatchProcessor struct {
	repo           storage.NoteRepository
	embedder       Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts for the vector write
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.NoteRepository, embedder Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process recomputes embeddings for a batch of notes and writes them
// back. Vectors are stored unnormalized; cosine similarity at query
// time is scale-invariant.
func (bp *BatchProcessor) Process(ctx context.Context, notes []*core.Note) error {
	if len(notes) == 0 {
		return nil
	}

	texts := make([]string, len(notes))
	for i, note := range notes {
		texts[i] = note.Contents
	}

	embeddings := bp.embedder.EmbedTexts(texts)
	if len(embeddings) != len(notes) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(notes), len(embeddings))
	}

	for i, note := range notes {
		vector := embeddings[i]
		// Retry absorbs transient write conflicts with live indexing
		err := RetryWithBackoff(ctx, func() error {
			_, err := bp.repo.UpdateNoteVector(ctx, note.Id, vector)
			return err
		}, bp.maxRetries, bp.retryBaseDelay)
		if err != nil {
			return fmt.Errorf("failed to update note %d after %d attempts: %w", note.Id, bp.maxRetries, err)
		}
	}

	return nil
}
