package indexing

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// Embedder computes vector representations for note contents locally.
type Embedder interface {
	Embed(content string) []float32
	EmbedTexts(contents []string) [][]float32
}

// embeddingProcessor recomputes note embeddings.
// The stale vector stays visible to ranking until the new one lands;
// there is never a torn or partial vector state.
type embeddingProcessor struct {
	noteRepository storage.NoteRepository
	embedder       Embedder
	logger         *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(noteRepository storage.NoteRepository, embedder Embedder, logger *slog.Logger) (processor, error) {
	if noteRepository == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		noteRepository: noteRepository,
		embedder:       embedder,
		logger:         logger.With("processor", "embeddings"),
	}, nil
}

// process recomputes embeddings for the specified notes.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing notes for embeddings", "notes", len(ids))

	slices.Sort(ids)

	notes, err := ep.noteRepository.GetNotes(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving notes", "err", err)
		return err
	}

	texts := make([]string, len(notes))
	for i, note := range notes {
		texts[i] = note.Contents
	}

	ep.logger.Debug("generating embeddings for notes", "notes", len(texts))
	embeddings := ep.embedder.EmbedTexts(texts)
	if len(embeddings) != len(notes) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(notes), len(embeddings))
	}

	for i, note := range notes {
		if _, err := ep.noteRepository.UpdateNoteVector(ctx, note.Id, embeddings[i]); err != nil {
			return err
		}
	}

	return nil
}
