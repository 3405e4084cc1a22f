package indexing

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// emotionProcessor tags notes with a model-inferred emotion.
type emotionProcessor struct {
	noteRepository storage.NoteRepository
	classifier     ai.EmotionClassifier
	logger         *slog.Logger
}

var _ processor = (*emotionProcessor)(nil)

// newEmotionProcessor creates a new emotion processor.
func newEmotionProcessor(noteRepository storage.NoteRepository, classifier ai.EmotionClassifier, logger *slog.Logger) (processor, error) {
	if noteRepository == nil {
		return nil, ErrNoteRepositoryRequired
	}
	if classifier == nil {
		return nil, errors.New("emotion classifier required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &emotionProcessor{
		noteRepository: noteRepository,
		classifier:     classifier,
		logger:         logger.With("processor", "emotions"),
	}, nil
}

// process classifies and tags emotions for the specified notes.
// A classification failure skips the note; the tag stays at its
// previous value.
func (ep *emotionProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing notes for emotions", "notes", len(ids))

	slices.Sort(ids)

	notes, err := ep.noteRepository.GetNotes(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving notes", "err", err)
		return err
	}

	var tagged []*core.Note
	for _, note := range notes {
		label, err := ep.classifier.ClassifyEmotion(ctx, note.Contents)
		if err != nil {
			ep.logger.Warn("emotion classification failed", "note", note.Id, "err", err)
			continue
		}
		emotion, err := core.ParseEmotion(label)
		if err != nil {
			ep.logger.Warn("unknown emotion label", "note", note.Id, "label", label)
			continue
		}
		if note.Emotion == emotion {
			continue
		}
		note.Emotion = emotion
		tagged = append(tagged, note)
	}

	if len(tagged) == 0 {
		return nil
	}

	_, err = ep.noteRepository.UpdateNotes(ctx, tagged...)
	return err
}
