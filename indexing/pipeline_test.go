package indexing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/recall/ai/mock"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/embedding"
	"github.com/poiesic/recall/storage"
	"github.com/poiesic/recall/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmbedder(t *testing.T) *embedding.Provider {
	t.Helper()
	vocab, err := embedding.NewStaticVocabulary(map[string][]float32{
		"dogs":  {1, 0},
		"cats":  {0, 1},
		"great": {0.5, 0.5},
	})
	require.NoError(t, err)
	provider, err := embedding.NewProvider(vocab)
	require.NoError(t, err)
	return provider
}

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, storage.NoteRepository) {
	t.Helper()

	noteRepo, categoryRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		categoryRepo.Close()
		noteRepo.Close()
		backend.Close()
	})

	pipeline, err := NewPipeline(noteRepo, testEmbedder(t), mock.NewMockProvider(), opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, noteRepo
}

// waitForNote polls until the predicate holds or the deadline passes.
func waitForNote(t *testing.T, repo storage.NoteRepository, id core.ID, pred func(*core.Note) bool) *core.Note {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		note, err := repo.GetNote(context.Background(), id)
		require.NoError(t, err)
		if pred(note) {
			return note
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for note enrichment")
	return nil
}

func TestNewPipeline(t *testing.T) {
	noteRepo, categoryRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() { categoryRepo.Close(); noteRepo.Close(); backend.Close() }()

	embedder := testEmbedder(t)
	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		pipeline, err := NewPipeline(noteRepo, embedder, provider)
		require.NoError(t, err)
		defer pipeline.Release()
		assert.NotNil(t, pipeline)
	})

	t.Run("nil note repository", func(t *testing.T) {
		_, err := NewPipeline(nil, embedder, provider)
		assert.Equal(t, ErrNoteRepositoryRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewPipeline(noteRepo, nil, provider)
		assert.Equal(t, ErrEmbedderRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewPipeline(noteRepo, embedder, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})

	t.Run("with pool size", func(t *testing.T) {
		pipeline, err := NewPipeline(noteRepo, embedder, provider, WithPoolSize(2))
		require.NoError(t, err)
		defer pipeline.Release()
		assert.NotNil(t, pipeline)
	})
}

func TestIndexComputesEmbeddings(t *testing.T) {
	pipeline, noteRepo := newTestPipeline(t)

	added, err := pipeline.Index(context.Background(), &core.Note{Contents: "dogs"})
	require.NoError(t, err)
	require.Len(t, added, 1)
	require.NotZero(t, added[0].Id)

	note := waitForNote(t, noteRepo, added[0].Id, func(n *core.Note) bool {
		return len(n.Vector) > 0
	})
	assert.Equal(t, []float32{1, 0}, note.Vector)
}

func TestIndexTagsEmotion(t *testing.T) {
	pipeline, noteRepo := newTestPipeline(t)

	// The mock classifier maps "great" to joy
	added, err := pipeline.Index(context.Background(), &core.Note{Contents: "dogs are great"})
	require.NoError(t, err)

	note := waitForNote(t, noteRepo, added[0].Id, func(n *core.Note) bool {
		return n.Emotion != 0
	})
	assert.Equal(t, core.EmotionJoy, note.Emotion)
}

func TestReindexAfterEdit(t *testing.T) {
	pipeline, noteRepo := newTestPipeline(t)
	ctx := context.Background()

	added, err := pipeline.Index(ctx, &core.Note{Contents: "dogs"})
	require.NoError(t, err)
	id := added[0].Id

	waitForNote(t, noteRepo, id, func(n *core.Note) bool {
		return len(n.Vector) > 0 && n.Vector[0] == 1
	})

	// Edit the contents; the old vector stays until reindex completes
	note, err := noteRepo.GetNote(ctx, id)
	require.NoError(t, err)
	note.Contents = "cats"
	_, err = noteRepo.UpdateNotes(ctx, note)
	require.NoError(t, err)

	require.NoError(t, pipeline.Reindex(ctx, id))

	reindexed := waitForNote(t, noteRepo, id, func(n *core.Note) bool {
		return len(n.Vector) > 0 && n.Vector[1] == 1
	})
	assert.Equal(t, []float32{0, 1}, reindexed.Vector)
}

func TestReindexUnknownID(t *testing.T) {
	pipeline, _ := newTestPipeline(t)

	err := pipeline.Reindex(context.Background(), core.ID(987654))
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestReindexNoIDs(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	assert.NoError(t, pipeline.Reindex(context.Background()))
}
