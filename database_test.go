package recall

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/recall/ai/mock"
	"github.com/poiesic/recall/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVocabulary(t *testing.T) embedding.Vocabulary {
	t.Helper()
	vocab, err := embedding.NewStaticVocabulary(map[string][]float32{
		"dogs": {1, 0},
		"cats": {0, 1},
	})
	require.NoError(t, err)
	return vocab
}

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	tmpDir := filepath.Join(t.TempDir(), "test_db")
	db, err := NewDatabase(tmpDir, "",
		WithVocabulary(testVocabulary(t)),
		WithAIProvider(mock.NewMockProvider()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		db := newTestDatabase(t)

		assert.NotNil(t, db.NoteRepository())
		assert.NotNil(t, db.CategoryRepository())
		assert.NotNil(t, db.Embedder())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile, "",
			WithVocabulary(testVocabulary(t)),
			WithAIProvider(mock.NewMockProvider()),
		)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("error with missing vocabulary file", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir, filepath.Join(t.TempDir(), "missing.vec"),
			WithAIProvider(mock.NewMockProvider()),
		)
		assert.ErrorIs(t, err, embedding.ErrVocabularyUnavailable)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "test_db")
	db, err := NewDatabase(tmpDir, "",
		WithVocabulary(testVocabulary(t)),
		WithAIProvider(mock.NewMockProvider()),
	)
	require.NoError(t, err)

	assert.NoError(t, db.Close())
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db := newTestDatabase(t)

	t.Run("can create indexing pipeline", func(t *testing.T) {
		pipeline, err := db.NewIndexingPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create searcher", func(t *testing.T) {
		searcher, err := db.NewSearcher()
		require.NoError(t, err)
		require.NotNil(t, searcher)
	})

	t.Run("can create query session", func(t *testing.T) {
		session, err := db.NewQuerySession(nil)
		require.NoError(t, err)
		require.NotNil(t, session)
		session.Close()
	})

	t.Run("can create reembedder", func(t *testing.T) {
		reembedder := db.NewReembedder(nil, os.Stderr)
		require.NotNil(t, reembedder)
	})
}
