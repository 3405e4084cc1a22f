package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/ai/mock"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/embedding"
	"github.com/poiesic/recall/storage"
	"github.com/poiesic/recall/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEmbedder resolves a tiny fixed vocabulary.
func testEmbedder(t *testing.T) *embedding.Provider {
	t.Helper()
	vocab, err := embedding.NewStaticVocabulary(map[string][]float32{
		"dogs":   {1, 0},
		"cats":   {0, 1},
		"pets":   {0.5, 0.5},
		"animal": {0.9, 0.1},
	})
	require.NoError(t, err)
	provider, err := embedding.NewProvider(vocab)
	require.NoError(t, err)
	return provider
}

// testFixture seeds repositories with notes and categories and returns
// a searcher built from the given strategy options.
type testFixture struct {
	noteRepo     storage.NoteRepository
	categoryRepo storage.CategoryRepository
	backend      *badger.Backend
	embedder     *embedding.Provider
	router       *mock.MockRouter
	synthesizer  *mock.MockSynthesizer
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	noteRepo, categoryRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		categoryRepo.Close()
		noteRepo.Close()
		backend.Close()
	})

	return &testFixture{
		noteRepo:     noteRepo,
		categoryRepo: categoryRepo,
		backend:      backend,
		embedder:     testEmbedder(t),
		router:       mock.NewMockRouter(),
		synthesizer:  mock.NewMockSynthesizer(),
	}
}

func (f *testFixture) seedPets(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	pets, err := f.categoryRepo.GetOrCreateCategory(ctx, "Pets")
	require.NoError(t, err)

	now := time.Now().UTC()
	notes := []*core.Note{
		{Contents: "Dogs are great pets", CategoryId: pets.Id, CreatedAt: now},
		{Contents: "Cats are mid", CategoryId: pets.Id, CreatedAt: now},
	}
	for _, note := range notes {
		note.Vector = f.embedder.Embed(note.Contents)
	}
	_, err = f.noteRepo.AddNotes(ctx, notes...)
	require.NoError(t, err)
}

func (f *testFixture) newSearcher(t *testing.T) *Searcher {
	t.Helper()
	strategy, err := NewModelRoutedStrategy(f.embedder, f.router, DefaultLimit, nil)
	require.NoError(t, err)
	searcher, err := NewSearcher(f.noteRepo, f.categoryRepo, strategy, WithSynthesizer(f.synthesizer))
	require.NoError(t, err)
	return searcher
}

func TestNewSearcher(t *testing.T) {
	f := newTestFixture(t)
	strategy, err := NewEmbeddingStrategy(f.embedder, DefaultLimit)
	require.NoError(t, err)

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(f.noteRepo, f.categoryRepo, strategy)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil note repository", func(t *testing.T) {
		_, err := NewSearcher(nil, f.categoryRepo, strategy)
		assert.Equal(t, ErrNoteRepositoryRequired, err)
	})

	t.Run("nil category repository", func(t *testing.T) {
		_, err := NewSearcher(f.noteRepo, nil, strategy)
		assert.Equal(t, ErrCategoryRepositoryRequired, err)
	})

	t.Run("nil strategy", func(t *testing.T) {
		_, err := NewSearcher(f.noteRepo, f.categoryRepo, nil)
		assert.Equal(t, ErrStrategyRequired, err)
	})
}

func TestSearchEmptyQuery(t *testing.T) {
	f := newTestFixture(t)
	f.seedPets(t)
	searcher := f.newSearcher(t)

	for _, query := range []string{"", "   ", "\t\n"} {
		result, err := searcher.Search(context.Background(), query)
		require.NoError(t, err)
		assert.Empty(t, result.Ranked)
		assert.Empty(t, result.Answer)
	}
	assert.Equal(t, 0, f.router.CallCount())
	assert.Equal(t, 0, f.synthesizer.CallCount())
}

func TestSearchPipelineWiring(t *testing.T) {
	f := newTestFixture(t)
	f.seedPets(t)

	// Stub the router so the filter input is deterministic
	var routedKeywords []string
	f.router.RouteQueryFunc = func(ctx context.Context, query string, categories []string) (ai.Routing, error) {
		require.Equal(t, []string{"Pets"}, categories)
		routedKeywords = []string{"dogs"}
		return ai.Routing{Category: "Pets", Keywords: routedKeywords}, nil
	}

	var synthesized []string
	f.synthesizer.SynthesizeFunc = func(ctx context.Context, query string, contents []string) (string, error) {
		synthesized = contents
		return "Dogs seem to be the favourite.", nil
	}

	searcher := f.newSearcher(t)

	result, err := searcher.Search(context.Background(), "which animal is best")
	require.NoError(t, err)

	// Similarity pool is authoritative and feeds synthesis
	require.NotEmpty(t, result.Ranked)
	assert.Equal(t, "Dogs are great pets", result.Ranked[0].Note.Contents)
	assert.Equal(t, "Dogs seem to be the favourite.", result.Answer)
	require.NotEmpty(t, synthesized)
	assert.Equal(t, "Dogs are great pets", synthesized[0])
	assert.Equal(t, 1, f.router.CallCount())
}

func TestSearchSimilarityOrdering(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	now := time.Now().UTC()
	notes := []*core.Note{
		{Contents: "note one", Vector: []float32{1, 0}, CreatedAt: now},
		{Contents: "note two", Vector: []float32{0, 1}, CreatedAt: now},
		{Contents: "note three", Vector: []float32{0.7, 0.7}, CreatedAt: now},
	}
	_, err := f.noteRepo.AddNotes(ctx, notes...)
	require.NoError(t, err)

	// Query "dogs" embeds to [1,0]
	strategy, err := NewEmbeddingStrategy(f.embedder, DefaultLimit)
	require.NoError(t, err)
	searcher, err := NewSearcher(f.noteRepo, f.categoryRepo, strategy)
	require.NoError(t, err)

	result, err := searcher.Search(ctx, "dogs")
	require.NoError(t, err)
	require.Len(t, result.Ranked, 3)
	assert.Equal(t, "note one", result.Ranked[0].Note.Contents)
	assert.Equal(t, "note three", result.Ranked[1].Note.Contents)
	assert.Equal(t, "note two", result.Ranked[2].Note.Contents)
}

func TestSearchRoutingFailureDegrades(t *testing.T) {
	f := newTestFixture(t)
	f.seedPets(t)

	f.router.RouteQueryFunc = func(ctx context.Context, query string, categories []string) (ai.Routing, error) {
		return ai.Routing{}, errors.New("model unavailable")
	}

	searcher := f.newSearcher(t)

	result, err := searcher.Search(context.Background(), "dogs")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Ranked, "ranking must survive a routing failure")
}

func TestSearchSynthesisFailureDegrades(t *testing.T) {
	f := newTestFixture(t)
	f.seedPets(t)

	f.synthesizer.SynthesizeFunc = func(ctx context.Context, query string, contents []string) (string, error) {
		return "", errors.New("model unavailable")
	}

	searcher := f.newSearcher(t)

	result, err := searcher.Search(context.Background(), "dogs")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Ranked)
	assert.Empty(t, result.Answer)
}

func TestSearchSkipsRoutingWithoutActiveCategories(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	_, err := f.noteRepo.AddNotes(ctx, &core.Note{
		Contents:  "Dogs are great pets",
		Vector:    f.embedder.Embed("Dogs are great pets"),
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	searcher := f.newSearcher(t)

	result, err := searcher.Search(ctx, "dogs")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Ranked)
	assert.Equal(t, 0, f.router.CallCount(), "no active categories means no routing call")
}

func TestSearchRoutedOnlyNotesAppended(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	pets, err := f.categoryRepo.GetOrCreateCategory(ctx, "Pets")
	require.NoError(t, err)

	// One embedded note and one note with no vector at all
	_, err = f.noteRepo.AddNotes(ctx,
		&core.Note{Contents: "Dogs are great pets", CategoryId: pets.Id, Vector: f.embedder.Embed("dogs"), CreatedAt: time.Now().UTC()},
		&core.Note{Contents: "Remember dog chow", CategoryId: pets.Id, CreatedAt: time.Now().UTC()},
	)
	require.NoError(t, err)

	f.router.RouteQueryFunc = func(ctx context.Context, query string, categories []string) (ai.Routing, error) {
		return ai.Routing{Category: "pets", Keywords: []string{"dog"}}, nil
	}

	searcher := f.newSearcher(t)

	result, err := searcher.Search(ctx, "dogs")
	require.NoError(t, err)
	require.Len(t, result.Ranked, 2)
	assert.Equal(t, "Dogs are great pets", result.Ranked[0].Note.Contents)
	assert.Equal(t, "Remember dog chow", result.Ranked[1].Note.Contents)
}

func TestLexicalStrategy(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	_, err := f.noteRepo.AddNotes(ctx,
		&core.Note{Contents: "Dogs are great pets", CreatedAt: time.Now().UTC()},
		&core.Note{Contents: "The garden needs watering", CreatedAt: time.Now().UTC()},
	)
	require.NoError(t, err)

	searcher, err := NewSearcher(f.noteRepo, f.categoryRepo, NewLexicalStrategy())
	require.NoError(t, err)

	result, err := searcher.Search(ctx, "great dogs")
	require.NoError(t, err)
	require.Len(t, result.Ranked, 1)
	assert.Equal(t, "Dogs are great pets", result.Ranked[0].Note.Contents)
	assert.Empty(t, result.Answer, "lexical mode has no synthesizer")
}
