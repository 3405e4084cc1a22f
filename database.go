// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recall

import (
	"io"
	"log/slog"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/ai/openai"
	"github.com/poiesic/recall/embedding"
	"github.com/poiesic/recall/indexing"
	"github.com/poiesic/recall/reembed"
	"github.com/poiesic/recall/search"
	"github.com/poiesic/recall/storage"
	"github.com/poiesic/recall/storage/badger"
)

// Database bundles the storage backend, repositories, the word-vector
// embedder, and the model provider behind one handle.
type Database struct {
	backend      *badger.Backend
	noteRepo     storage.NoteRepository
	categoryRepo storage.CategoryRepository
	embedder     *embedding.Provider
	provider     ai.AIProvider
	logger       *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig   *ai.Config
	vocabulary embedding.Vocabulary
	provider   ai.AIProvider
}

// WithAIConfig overrides the model endpoint configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithVocabulary injects an already loaded word-vector vocabulary,
// bypassing the vocabulary file load.
func WithVocabulary(vocabulary embedding.Vocabulary) DatabaseOption {
	return func(o *databaseOptions) {
		o.vocabulary = vocabulary
	}
}

// WithAIProvider injects a custom model provider, replacing the
// default OpenAI-compatible one. Intended for tests.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// NewDatabase opens the note database at filePath and loads the
// word-vector vocabulary from vocabularyPath. The vocabulary is fatal
// at startup when missing; without it embeddings are unusable.
func NewDatabase(filePath, vocabularyPath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	vocabulary := options.vocabulary
	if vocabulary == nil {
		table, err := embedding.LoadTable(vocabularyPath)
		if err != nil {
			return nil, err
		}
		vocabulary = table
	}

	embedder, err := embedding.NewProvider(vocabulary)
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	noteRepo, err := badger.NewNoteRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	categoryRepo, err := badger.NewCategoryRepository(backend)
	if err != nil {
		noteRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			categoryRepo.Close()
			noteRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:      backend,
		noteRepo:     noteRepo,
		categoryRepo: categoryRepo,
		embedder:     embedder,
		provider:     provider,
		logger:       slog.Default(),
	}, nil
}

// Close releases the provider, repositories, and backend.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.categoryRepo.Close(); err != nil {
		db.logger.Error("error closing category repository", "err", err)
		return err
	}
	if err := db.noteRepo.Close(); err != nil {
		db.logger.Error("error closing note repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// NoteRepository returns the note repository.
func (db *Database) NoteRepository() storage.NoteRepository {
	return db.noteRepo
}

// CategoryRepository returns the category repository.
func (db *Database) CategoryRepository() storage.CategoryRepository {
	return db.categoryRepo
}

// Embedder returns the word-vector embedding provider.
func (db *Database) Embedder() *embedding.Provider {
	return db.embedder
}

// NewIndexingPipeline creates a pipeline for adding and enriching notes.
func (db *Database) NewIndexingPipeline(opts ...indexing.Option) (*indexing.Pipeline, error) {
	return indexing.NewPipeline(db.noteRepo, db.embedder, db.provider, opts...)
}

// NewSearcher creates a searcher using the hybrid model-routed
// strategy and the provider's synthesizer.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	strategy, err := search.NewModelRoutedStrategy(db.embedder, db.provider.Router(), search.DefaultLimit, db.logger)
	if err != nil {
		return nil, err
	}

	merged := append([]search.Option{search.WithSynthesizer(db.provider.Synthesizer())}, opts...)
	return search.NewSearcher(db.noteRepo, db.categoryRepo, strategy, merged...)
}

// NewQuerySession creates an interactive query session over a searcher
// built from this database.
func (db *Database) NewQuerySession(onResult search.ResultFunc, opts ...search.SessionOption) (*search.QuerySession, error) {
	searcher, err := db.NewSearcher()
	if err != nil {
		return nil, err
	}
	return search.NewQuerySession(searcher, onResult, opts...)
}

// NewReembedder creates a bulk reembedder writing progress to progress.
func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(db.noteRepo, db.embedder, config, progress)
}
