package storage

import (
	"context"
	"time"

	"github.com/poiesic/recall/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// NoteRepository provides operations for managing notes.
type NoteRepository interface {
	Repository
	// AddNotes adds one or more notes to storage.
	// Generates new IDs from sequence and sets the InsertedAt timestamp.
	// Returns the notes with generated IDs and timestamps populated.
	AddNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error)

	// UpdateNotes updates existing notes.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any note doesn't exist.
	UpdateNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error)

	// UpdateNoteVector replaces the stored embedding of a note without
	// touching its contents or UpdatedAt timestamp.
	// Returns ErrNotFound if the note doesn't exist.
	UpdateNoteVector(ctx context.Context, id core.ID, vector []float32) (*core.Note, error)

	// DeleteNotes removes notes by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any note doesn't exist.
	DeleteNotes(ctx context.Context, ids ...core.ID) error

	// GetNote retrieves a single note by ID.
	// Returns ErrNotFound if the note doesn't exist.
	GetNote(ctx context.Context, id core.ID) (*core.Note, error)

	// GetNotes retrieves multiple notes by their IDs.
	// Returns only the notes that exist (no error for missing notes).
	GetNotes(ctx context.Context, ids ...core.ID) ([]*core.Note, error)

	// GetAllNotes retrieves every stored note.
	GetAllNotes(ctx context.Context) ([]*core.Note, error)

	// GetNotesByCategory retrieves notes assigned to a category.
	GetNotesByCategory(ctx context.Context, categoryID core.ID) ([]*core.Note, error)

	// GetNotesByDateRange retrieves notes within a time range.
	// Returns notes where start <= CreatedAt < end, ordered by creation time.
	GetNotesByDateRange(ctx context.Context, start, end time.Time) ([]*core.Note, error)

	// GetRecentNotes retrieves the N most recently created notes.
	// Returns up to limit notes, with the most recent first.
	GetRecentNotes(ctx context.Context, limit int) ([]*core.Note, error)
}

// CategoryRepository provides operations for managing categories.
type CategoryRepository interface {
	Repository
	// AddCategories adds one or more categories to storage.
	// Uses content-based IDs (IDFromCategoryName of the category name).
	// Sets InsertedAt timestamp if not already set.
	// Returns ErrDuplicateKey if a category with the same name already exists.
	AddCategories(ctx context.Context, categories ...*core.Category) ([]*core.Category, error)

	// UpdateCategories updates existing categories.
	// Updates the UpdatedAt timestamp automatically and maintains the
	// name index across renames. The category ID never changes.
	// Returns ErrNotFound if any category doesn't exist.
	UpdateCategories(ctx context.Context, categories ...*core.Category) ([]*core.Category, error)

	// DeleteCategories removes categories by their IDs.
	// Returns ErrNotFound if any category doesn't exist.
	DeleteCategories(ctx context.Context, ids ...core.ID) error

	// GetCategory retrieves a single category by ID.
	// Returns ErrNotFound if the category doesn't exist.
	GetCategory(ctx context.Context, id core.ID) (*core.Category, error)

	// GetAllCategories retrieves every stored category.
	GetAllCategories(ctx context.Context) ([]*core.Category, error)

	// GetActiveCategories retrieves the categories currently enabled for routing.
	GetActiveCategories(ctx context.Context) ([]*core.Category, error)

	// FindCategoryByName finds a category by name.
	// Matching ignores case and surrounding whitespace.
	// Returns ErrNotFound if no matching category exists.
	FindCategoryByName(ctx context.Context, name string) (*core.Category, error)

	// GetOrCreateCategory finds or creates an active category by name.
	// Thread-safe: handles concurrent creation attempts.
	GetOrCreateCategory(ctx context.Context, name string) (*core.Category, error)
}
