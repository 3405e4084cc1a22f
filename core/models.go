package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Note represents one user-authored thought.
// It may be enriched with an embedding and an emotion tag during indexing.
type Note struct {
	Id         ID
	Contents   string
	CategoryId ID        // Reference to the owning Category (lookup only)
	Emotion    Emotion   // Inferred emotion tag (populated by processors)
	CreatedAt  time.Time // When the note was originally authored
	InsertedAt time.Time // When the note was inserted into the database
	UpdatedAt  time.Time // When the note was last updated
	Vector     []float32 // Cached embedding vector; empty until indexed, recomputed on edit
}

// Category is a user-defined label grouping notes.
// Inactive categories are excluded from query routing.
type Category struct {
	Id         ID
	Name       string
	Active     bool
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// Key returns the canonical matching key for the category name:
// whitespace-trimmed and lower-cased. Routing and lookup compare on this key.
func (c *Category) Key() string {
	return CategoryKey(c.Name)
}

// CategoryKey normalizes a category name for matching and ID generation.
func CategoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IDFromCategoryName generates the deterministic ID for a category name.
// Names that differ only in case or surrounding whitespace share an ID.
func IDFromCategoryName(name string) ID {
	return IDFromContent("category:" + CategoryKey(name))
}

// SearchResult pairs a note with its relevance score.
type SearchResult struct {
	Note  *Note
	Score float32
}

// QueryResult is the transient output of one search pipeline run.
// Answer is empty when synthesis failed or no candidates existed.
type QueryResult struct {
	Ranked []*SearchResult
	Answer string
}

// Notes returns the ranked notes without their scores.
func (q *QueryResult) Notes() []*Note {
	notes := make([]*Note, len(q.Ranked))
	for i, r := range q.Ranked {
		notes[i] = r.Note
	}
	return notes
}
