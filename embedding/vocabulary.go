package embedding

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Vocabulary resolves tokens to pretrained word vectors.
// Implementations must be safe for concurrent reads once constructed.
type Vocabulary interface {
	// Lookup returns the vector for a token, or false if the token is
	// outside the vocabulary. The returned slice must not be mutated.
	Lookup(token string) ([]float32, bool)

	// Dimensions returns the fixed vector length L.
	Dimensions() int
}

// Table is an in-memory vocabulary loaded from a word2vec-style text file.
// It is loaded once at process start and reused for the process lifetime;
// a failed load is unrecoverable since embeddings are unusable without it.
type Table struct {
	dimensions int
	vectors    map[string][]float32
}

var _ Vocabulary = (*Table)(nil)

// LoadTable reads a vocabulary from a text file where each line is
// "word v1 v2 ... vL". An optional "count dimensions" header line is
// accepted and skipped. All rows must share the same vector length.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVocabularyUnavailable, err)
	}
	defer f.Close()

	t := &Table{vectors: make(map[string][]float32)}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		// word2vec text format starts with a "count dimensions" header
		if line == 1 && len(fields) == 2 {
			if _, err := strconv.Atoi(fields[0]); err == nil {
				continue
			}
		}

		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: no vector components", ErrVocabularyUnavailable, line)
		}

		word := fields[0]
		vector := make([]float32, len(fields)-1)
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrVocabularyUnavailable, line, err)
			}
			vector[i] = float32(v)
		}

		if t.dimensions == 0 {
			t.dimensions = len(vector)
		} else if len(vector) != t.dimensions {
			return nil, fmt.Errorf("%w: line %d: vector length %d, want %d",
				ErrVocabularyUnavailable, line, len(vector), t.dimensions)
		}

		t.vectors[word] = vector
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVocabularyUnavailable, err)
	}

	if len(t.vectors) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary file", ErrVocabularyUnavailable)
	}

	return t, nil
}

// NewStaticVocabulary builds a vocabulary from an in-memory map.
// Intended for tests and embedded default vocabularies.
func NewStaticVocabulary(vectors map[string][]float32) (*Table, error) {
	t := &Table{vectors: make(map[string][]float32, len(vectors))}
	for word, vector := range vectors {
		if t.dimensions == 0 {
			t.dimensions = len(vector)
		} else if len(vector) != t.dimensions {
			return nil, fmt.Errorf("%w: word %q: vector length %d, want %d",
				ErrVocabularyUnavailable, word, len(vector), t.dimensions)
		}
		t.vectors[word] = vector
	}
	if len(t.vectors) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrVocabularyUnavailable)
	}
	return t, nil
}

// Lookup returns the vector for a token.
func (t *Table) Lookup(token string) ([]float32, bool) {
	v, ok := t.vectors[token]
	return v, ok
}

// Dimensions returns the vector length shared by all entries.
func (t *Table) Dimensions() int {
	return t.dimensions
}

// Len returns the number of words in the vocabulary.
func (t *Table) Len() int {
	return len(t.vectors)
}
