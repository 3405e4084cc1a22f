package search

import (
	"testing"

	"github.com/poiesic/recall/core"
	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("self similarity is 1", func(t *testing.T) {
		v := []float32{0.3, -0.7, 2.1}
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-6)
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	})

	t.Run("opposite vectors score -1", func(t *testing.T) {
		assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	})

	t.Run("differing lengths are unrelated", func(t *testing.T) {
		assert.Equal(t, float32(0), CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	})

	t.Run("empty vectors score 0", func(t *testing.T) {
		assert.Equal(t, float32(0), CosineSimilarity([]float32{}, []float32{}))
	})

	t.Run("zero magnitude scores 0", func(t *testing.T) {
		assert.Equal(t, float32(0), CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	})

	t.Run("scale invariant", func(t *testing.T) {
		a := []float32{1, 2, 3}
		b := []float32{10, 20, 30}
		assert.InDelta(t, 1.0, CosineSimilarity(a, b), 1e-6)
	})
}

func TestRank(t *testing.T) {
	notes := []*core.Note{
		{Id: 1, Contents: "note 1", Vector: []float32{1, 0}},
		{Id: 2, Contents: "note 2", Vector: []float32{0, 1}},
		{Id: 3, Contents: "note 3", Vector: []float32{0.7, 0.7}},
	}

	t.Run("orders by similarity descending", func(t *testing.T) {
		ranked := Rank([]float32{1, 0}, notes, 10)
		assert.Len(t, ranked, 3)
		assert.Equal(t, core.ID(1), ranked[0].Note.Id)
		assert.Equal(t, core.ID(3), ranked[1].Note.Id)
		assert.Equal(t, core.ID(2), ranked[2].Note.Id)
		assert.InDelta(t, 1.0, ranked[0].Score, 1e-6)
		assert.InDelta(t, 0.7071, ranked[1].Score, 1e-3)
		assert.InDelta(t, 0.0, ranked[2].Score, 1e-6)
	})

	t.Run("respects limit", func(t *testing.T) {
		ranked := Rank([]float32{1, 0}, notes, 2)
		assert.Len(t, ranked, 2)
		assert.Equal(t, core.ID(1), ranked[0].Note.Id)
	})

	t.Run("zero limit yields empty", func(t *testing.T) {
		assert.Empty(t, Rank([]float32{1, 0}, notes, 0))
	})

	t.Run("skips notes without embeddings", func(t *testing.T) {
		mixed := []*core.Note{
			{Id: 1, Vector: []float32{1, 0}},
			{Id: 2},
			{Id: 3, Vector: []float32{0.5, 0.5}},
		}
		ranked := Rank([]float32{1, 0}, mixed, 10)
		assert.Len(t, ranked, 2)
	})

	t.Run("ties preserve input order", func(t *testing.T) {
		tied := []*core.Note{
			{Id: 10, Vector: []float32{2, 0}},
			{Id: 11, Vector: []float32{1, 0}},
			{Id: 12, Vector: []float32{3, 0}},
		}
		ranked := Rank([]float32{1, 0}, tied, 10)
		assert.Equal(t, core.ID(10), ranked[0].Note.Id)
		assert.Equal(t, core.ID(11), ranked[1].Note.Id)
		assert.Equal(t, core.ID(12), ranked[2].Note.Id)
	})

	t.Run("empty query vector scores everything 0", func(t *testing.T) {
		ranked := Rank(nil, notes, 10)
		assert.Len(t, ranked, 3)
		for _, result := range ranked {
			assert.Equal(t, float32(0), result.Score)
		}
	})
}
