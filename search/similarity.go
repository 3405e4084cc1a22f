package search

import (
	"math"
	"sort"

	"github.com/poiesic/recall/core"
)

// CosineSimilarity computes the cosine similarity between two vectors.
// Vectors of differing length are treated as unrelated (similarity 0)
// rather than an error, so stale or empty embeddings never crash a query.
// A zero-magnitude vector likewise scores 0.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(magA) * math.Sqrt(magB)))
}

// Rank orders candidate notes by cosine similarity to the query vector,
// highest first. Notes without an embedding are unrankable and excluded.
// Ties preserve input order. Returns at most limit results.
func Rank(queryVector []float32, candidates []*core.Note, limit int) []*core.SearchResult {
	if limit <= 0 {
		return []*core.SearchResult{}
	}

	results := make([]*core.SearchResult, 0, len(candidates))
	for _, note := range candidates {
		if note == nil || len(note.Vector) == 0 {
			continue
		}
		results = append(results, &core.SearchResult{
			Note:  note,
			Score: CosineSimilarity(queryVector, note.Vector),
		})
	}

	// Stable sort keeps input order for equal scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
