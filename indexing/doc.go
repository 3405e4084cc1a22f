// Package indexing stores notes and enriches them in the background.
//
// The Pipeline type manages the indexing workflow for notes, including:
//   - Adding notes to storage
//   - Computing word-vector embeddings asynchronously
//   - Tagging notes with a model-inferred emotion asynchronously
//
// Processing is performed concurrently using worker pools. Errors
// during async enrichment are logged but do not fail the indexing
// operation, and a note's previous embedding stays visible to ranking
// until its replacement lands.
package indexing
