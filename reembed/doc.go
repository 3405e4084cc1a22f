// Package reembed recomputes the stored embeddings of every note,
// typically after switching to a different word-vector vocabulary.
//
// This package supports batch processing of notes, progress tracking,
// and retry logic with exponential backoff. A note's previous vector
// stays valid for ranking until its replacement is written.
package reembed
