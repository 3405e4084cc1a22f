package text

import (
	"strings"
	"unicode"
)

// Stop words filtered out during normalization. Short function words carry
// no retrieval signal and would dominate averaged embeddings.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "i": true, "my": true, "me": true, "we": true,
}

// IsStopWord reports whether the (already lower-cased) token is a stop word.
func IsStopWord(token string) bool {
	return stopWords[token]
}

// Normalize splits text on whitespace and non-alphanumeric boundaries,
// lower-cases each token, and removes stop words and empty tokens.
// Every surviving occurrence is kept: repeated tokens contribute repeatedly
// when the result is used as embedding input.
// Empty input yields an empty slice; there are no error conditions.
func Normalize(text string) []string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		cleaned := strings.ToLower(word)
		if cleaned != "" && !stopWords[cleaned] {
			tokens = append(tokens, cleaned)
		}
	}
	return tokens
}

// NormalizeUnique normalizes text and deduplicates tokens while preserving
// first-seen order. Used for display and lexical matching, where repeated
// tokens add nothing.
func NormalizeUnique(text string) []string {
	tokens := Normalize(text)
	seen := make(map[string]bool, len(tokens))
	unique := tokens[:0]
	for _, token := range tokens {
		if !seen[token] {
			seen[token] = true
			unique = append(unique, token)
		}
	}
	return unique
}

// ContainsAllWords checks if all normalized query tokens appear in the document.
// Returns false for queries that normalize to nothing.
func ContainsAllWords(document, query string) bool {
	queryWords := NormalizeUnique(query)
	if len(queryWords) == 0 {
		return false
	}

	docWords := Normalize(document)
	docWordSet := make(map[string]bool, len(docWords))
	for _, word := range docWords {
		docWordSet[word] = true
	}

	for _, qWord := range queryWords {
		if !docWordSet[qWord] {
			return false
		}
	}
	return true
}

// ContainsAnyWord checks if at least one normalized query token appears in
// the document.
func ContainsAnyWord(document, query string) bool {
	queryWords := NormalizeUnique(query)
	if len(queryWords) == 0 {
		return false
	}

	docWords := Normalize(document)
	docWordSet := make(map[string]bool, len(docWords))
	for _, word := range docWords {
		docWordSet[word] = true
	}

	for _, qWord := range queryWords {
		if docWordSet[qWord] {
			return true
		}
	}
	return false
}
