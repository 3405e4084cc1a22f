package search

import (
	"strings"

	"github.com/poiesic/recall/core"
)

// FilterByKeywords retains notes whose contents contain at least one
// keyword, matched as a case-insensitive substring. Order-preserving.
// An empty keyword set yields an empty result: no keyword means no
// evidence of relevance, so nothing is forwarded.
func FilterByKeywords(notes []*core.Note, keywords []string) []*core.Note {
	if len(keywords) == 0 {
		return []*core.Note{}
	}

	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	if len(lowered) == 0 {
		return []*core.Note{}
	}

	var matched []*core.Note
	for _, note := range notes {
		contents := strings.ToLower(note.Contents)
		for _, kw := range lowered {
			if strings.Contains(contents, kw) {
				matched = append(matched, note)
				break
			}
		}
	}
	return matched
}

// FilterByCategory retains notes assigned to the given category.
// Order-preserving.
func FilterByCategory(notes []*core.Note, categoryID core.ID) []*core.Note {
	var matched []*core.Note
	for _, note := range notes {
		if note.CategoryId == categoryID {
			matched = append(matched, note)
		}
	}
	return matched
}
