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


package core

import (
	"fmt"
	"strings"
	"time"
)

// ValidateNote validates a Note according to domain rules.
//
// Validation rules:
//   - Contents must not be empty or whitespace-only
//   - CreatedAt must not be in the future
//   - Emotion, when set, must be a declared variant
//
// NOT validated (populated by processors):
//   - Vector (can be empty until the indexing pipeline runs)
//   - ID (0 is valid from database sequences)
//   - CategoryId (a note may be uncategorized)
func ValidateNote(note *Note) error {
	if note == nil {
		return fmt.Errorf("%w: note is nil", ErrInvalidNote)
	}

	if strings.TrimSpace(note.Contents) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyContent)
	}

	if !IsValidTimestamp(note.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrInvalidTimestamp)
	}

	if note.Emotion != 0 && !note.Emotion.Valid() {
		return fmt.Errorf("%w: %w: value %d", ErrInvalidNote, ErrInvalidEmotion, note.Emotion)
	}

	return nil
}

// ValidateCategory validates a Category according to domain rules.
//
// Validation rules:
//   - Name must not be empty or whitespace-only
//
// NOT validated:
//   - ID (derived from the name by IDFromCategoryName)
//   - Active (both states are valid)
func ValidateCategory(category *Category) error {
	if category == nil {
		return fmt.Errorf("%w: category is nil", ErrInvalidCategory)
	}

	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCategory, ErrEmptyCategoryName)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
