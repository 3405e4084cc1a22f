package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateNote(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		note    *Note
		wantErr error
	}{
		{
			name: "valid note",
			note: &Note{
				Id:        1,
				Contents:  "Remember to water the plants",
				CreatedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid note with empty vector",
			note: &Note{
				Id:        1,
				Contents:  "A thought",
				CreatedAt: validTime,
				Vector:    nil,
			},
			wantErr: nil,
		},
		{
			name: "valid note with emotion",
			note: &Note{
				Id:        1,
				Contents:  "Great day at the beach",
				Emotion:   EmotionJoy,
				CreatedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name:    "nil note",
			note:    nil,
			wantErr: ErrInvalidNote,
		},
		{
			name: "empty contents",
			note: &Note{
				Id:        1,
				Contents:  "",
				CreatedAt: validTime,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "whitespace-only contents",
			note: &Note{
				Id:        1,
				Contents:  "   \t\n",
				CreatedAt: validTime,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "future timestamp",
			note: &Note{
				Id:        1,
				Contents:  "From the future",
				CreatedAt: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
		{
			name: "invalid emotion value",
			note: &Note{
				Id:        1,
				Contents:  "A thought",
				Emotion:   Emotion(42),
				CreatedAt: validTime,
			},
			wantErr: ErrInvalidEmotion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNote(tt.note)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateNote() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateNote() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidNote) {
				t.Errorf("ValidateNote() error = %v, should wrap ErrInvalidNote", err)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name     string
		category *Category
		wantErr  error
	}{
		{
			name: "valid category",
			category: &Category{
				Id:     IDFromCategoryName("Pets"),
				Name:   "Pets",
				Active: true,
			},
			wantErr: nil,
		},
		{
			name: "valid inactive category",
			category: &Category{
				Id:     IDFromCategoryName("Archive"),
				Name:   "Archive",
				Active: false,
			},
			wantErr: nil,
		},
		{
			name:     "nil category",
			category: nil,
			wantErr:  ErrInvalidCategory,
		},
		{
			name: "empty name",
			category: &Category{
				Name: "",
			},
			wantErr: ErrEmptyCategoryName,
		},
		{
			name: "whitespace-only name",
			category: &Category{
				Name: "  ",
			},
			wantErr: ErrEmptyCategoryName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCategory(tt.category)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCategory() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCategory() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidTimestamp(t *testing.T) {
	if !IsValidTimestamp(time.Now().Add(-time.Minute)) {
		t.Error("IsValidTimestamp() = false for past timestamp")
	}
	if IsValidTimestamp(time.Now().Add(time.Minute)) {
		t.Error("IsValidTimestamp() = true for future timestamp")
	}
}
