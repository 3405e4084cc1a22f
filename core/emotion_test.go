package core

import (
	"errors"
	"testing"
)

func TestEmotion_StringRoundTrip(t *testing.T) {
	for _, e := range Emotions {
		parsed, err := ParseEmotion(e.String())
		if err != nil {
			t.Fatalf("ParseEmotion(%q) returned error: %v", e.String(), err)
		}
		if parsed != e {
			t.Errorf("ParseEmotion(%q) = %v, want %v", e.String(), parsed, e)
		}
	}
}

func TestParseEmotion_Unknown(t *testing.T) {
	tests := []string{"", "happy", "CALM", "melancholy"}

	for _, label := range tests {
		t.Run(label, func(t *testing.T) {
			_, err := ParseEmotion(label)
			if !errors.Is(err, ErrInvalidEmotion) {
				t.Errorf("ParseEmotion(%q) error = %v, want ErrInvalidEmotion", label, err)
			}
		})
	}
}

func TestEmotion_ColorTotal(t *testing.T) {
	seen := make(map[string]Emotion)
	for _, e := range Emotions {
		color := e.Color()
		if color == "" {
			t.Errorf("Color() for %v is empty", e)
		}
		if prev, ok := seen[color]; ok {
			t.Errorf("Color() for %v collides with %v", e, prev)
		}
		seen[color] = e
	}
}

func TestEmotion_Valid(t *testing.T) {
	for _, e := range Emotions {
		if !e.Valid() {
			t.Errorf("Valid() = false for declared emotion %v", e)
		}
	}
	if Emotion(0).Valid() {
		t.Error("Valid() = true for zero emotion")
	}
	if Emotion(99).Valid() {
		t.Error("Valid() = true for out-of-range emotion")
	}
}
