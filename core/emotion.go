package core

import "fmt"

// Emotion is the inferred emotional tone of a note.
type Emotion int

const (
	// EmotionCalm is the neutral/settled tone.
	EmotionCalm Emotion = iota + 1
	// EmotionJoy is a positive, upbeat tone.
	EmotionJoy
	// EmotionSadness is a low, melancholic tone.
	EmotionSadness
	// EmotionAnger is a frustrated or upset tone.
	EmotionAnger
	// EmotionFear is an anxious or worried tone.
	EmotionFear
	// EmotionSurprise is an unexpected or astonished tone.
	EmotionSurprise
)

// Emotions lists every valid emotion variant.
// Classifiers must pick exactly one of these labels.
var Emotions = []Emotion{
	EmotionCalm,
	EmotionJoy,
	EmotionSadness,
	EmotionAnger,
	EmotionFear,
	EmotionSurprise,
}

// String returns the canonical lowercase label for the emotion.
func (e Emotion) String() string {
	switch e {
	case EmotionCalm:
		return "calm"
	case EmotionJoy:
		return "joy"
	case EmotionSadness:
		return "sadness"
	case EmotionAnger:
		return "anger"
	case EmotionFear:
		return "fear"
	case EmotionSurprise:
		return "surprise"
	}
	return fmt.Sprintf("Emotion(%d)", int(e))
}

// Color returns the display color associated with the emotion as a hex string.
// The mapping is total over the declared variants; an unmapped variant is a
// programming error and panics rather than silently rendering as calm.
func (e Emotion) Color() string {
	switch e {
	case EmotionCalm:
		return "#7FB3D5"
	case EmotionJoy:
		return "#F7DC6F"
	case EmotionSadness:
		return "#5D6D7E"
	case EmotionAnger:
		return "#E74C3C"
	case EmotionFear:
		return "#8E44AD"
	case EmotionSurprise:
		return "#E67E22"
	}
	panic(fmt.Sprintf("unmapped emotion variant %d", int(e)))
}

// ParseEmotion converts a label to its Emotion variant.
// Returns ErrInvalidEmotion for labels outside the declared set.
func ParseEmotion(label string) (Emotion, error) {
	for _, e := range Emotions {
		if e.String() == label {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidEmotion, label)
}

// Valid reports whether the emotion is one of the declared variants.
func (e Emotion) Valid() bool {
	return e >= EmotionCalm && e <= EmotionSurprise
}
