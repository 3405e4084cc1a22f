package storage

import (
	"testing"
	"time"

	"github.com/poiesic/recall/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalNote(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	note := &core.Note{
		Id:         core.ID(7),
		Contents:   "Pick up dog food on the way home",
		CategoryId: core.IDFromCategoryName("errands"),
		Emotion:    core.EmotionJoy,
		CreatedAt:  now.Add(-time.Hour),
		InsertedAt: now,
		UpdatedAt:  now,
		Vector:     []float32{0.25, -0.5, 1.0},
	}

	data := MarshalNote(note)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalNote(data)
	require.NoError(t, err)
	assert.Equal(t, note.Id, decoded.Id)
	assert.Equal(t, note.Contents, decoded.Contents)
	assert.Equal(t, note.CategoryId, decoded.CategoryId)
	assert.Equal(t, note.Emotion, decoded.Emotion)
	assert.True(t, note.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, note.Vector, decoded.Vector)
}

func TestMarshalUnmarshalNote_NoVector(t *testing.T) {
	note := &core.Note{
		Id:        core.ID(3),
		Contents:  "unembedded",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	decoded, err := UnmarshalNote(MarshalNote(note))
	require.NoError(t, err)
	assert.Empty(t, decoded.Vector)
}

func TestUnmarshalNote_Truncated(t *testing.T) {
	note := &core.Note{
		Id:        core.ID(1),
		Contents:  "truncate me",
		CreatedAt: time.Now().UTC(),
	}
	data := MarshalNote(note)

	_, err := UnmarshalNote(data[:len(data)/2])
	assert.Error(t, err)
}

func TestMarshalUnmarshalCategory(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	category := &core.Category{
		Id:         core.IDFromCategoryName("Work"),
		Name:       "Work",
		Active:     true,
		InsertedAt: now,
		UpdatedAt:  now,
	}

	decoded, err := UnmarshalCategory(MarshalCategory(category))
	require.NoError(t, err)
	assert.Equal(t, category.Id, decoded.Id)
	assert.Equal(t, category.Name, decoded.Name)
	assert.True(t, decoded.Active)
}
