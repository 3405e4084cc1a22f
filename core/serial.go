package core

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the domain types. Field order is part of the stored
// format; append new fields, never reorder.
var (
	IDMUS       = idSer{}
	EmotionMUS  = emotionSer{}
	NoteMUS     = noteSer{}
	CategoryMUS = categorySer{}

	vectorMUS = ord.NewSliceSer[float32](raw.Float32)
)

var (
	_ mus.Serializer[ID]       = idSer{}
	_ mus.Serializer[Emotion]  = emotionSer{}
	_ mus.Serializer[Note]     = noteSer{}
	_ mus.Serializer[Category] = categorySer{}
)

type idSer struct{}

func (idSer) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idSer) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idSer) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idSer) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type emotionSer struct{}

func (emotionSer) Marshal(e Emotion, bs []byte) int {
	return varint.Int.Marshal(int(e), bs)
}

func (emotionSer) Unmarshal(bs []byte) (Emotion, int, error) {
	v, n, err := varint.Int.Unmarshal(bs)
	return Emotion(v), n, err
}

func (emotionSer) Size(e Emotion) int {
	return varint.Int.Size(int(e))
}

func (emotionSer) Skip(bs []byte) (int, error) {
	return varint.Int.Skip(bs)
}

type noteSer struct{}

func (noteSer) Marshal(note Note, bs []byte) (n int) {
	n = IDMUS.Marshal(note.Id, bs)
	n += ord.String.Marshal(note.Contents, bs[n:])
	n += IDMUS.Marshal(note.CategoryId, bs[n:])
	n += EmotionMUS.Marshal(note.Emotion, bs[n:])
	n += raw.TimeUnixMicro.Marshal(note.CreatedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(note.InsertedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(note.UpdatedAt, bs[n:])
	n += vectorMUS.Marshal(note.Vector, bs[n:])
	return n
}

func (noteSer) Unmarshal(bs []byte) (note Note, n int, err error) {
	var n1 int
	if note.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if note.Contents, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return note, n + n1, err
	}
	n += n1
	if note.CategoryId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return note, n + n1, err
	}
	n += n1
	if note.Emotion, n1, err = EmotionMUS.Unmarshal(bs[n:]); err != nil {
		return note, n + n1, err
	}
	n += n1
	if note.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return note, n + n1, err
	}
	n += n1
	if note.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return note, n + n1, err
	}
	n += n1
	if note.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return note, n + n1, err
	}
	n += n1
	note.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	return note, n + n1, err
}

func (noteSer) Size(note Note) (size int) {
	size = IDMUS.Size(note.Id)
	size += ord.String.Size(note.Contents)
	size += IDMUS.Size(note.CategoryId)
	size += EmotionMUS.Size(note.Emotion)
	size += raw.TimeUnixMicro.Size(note.CreatedAt)
	size += raw.TimeUnixMicro.Size(note.InsertedAt)
	size += raw.TimeUnixMicro.Size(note.UpdatedAt)
	size += vectorMUS.Size(note.Vector)
	return size
}

func (noteSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = IDMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = EmotionMUS.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	for i := 0; i < 3; i++ {
		if n1, err = raw.TimeUnixMicro.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	n1, err = vectorMUS.Skip(bs[n:])
	return n + n1, err
}

type categorySer struct{}

func (categorySer) Marshal(category Category, bs []byte) (n int) {
	n = IDMUS.Marshal(category.Id, bs)
	n += ord.String.Marshal(category.Name, bs[n:])
	n += ord.Bool.Marshal(category.Active, bs[n:])
	n += raw.TimeUnixMicro.Marshal(category.InsertedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(category.UpdatedAt, bs[n:])
	return n
}

func (categorySer) Unmarshal(bs []byte) (category Category, n int, err error) {
	var n1 int
	if category.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if category.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return category, n + n1, err
	}
	n += n1
	if category.Active, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return category, n + n1, err
	}
	n += n1
	if category.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return category, n + n1, err
	}
	n += n1
	category.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	return category, n + n1, err
}

func (categorySer) Size(category Category) (size int) {
	size = IDMUS.Size(category.Id)
	size += ord.String.Size(category.Name)
	size += ord.Bool.Size(category.Active)
	size += raw.TimeUnixMicro.Size(category.InsertedAt)
	size += raw.TimeUnixMicro.Size(category.UpdatedAt)
	return size
}

func (categorySer) Skip(bs []byte) (n int, err error) {
	var n1 int
	if n, err = IDMUS.Skip(bs); err != nil {
		return
	}
	if n1, err = ord.String.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	if n1, err = ord.Bool.Skip(bs[n:]); err != nil {
		return n + n1, err
	}
	n += n1
	for i := 0; i < 2; i++ {
		if n1, err = raw.TimeUnixMicro.Skip(bs[n:]); err != nil {
			return n + n1, err
		}
		n += n1
	}
	return n, nil
}
