package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/recall/core"
)

// Key prefixes for different data types
const (
	noteRecordPrefix      = "notrec"
	noteRecordDatePrefix  = "notrecd"
	noteRecordCatPrefix   = "notrecc"
	noteRecordIDSeq       = "notrecseq"
	categoryRecordPrefix  = "catrec"
	categoryNameKeyPrefix = "catname"
)

// makeNoteKey generates a key for a note by ID.
func makeNoteKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", noteRecordPrefix, id))
}

// makeNoteDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeNoteDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := noteRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialNoteDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialNoteDateKey(timestamp time.Time) []byte {
	prefix := noteRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeNoteCategoryKey generates a composite key for the category index.
// Format: prefix:categoryID:noteID
func makeNoteCategoryKey(categoryID, noteID core.ID) []byte {
	prefix := noteRecordCatPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for categoryID + 8 bytes for noteID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(categoryID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(noteID))
	return buf
}

// makePartialNoteCategoryKey generates a partial key for category queries.
// Format: prefix:categoryID
func makePartialNoteCategoryKey(categoryID core.ID) []byte {
	prefix := noteRecordCatPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for categoryID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(categoryID))
	return buf
}

// makeCategoryKey generates a key for a category by ID.
func makeCategoryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", categoryRecordPrefix, id))
}

// makeCategoryNameKey generates a key for category lookup by normalized name.
// Format: prefix:key
func makeCategoryNameKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", categoryNameKeyPrefix, core.CategoryKey(name)))
}
