package badger

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Key prefixes for different data types
const (
	feedbackRecordPrefix = "fbrec"
	feedbackDatePrefix   = "fbrecd"
)

// makeFeedbackRecordKey generates a key for a feedback record by ID.
func makeFeedbackRecordKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", feedbackRecordPrefix, id))
}

// makeFeedbackDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeFeedbackDateKey(timestamp time.Time, id string) []byte {
	prefix := feedbackDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 + len(id)
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	copy(buf[offset:], []byte(id))
	return buf
}

// makePartialFeedbackDateKey generates a partial key for date range scans.
// Format: prefix:timestamp
func makePartialFeedbackDateKey(timestamp time.Time) []byte {
	prefix := feedbackDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
