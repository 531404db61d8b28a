package storage

import (
	"context"

	"github.com/poiesic/pulse/core"
)

// FeedbackRepository is the sole authority for feedback record identity and
// content. Implementations must be thread-safe and support concurrent access.
//
// A record's idempotency key is its generated id: re-ingesting identical
// text under a new id always creates a new record, and the store performs no
// content deduplication.
type FeedbackRepository interface {
	// Put persists a feedback record. A storage failure here is fatal to
	// ingestion; the record is not considered ingested.
	Put(ctx context.Context, record *core.FeedbackRecord) error

	// ListAll returns every record, newest first by received timestamp.
	ListAll(ctx context.Context) ([]*core.FeedbackRecord, error)

	// GetByIDs returns the records matching the given ids. Ids not found are
	// silently omitted from the result; callers must not assume a 1:1
	// correspondence with the requested set.
	GetByIDs(ctx context.Context, ids ...string) ([]*core.FeedbackRecord, error)

	// Close closes the repository and releases resources.
	Close() error
}
