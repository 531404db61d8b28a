package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/pulse/core"
	"github.com/poiesic/pulse/storage"
)

// FeedbackRepository implements storage.FeedbackRepository for BadgerDB.
type FeedbackRepository struct {
	backend *Backend
}

var _ storage.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates a new FeedbackRepository on the given backend.
func NewFeedbackRepository(backend *Backend) *FeedbackRepository {
	return &FeedbackRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *FeedbackRepository) Close() error {
	return nil
}

// Put persists a feedback record and its date index entry.
func (r *FeedbackRepository) Put(ctx context.Context, record *core.FeedbackRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFeedbackRecordKey(record.ID)
		value := storage.MarshalFeedbackRecord(record)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		dateKey := makeFeedbackDateKey(record.ReceivedAt, record.ID)
		if err := tx.Set(dateKey, []byte(record.ID)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// ListAll returns every record, newest first by received timestamp.
func (r *FeedbackRepository) ListAll(ctx context.Context) ([]*core.FeedbackRecord, error) {
	var results []*core.FeedbackRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Walk the date index in reverse so newest records come first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		startKey := makePartialFeedbackDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(feedbackDatePrefix + ":")

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var recordID string
			if err := iter.Item().Value(func(val []byte) error {
				recordID = string(val)
				return nil
			}); err != nil {
				return err
			}

			record, err := r.readFeedbackRecord(tx, makeFeedbackRecordKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetByIDs retrieves records by their IDs. Missing ids are silently omitted.
func (r *FeedbackRepository) GetByIDs(ctx context.Context, ids ...string) ([]*core.FeedbackRecord, error) {
	var results []*core.FeedbackRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := r.readFeedbackRecord(tx, makeFeedbackRecordKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// readFeedbackRecord reads a feedback record from the transaction.
// Returns nil without error when the key does not exist.
func (r *FeedbackRepository) readFeedbackRecord(tx *badger.Txn, key []byte) (*core.FeedbackRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.FeedbackRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalFeedbackRecord(val)
		return unmarshalErr
	})
	return record, err
}
