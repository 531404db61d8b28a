package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/pulse/ai/mock"
	"github.com/poiesic/pulse/core"
	"github.com/poiesic/pulse/storage"
	badgerstore "github.com/poiesic/pulse/storage/badger"
	"github.com/poiesic/pulse/vector"
	"github.com/poiesic/pulse/vector/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchFixture struct {
	searcher *Searcher
	repo     storage.FeedbackRepository
	index    *memory.Index
	provider *mock.MockProvider
}

func setupSearcher(t *testing.T) *searchFixture {
	t.Helper()

	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	index := memory.NewIndex()
	provider := mock.NewMockProvider()

	searcher, err := NewSearcher(repo, index, provider)
	require.NoError(t, err)

	return &searchFixture{
		searcher: searcher,
		repo:     repo,
		index:    index,
		provider: provider,
	}
}

// storeRecord persists a minimal record and indexes the given vector for it.
func (f *searchFixture) storeRecord(t *testing.T, text string, vec []float32) *core.FeedbackRecord {
	t.Helper()
	ctx := context.Background()

	record := &core.FeedbackRecord{
		ID:             core.NewID(),
		ReceivedAt:     time.Now().UTC(),
		Source:         "Discord",
		OriginalText:   text,
		SentimentScore: 5,
		NPSClass:       core.NPSPassive,
	}
	require.NoError(t, f.repo.Put(ctx, record))
	require.NoError(t, f.index.Upsert(ctx, vector.Entry{ID: record.ID, Vector: vec}))
	return record
}

func TestSearch_EmptyIndex(t *testing.T) {
	f := setupSearcher(t)

	results, err := f.searcher.Search(context.Background(), "upload timeouts", DefaultTopK)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestSearch_EmptyQuery(t *testing.T) {
	f := setupSearcher(t)

	_, err := f.searcher.Search(context.Background(), "   ", DefaultTopK)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSearch_RanksByScore(t *testing.T) {
	f := setupSearcher(t)
	f.provider.MockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}

	far := f.storeRecord(t, "billing page is slow", []float32{0, 1, 0})
	near := f.storeRecord(t, "upload API timeouts", []float32{1, 0, 0})

	results, err := f.searcher.Search(context.Background(), "timeouts", DefaultTopK)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, near.ID, results[0].Record.ID)
	assert.Equal(t, far.ID, results[1].Record.ID)
	require.NotNil(t, results[0].Score)
	require.NotNil(t, results[1].Score)
	assert.Greater(t, *results[0].Score, *results[1].Score)
}

func TestSearch_TopKLimits(t *testing.T) {
	f := setupSearcher(t)
	f.provider.MockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	for range 4 {
		f.storeRecord(t, "some feedback", []float32{1, 0})
	}

	results, err := f.searcher.Search(context.Background(), "feedback", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearch_DanglingIndexEntryDropped(t *testing.T) {
	f := setupSearcher(t)
	f.provider.MockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	record := f.storeRecord(t, "real feedback", []float32{1, 0})
	// Index an id that was never persisted
	require.NoError(t, f.index.Upsert(context.Background(), vector.Entry{
		ID:     core.NewID(),
		Vector: []float32{1, 0},
	}))

	results, err := f.searcher.Search(context.Background(), "feedback", DefaultTopK)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, record.ID, results[0].Record.ID)
}

func TestSearch_EmbedderFailure(t *testing.T) {
	f := setupSearcher(t)
	f.provider.MockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding model offline")
	}

	_, err := f.searcher.Search(context.Background(), "anything", DefaultTopK)
	assert.ErrorIs(t, err, core.ErrUpstreamFailure)
}

func TestNewSearcher_RequiresDependencies(t *testing.T) {
	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	index := memory.NewIndex()
	provider := mock.NewMockProvider()

	_, err = NewSearcher(nil, index, provider)
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewSearcher(repo, nil, provider)
	assert.ErrorIs(t, err, ErrIndexRequired)

	_, err = NewSearcher(repo, index, nil)
	assert.ErrorIs(t, err, ErrProviderRequired)
}
