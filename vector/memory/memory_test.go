package memory

import (
	"context"
	"testing"

	"github.com/poiesic/pulse/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_EmptyIndex(t *testing.T) {
	idx := NewIndex()

	matches, err := idx.Query(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestQuery_RanksBySimilarity(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, vector.Entry{ID: "orthogonal", Vector: []float32{0, 1, 0}}))
	require.NoError(t, idx.Upsert(ctx, vector.Entry{ID: "exact", Vector: []float32{1, 0, 0}}))
	require.NoError(t, idx.Upsert(ctx, vector.Entry{ID: "close", Vector: []float32{0.9, 0.1, 0}}))

	matches, err := idx.Query(ctx, []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "exact", matches[0].ID)
	assert.Equal(t, "close", matches[1].ID)
	assert.Equal(t, "orthogonal", matches[2].ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
	assert.InDelta(t, 0.0, matches[2].Score, 1e-6)
}

func TestQuery_TopKLimits(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, idx.Upsert(ctx, vector.Entry{ID: id, Vector: []float32{1, 0}}))
	}

	matches, err := idx.Query(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	// Equal scores fall back to id ordering
	assert.Equal(t, "a", matches[0].ID)
	assert.Equal(t, "b", matches[1].ID)
}

func TestUpsert_ReplacesExisting(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, vector.Entry{ID: "x", Vector: []float32{0, 1}}))
	require.NoError(t, idx.Upsert(ctx, vector.Entry{ID: "x", Vector: []float32{1, 0}}))
	assert.Equal(t, 1, idx.Len())

	matches, err := idx.Query(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
}

func TestQuery_ZeroVector(t *testing.T) {
	idx := NewIndex()
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, vector.Entry{ID: "a", Vector: []float32{1, 0}}))

	matches, err := idx.Query(ctx, []float32{0, 0}, 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 0.0, matches[0].Score)
}
