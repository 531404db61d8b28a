// Package memory provides an in-process vector index backed by a map.
//
// It brute-force scans all entries on every query, which is fine for the
// data sizes this service sees. Use the qdrant backend when the corpus
// outgrows a single process.
package memory

import (
	"context"
	"math"
	"slices"
	"sync"

	"github.com/poiesic/pulse/vector"
)

// Index is an in-memory vector.Index implementation.
type Index struct {
	mu      sync.RWMutex
	entries map[string]vector.Entry
}

var _ vector.Index = (*Index)(nil)

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]vector.Entry)}
}

// Upsert inserts or replaces the entry for entry.ID.
func (idx *Index) Upsert(ctx context.Context, entry vector.Entry) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries[entry.ID] = entry
	return nil
}

// Query scans all entries and returns the topK most similar.
func (idx *Index) Query(ctx context.Context, queryVec []float32, topK int) ([]vector.Match, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	matches := make([]vector.Match, 0, len(idx.entries))
	for id, entry := range idx.entries {
		matches = append(matches, vector.Match{
			ID:    id,
			Score: cosineSimilarity(queryVec, entry.Vector),
		})
	}

	// Sort by score descending, id ascending on ties for stable output
	slices.SortFunc(matches, func(a, b vector.Match) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return slices.Compare([]byte(a.ID), []byte(b.ID))
	})

	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths compare over the shorter prefix.
func cosineSimilarity(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
