// Package qdrant provides a vector.Index backed by a Qdrant server.
//
// It speaks Qdrant's REST API directly and assumes cosine distance. The
// collection is created lazily on the first upsert, sized to the first
// vector seen.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/poiesic/pulse/vector"
)

const defaultTimeout = 15 * time.Second

// ErrEmptyVector is returned when an upsert carries no vector to index.
var ErrEmptyVector = errors.New("empty vector")

// statusError carries the HTTP status of a failed Qdrant request.
type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string { return e.msg }

// Config holds connection settings for a Qdrant server.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// Index is a vector.Index implementation over Qdrant's REST API.
type Index struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client

	mu      sync.Mutex
	created bool
}

var _ vector.Index = (*Index)(nil)

// NewIndex creates a Qdrant-backed index. No connection is made until the
// first operation.
func NewIndex(cfg Config) *Index {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Index{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Upsert inserts or replaces the entry for entry.ID.
func (idx *Index) Upsert(ctx context.Context, entry vector.Entry) error {
	if len(entry.Vector) == 0 {
		return ErrEmptyVector
	}
	if err := idx.ensureCollection(ctx, len(entry.Vector)); err != nil {
		return err
	}

	body := map[string]any{
		"points": []map[string]any{
			{
				"id":     entry.ID,
				"vector": entry.Vector,
				"payload": map[string]any{
					"text":             entry.Metadata.Text,
					"source":           entry.Metadata.Source,
					"product_category": entry.Metadata.ProductCategory,
					"urgency_level":    entry.Metadata.Urgency,
				},
			},
		},
	}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", idx.url, idx.collection)
	return idx.doJSON(ctx, http.MethodPut, url, body, nil)
}

// Query returns up to topK matches ordered by score descending. A
// missing collection means nothing has been indexed yet, so a 404 from
// the search endpoint yields an empty result rather than an error.
func (idx *Index) Query(ctx context.Context, queryVec []float32, topK int) ([]vector.Match, error) {
	if topK <= 0 {
		topK = 5
	}
	body := map[string]any{
		"vector": queryVec,
		"limit":  topK,
	}
	var resp struct {
		Result []struct {
			ID    string  `json:"id"`
			Score float64 `json:"score"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", idx.url, idx.collection)
	if err := idx.doJSON(ctx, http.MethodPost, url, body, &resp); err != nil {
		var statusErr *statusError
		if errors.As(err, &statusErr) && statusErr.code == http.StatusNotFound {
			return []vector.Match{}, nil
		}
		return nil, err
	}

	matches := make([]vector.Match, 0, len(resp.Result))
	for _, r := range resp.Result {
		matches = append(matches, vector.Match{ID: r.ID, Score: r.Score})
	}
	return matches, nil
}

// ensureCollection creates the collection on first use.
// Qdrant returns 200 when the collection already exists with the same schema.
func (idx *Index) ensureCollection(ctx context.Context, dimension int) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.created {
		return nil
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	url := fmt.Sprintf("%s/collections/%s", idx.url, idx.collection)
	if err := idx.doJSON(ctx, http.MethodPut, url, body, nil); err != nil {
		return err
	}
	idx.created = true
	return nil
}

func (idx *Index) doJSON(ctx context.Context, method, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if idx.apiKey != "" {
		req.Header.Set("api-key", idx.apiKey)
	}

	resp, err := idx.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode, msg: fmt.Sprintf("qdrant %s %s failed: %s", method, url, resp.Status)}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
