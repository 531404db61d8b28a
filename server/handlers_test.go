package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/poiesic/pulse/ai/mock"
	"github.com/poiesic/pulse/core"
	"github.com/poiesic/pulse/ingestion"
	"github.com/poiesic/pulse/search"
	badgerstore "github.com/poiesic/pulse/storage/badger"
	"github.com/poiesic/pulse/vector/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	server   *httptest.Server
	index    *memory.Index
	provider *mock.MockProvider
}

func setupAPI(t *testing.T) *apiFixture {
	t.Helper()

	repo, backend, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	index := memory.NewIndex()
	provider := mock.NewMockProvider()

	pipeline, err := ingestion.NewPipeline(repo, index, provider)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	searcher, err := search.NewSearcher(repo, index, provider)
	require.NoError(t, err)

	srv := httptest.NewServer(NewServer(pipeline, searcher, repo).Router())
	t.Cleanup(srv.Close)

	return &apiFixture{server: srv, index: index, provider: provider}
}

func (f *apiFixture) postIngest(t *testing.T, body map[string]any) (*http.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(f.server.URL+"/ingest", "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func (f *apiFixture) get(t *testing.T, path string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(f.server.URL + path)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// waitForIndex polls until the index holds want entries.
func (f *apiFixture) waitForIndex(t *testing.T, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f.index.Len() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("index never reached %d entries (has %d)", want, f.index.Len())
}

func TestIngestEndpoint_Success(t *testing.T) {
	f := setupAPI(t)

	resp, body := f.postIngest(t, map[string]any{
		"text":   "I love the new Workers editor, great job!",
		"source": "Discord",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Feedback ingested successfully", body["message"])

	analysis, ok := body["ai_analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(9), analysis["sentiment_score"])
	assert.Equal(t, core.NPSPromoter, analysis["nps_class"])
	assert.Equal(t, core.UrgencyLow, analysis["urgency_level"])
	assert.NotEmpty(t, analysis["summary"])
	assert.NotEmpty(t, analysis["recommended_action"])
}

func TestIngestEndpoint_MissingText(t *testing.T) {
	f := setupAPI(t)

	resp, body := f.postIngest(t, map[string]any{"source": "Discord"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "text")

	_, allBody := f.get(t, "/all")
	assert.Equal(t, float64(0), allBody["total"])
}

func TestIngestEndpoint_UrgencyOverride(t *testing.T) {
	f := setupAPI(t)

	resp, body := f.postIngest(t, map[string]any{
		"text":          "The dashboard crashed and everything is broken",
		"source":        "Support Ticket",
		"urgency_level": core.UrgencyLow,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	analysis := body["ai_analysis"].(map[string]any)
	assert.Equal(t, core.UrgencyLow, analysis["urgency_level"])
}

func TestIngestEndpoint_TimestampAndDefaults(t *testing.T) {
	f := setupAPI(t)

	resp, body := f.postIngest(t, map[string]any{
		"text":      "some feedback",
		"source":    "Email",
		"timestamp": "2026-04-02T10:30:00Z",
		"user_id":   "user-9",
		"region":    "APAC",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)

	_, allBody := f.get(t, "/all")
	results := allBody["results"].([]any)
	require.Len(t, results, 1)
	record := results[0].(map[string]any)
	assert.Equal(t, id, record["id"])
	assert.Equal(t, "2026-04-02T10:30:00Z", record["feedback_timestamp"])
	assert.Equal(t, "user-9", record["user_id"])
	assert.Equal(t, "APAC", record["region"])
	assert.Equal(t, core.StatusOpen, record["feedback_status"])
}

func TestListAllEndpoint_NewestFirst(t *testing.T) {
	f := setupAPI(t)

	for i, ts := range []string{
		"2026-04-01T00:00:00Z",
		"2026-04-03T00:00:00Z",
		"2026-04-02T00:00:00Z",
	} {
		resp, _ := f.postIngest(t, map[string]any{
			"text":      fmt.Sprintf("feedback number %d", i),
			"source":    "Email",
			"timestamp": ts,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := f.get(t, "/all")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["total"])

	results := body["results"].([]any)
	require.Len(t, results, 3)
	timestamps := make([]string, 0, 3)
	for _, r := range results {
		timestamps = append(timestamps, r.(map[string]any)["feedback_timestamp"].(string))
	}
	assert.Equal(t, []string{
		"2026-04-03T00:00:00Z",
		"2026-04-02T00:00:00Z",
		"2026-04-01T00:00:00Z",
	}, timestamps)
}

func TestSearchEndpoint_EmptyIndex(t *testing.T) {
	f := setupAPI(t)

	resp, body := f.get(t, "/search?q=timeouts")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "timeouts", body["query"])

	results, ok := body["results"].([]any)
	require.True(t, ok)
	assert.Empty(t, results)
}

func TestSearchEndpoint_MissingQuery(t *testing.T) {
	f := setupAPI(t)

	resp, body := f.get(t, "/search")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestSearchEndpoint_ReturnsAliases(t *testing.T) {
	f := setupAPI(t)

	resp, _ := f.postIngest(t, map[string]any{
		"text":   "The upload API keeps timing out",
		"source": "Discord",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	f.waitForIndex(t, 1)

	searchResp, body := f.get(t, "/search?q=upload+timeouts")
	assert.Equal(t, http.StatusOK, searchResp.StatusCode)

	results := body["results"].([]any)
	require.Len(t, results, 1)
	hit := results[0].(map[string]any)
	assert.Equal(t, "The upload API keeps timing out", hit["original_text"])
	assert.Equal(t, hit["original_text"], hit["text"])
	assert.Equal(t, hit["feedback_timestamp"], hit["created_at"])
	assert.NotNil(t, hit["score"])
}

func TestSearchEndpoint_UpstreamFailureCarriesDetails(t *testing.T) {
	f := setupAPI(t)
	f.provider.MockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service unreachable")
	}

	resp, body := f.get(t, "/search?q=timeouts")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Search failed", body["error"])
	details, ok := body["details"].(string)
	require.True(t, ok)
	assert.Contains(t, details, "embedding service unreachable")
}

func TestAnalyticsEndpoint(t *testing.T) {
	f := setupAPI(t)

	resp, _ := f.postIngest(t, map[string]any{
		"text":   "I love the new Workers editor, great job!",
		"source": "Discord",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	analyticsResp, body := f.get(t, "/analytics?timeline=7d")
	assert.Equal(t, http.StatusOK, analyticsResp.StatusCode)

	kpis := body["kpis"].(map[string]any)
	assert.Equal(t, float64(1), kpis["total"])
	assert.Equal(t, float64(100), kpis["nps"])

	heatmap := body["sentiment_heatmap"].([]any)
	assert.Len(t, heatmap, 30)
}

func TestAnalyticsEndpoint_FilterExcludes(t *testing.T) {
	f := setupAPI(t)

	resp, _ := f.postIngest(t, map[string]any{
		"text":   "some feedback",
		"source": "Discord",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body := f.get(t, "/analytics?source=Email")
	kpis := body["kpis"].(map[string]any)
	assert.Equal(t, float64(0), kpis["total"])
	assert.Equal(t, "N/A", kpis["top_category"])
}

func TestHealthEndpoint(t *testing.T) {
	f := setupAPI(t)

	resp, body := f.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestCORSPreflight(t *testing.T) {
	f := setupAPI(t)

	req, err := http.NewRequest(http.MethodOptions, f.server.URL+"/ingest", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}
