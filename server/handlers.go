package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/poiesic/pulse/analytics"
	"github.com/poiesic/pulse/core"
	"github.com/poiesic/pulse/ingestion"
	"github.com/poiesic/pulse/search"
)

type ingestRequest struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	Region    string `json:"region"`
	UserID    string `json:"user_id"`
	Timestamp string `json:"timestamp"`
	Urgency   string `json:"urgency_level"`
}

// searchResult is a feedback record plus the alias fields search clients
// expect alongside the canonical names.
type searchResult struct {
	*core.FeedbackRecord
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Score     *float64  `json:"score"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	// A malformed timestamp falls back to server receive time
	var receivedAt time.Time
	if req.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
			receivedAt = parsed
		}
	}

	record, analysis, err := s.pipeline.Ingest(r.Context(), ingestion.Request{
		Text:        req.Text,
		Source:      req.Source,
		Region:      req.Region,
		SubmitterID: req.UserID,
		Urgency:     req.Urgency,
		ReceivedAt:  receivedAt,
	})
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.logger.Error("error ingesting feedback", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to ingest feedback",
			"details": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":          record.ID,
		"message":     "Feedback ingested successfully",
		"ai_analysis": analysis,
	})
}

func (s *Server) handleListAll(w http.ResponseWriter, r *http.Request) {
	records, err := s.repository.ListAll(r.Context())
	if err != nil {
		s.logger.Error("error listing feedback", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to list feedback",
			"details": err.Error(),
		})
		return
	}
	if records == nil {
		records = []*core.FeedbackRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results": records,
		"total":   len(records),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'q' is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.searchTimeout)
	defer cancel()

	results, err := s.searcher.Search(ctx, query, search.DefaultTopK)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.logger.Error("error searching feedback", "query", query, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Search failed",
			"details": err.Error(),
		})
		return
	}

	out := make([]searchResult, 0, len(results))
	for _, result := range results {
		out = append(out, searchResult{
			FeedbackRecord: result.Record,
			Text:           result.Record.OriginalText,
			CreatedAt:      result.Record.ReceivedAt,
			Score:          result.Score,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": out,
	})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	records, err := s.repository.ListAll(r.Context())
	if err != nil {
		s.logger.Error("error loading analytics snapshot", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to compute analytics",
			"details": err.Error(),
		})
		return
	}

	q := r.URL.Query()
	filters := analytics.Filters{
		Query:           q.Get("q"),
		Source:          q.Get("source"),
		FeedbackKind:    q.Get("feedback_type"),
		Urgency:         q.Get("urgency_level"),
		AudienceType:    q.Get("user_type"),
		ProductCategory: q.Get("product_category"),
		Region:          q.Get("region"),
		Timeline:        q.Get("timeline"),
	}

	view := analytics.Aggregate(records, filters, time.Now())
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
