package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/poiesic/pulse/ai"
	"github.com/poiesic/pulse/core"
	"github.com/poiesic/pulse/storage"
	"github.com/poiesic/pulse/vector"
)

// DefaultTopK is how many results a search returns when the caller does
// not say otherwise.
const DefaultTopK = 5

// Result is a feedback record paired with its similarity score.
// Score is nil when the record was not ranked by the index.
type Result struct {
	Record *core.FeedbackRecord
	Score  *float64
}

// Searcher provides semantic search over stored feedback records.
type Searcher struct {
	repository storage.FeedbackRepository
	index      vector.Index
	embedder   ai.Embedder
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	repository storage.FeedbackRepository,
	index vector.Index,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	s := &Searcher{
		repository: repository,
		index:      index,
		embedder:   provider.Embedder(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search embeds the query and returns up to topK matching records ranked
// by similarity. topK values below 1 use DefaultTopK. An empty index
// yields an empty result set, not an error.
func (s *Searcher) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}
	if topK < 1 {
		topK = DefaultTopK
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("%w: embedding: %w", core.ErrUpstreamFailure, err)
	}

	matches, err := s.index.Query(ctx, embedding, topK)
	if err != nil {
		s.logger.Error("error querying vector index", "err", err)
		return nil, err
	}
	if len(matches) == 0 {
		return []Result{}, nil
	}

	scores := make(map[string]float64, len(matches))
	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		scores[match.ID] = match.Score
		ids = append(ids, match.ID)
	}

	// Records evicted from the store since indexing are dropped here
	records, err := s.repository.GetByIDs(ctx, ids...)
	if err != nil {
		s.logger.Error("error retrieving feedback records", "recordCount", len(ids), "err", err)
		return nil, err
	}

	results := make([]Result, 0, len(records))
	for _, record := range records {
		result := Result{Record: record}
		if score, ok := scores[record.ID]; ok {
			result.Score = &score
		}
		results = append(results, result)
	}

	// Sort by score descending, unscored records last
	sort.SliceStable(results, func(i, j int) bool {
		si, sj := results[i].Score, results[j].Score
		if si == nil {
			return false
		}
		if sj == nil {
			return true
		}
		return *si > *sj
	})

	return results, nil
}
