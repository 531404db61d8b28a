package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/pulse/ai"
	"github.com/poiesic/pulse/classify"
	"github.com/poiesic/pulse/core"
	"github.com/poiesic/pulse/storage"
	"github.com/poiesic/pulse/vector"
	"golang.org/x/sync/errgroup"
)

// Pipeline orchestrates classification, embedding, persistence, and
// indexing of feedback submissions.
type Pipeline struct {
	repository storage.FeedbackRepository
	index      vector.Index
	classifier ai.FeedbackClassifier
	embedder   ai.Embedder
	indexPool  *ants.Pool
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for async index updates.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.indexPool != nil {
			p.indexPool.Release()
		}

		indexPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.indexPool = indexPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	repository storage.FeedbackRepository,
	index vector.Index,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	indexPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		index:      index,
		classifier: provider.Classifier(),
		embedder:   provider.Embedder(),
		indexPool:  indexPool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Request is a single feedback submission. Text and Source are required;
// everything else is optional and defaulted during ingestion.
type Request struct {
	Text        string
	Source      string
	Region      string
	SubmitterID string
	Urgency     string
	ReceivedAt  time.Time
}

// Ingest validates, classifies, embeds, persists, and indexes a submission.
//
// Classification runs concurrently with embedding. A classifier failure
// degrades the record to default field values; an embedding or storage
// failure fails the whole operation and nothing is persisted. The vector
// index update happens asynchronously and its failures are only logged.
func (p *Pipeline) Ingest(ctx context.Context, req Request) (*core.FeedbackRecord, classify.Classification, error) {
	if err := core.ValidateSubmission(req.Text, req.Source); err != nil {
		return nil, classify.Classification{}, err
	}

	id := core.NewID()

	var rawClassification string
	var embedding []float32

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		raw, err := p.classifier.Classify(gctx, req.Text)
		if err != nil {
			// Degrade to defaults rather than losing the submission
			p.logger.Error("classification failed, falling back to defaults",
				"id", id, "err", err)
			return nil
		}
		rawClassification = raw
		return nil
	})
	g.Go(func() error {
		vec, err := p.embedder.EmbedText(gctx, req.Text)
		if err != nil {
			return fmt.Errorf("%w: embedding: %w", core.ErrUpstreamFailure, err)
		}
		embedding = vec
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, classify.Classification{}, err
	}

	analysis := classify.Normalize(rawClassification, req.Text, classify.Overrides{
		Urgency: req.Urgency,
	})

	record := p.buildRecord(id, req, analysis)
	if err := p.repository.Put(ctx, record); err != nil {
		return nil, classify.Classification{}, err
	}

	entry := vector.Entry{
		ID:     record.ID,
		Vector: embedding,
		Metadata: vector.Metadata{
			Text:            vector.TruncateText(record.OriginalText),
			Source:          record.Source,
			ProductCategory: record.ProductCategory,
			Urgency:         record.Urgency,
		},
	}
	if err := p.indexPool.Submit(func() {
		if err := p.index.Upsert(context.Background(), entry); err != nil {
			p.logger.Error("error indexing feedback embedding", "id", entry.ID, "err", err)
		}
	}); err != nil {
		p.logger.Error("error submitting index update", "id", entry.ID, "err", err)
	}

	return record, analysis, nil
}

func (p *Pipeline) buildRecord(id string, req Request, analysis classify.Classification) *core.FeedbackRecord {
	receivedAt := req.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	submitterID := req.SubmitterID
	if submitterID == "" {
		submitterID = core.ValueUnknown
	}
	region := req.Region
	if region == "" {
		region = core.ValueUnknown
	}

	return &core.FeedbackRecord{
		ID:                id,
		ReceivedAt:        receivedAt,
		SubmitterID:       submitterID,
		Source:            req.Source,
		ProductCategory:   analysis.ProductCategory,
		AudienceType:      analysis.AudienceType,
		Urgency:           analysis.Urgency,
		FeedbackKind:      analysis.FeedbackKind,
		Region:            region,
		Summary:           analysis.Summary,
		RecommendedAction: analysis.RecommendedAction,
		Status:            core.StatusOpen,
		OriginalText:      req.Text,
		SentimentScore:    analysis.SentimentScore,
		NPSClass:          analysis.NPSClass,
	}
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.indexPool != nil {
		p.indexPool.Release()
	}
}
