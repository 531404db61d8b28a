// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package pulse wires the feedback intelligence components together:
// storage backend, vector index, AI provider, ingestion pipeline, and
// searcher.
package pulse

import (
	"log/slog"

	"github.com/poiesic/pulse/ai"
	"github.com/poiesic/pulse/ai/openai"
	"github.com/poiesic/pulse/ingestion"
	"github.com/poiesic/pulse/search"
	"github.com/poiesic/pulse/storage"
	"github.com/poiesic/pulse/storage/badger"
	"github.com/poiesic/pulse/vector"
	"github.com/poiesic/pulse/vector/memory"
	"github.com/poiesic/pulse/vector/qdrant"
)

// Service owns the long-lived dependencies of the feedback system.
type Service struct {
	backend  *badger.Backend
	repo     storage.FeedbackRepository
	index    vector.Index
	provider ai.Provider
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	inMemory bool
	qdrant   *qdrant.Config
}

// WithAIConfig overrides the default AI service configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemoryStore keeps all records in memory instead of on disk.
// Intended for tests and local experiments.
func WithInMemoryStore() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// WithQdrantIndex uses a Qdrant server for the vector index instead of
// the in-process one.
func WithQdrantIndex(config qdrant.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.qdrant = &config
	}
}

// NewService opens the storage backend and builds the component graph.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repo := badger.NewFeedbackRepository(backend)

	var index vector.Index
	if options.qdrant != nil {
		index = qdrant.NewIndex(*options.qdrant)
	} else {
		index = memory.NewIndex()
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:  backend,
		repo:     repo,
		index:    index,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// FeedbackRepository exposes the record store.
func (s *Service) FeedbackRepository() storage.FeedbackRepository {
	return s.repo
}

// Index exposes the vector index.
func (s *Service) Index() vector.Index {
	return s.index
}

// NewIngestionPipeline builds an ingestion pipeline on this service's
// dependencies.
func (s *Service) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(s.repo, s.index, s.provider, opts...)
}

// NewSearcher builds a searcher on this service's dependencies.
func (s *Service) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.repo, s.index, s.provider, opts...)
}

// Close releases the AI provider, repository, and storage backend.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.repo.Close(); err != nil {
		s.logger.Error("error closing feedback repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
