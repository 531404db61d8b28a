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


package mock

import "github.com/poiesic/pulse/ai"

// MockProvider is a test double for ai.Provider aggregating the mock
// embedder and classifier.
type MockProvider struct {
	MockEmbedder   *MockEmbedder
	MockClassifier *MockClassifier
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider backed by fresh mocks with default
// deterministic behavior.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		MockEmbedder:   NewMockEmbedder(),
		MockClassifier: NewMockClassifier(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.MockEmbedder
}

// Classifier returns the mock classification service.
func (p *MockProvider) Classifier() ai.FeedbackClassifier {
	return p.MockClassifier
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}
