package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice matches the order of the input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// FeedbackClassifier analyzes one feedback item and returns the model's raw
// response. Callers must treat the result as untrusted output and run it
// through the classify package; implementations make no guarantee the
// response is well-formed JSON.
// Implementations must be thread-safe for concurrent use.
type FeedbackClassifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// FeedbackClassifier instances, ensuring they share configuration and
// resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Classifier returns the feedback classification service.
	Classifier() FeedbackClassifier

	// Close releases resources held by the provider and its services.
	Close() error
}
