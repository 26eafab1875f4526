// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from VectorIndex which stores and searches vectors.
// EmbeddingService generates vectors; VectorIndex stores them.
//
// Implementations may include:
//   - Built-in feature hashing (offline)
//   - Ollama (mxbai-embed-large, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Google Gemini (text-embedding-004)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, in input order.
	// Results must equal calling Embed on each text in turn.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1024, 1536).
	// This is determined by the model and must match VectorIndex configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	// This is used at startup to verify the model before committing to it.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
