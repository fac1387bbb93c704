// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// Embedding prefixes. Models trained on the query/passage convention only
// produce comparable vectors when both sides are prefixed.
const (
	QueryPrefix   = "query: "
	PassagePrefix = "passage: "
)

// EmbeddingService generates vector embeddings from text.
// Callers are responsible for applying QueryPrefix or PassagePrefix.
//
// Implementations may include:
//   - OpenAI-compatible servers (text-embeddings-inference, vLLM, OpenAI)
//   - Ollama (multilingual-e5, nomic-embed-text)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// The result has one vector per input, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1024).
	// Returns 0 until the first embedding when the model is unknown.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
