package embedding

import "context"

// Provider defines the interface for generating text embeddings.
type Provider interface {
	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the fixed output size of the configured model.
	// Vector stores use it to bootstrap their schema.
	Dimension() int
}
