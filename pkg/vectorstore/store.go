package vectorstore

import (
	"context"

	"github.com/google/uuid"
)

// Record is a persisted (vector, text, namespace) tuple.
type Record struct {
	Id       uuid.UUID
	Vector   []float32
	Text     string
	Metadata map[string]interface{}
}

// Match is a query result, most similar first.
type Match struct {
	Text     string
	Score    float64 // cosine similarity, 1.0 = identical
	Metadata map[string]interface{}
}

// Store is a namespaced vector index. Namespaces are isolated knowledge
// bases: a query never returns records from another namespace.
// Implementations must tolerate concurrent use across namespaces.
type Store interface {
	// Upsert persists records under the namespace. Records carry fresh
	// unique ids, so at-least-once delivery is harmless.
	Upsert(ctx context.Context, namespace string, records []Record) error

	// Query returns up to topK matches ranked by similarity. An empty
	// result set is valid, not an error.
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]Match, error)

	// DeleteNamespace removes every record under the namespace.
	// Idempotent: clearing an empty or unknown namespace succeeds.
	DeleteNamespace(ctx context.Context, namespace string) error
}
