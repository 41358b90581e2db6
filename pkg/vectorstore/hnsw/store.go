package hnsw

import (
	"context"
	"errors"
	"math"
	"sync"

	"conversation-assistant-be/pkg/vectorstore"

	"github.com/coder/hnsw"
	"github.com/google/uuid"
)

// MemoryStore is an in-process vectorstore.Store backed by one HNSW graph
// per namespace. Intended for development, simulation and tests; nothing
// survives a restart.
type MemoryStore struct {
	dim        int
	mu         sync.Mutex
	namespaces map[string]*namespaceIndex
}

type namespaceIndex struct {
	graph   *hnsw.Graph[string]
	records map[string]vectorstore.Record
}

var _ vectorstore.Store = (*MemoryStore)(nil)

func NewMemoryStore(dim int) *MemoryStore {
	return &MemoryStore{
		dim:        dim,
		namespaces: make(map[string]*namespaceIndex),
	}
}

func (s *MemoryStore) Upsert(ctx context.Context, namespace string, records []vectorstore.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.namespaces[namespace]
	if !ok {
		idx = &namespaceIndex{
			graph:   hnsw.NewGraph[string](),
			records: make(map[string]vectorstore.Record),
		}
		s.namespaces[namespace] = idx
	}

	for _, rec := range records {
		if len(rec.Vector) != s.dim {
			return errors.New("embedding dimension mismatch")
		}
		key := rec.Id.String()
		if rec.Id == uuid.Nil {
			key = uuid.NewString()
		}
		idx.graph.Add(hnsw.MakeNode(key, rec.Vector))
		idx.records[key] = rec
	}
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorstore.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(vector) != s.dim {
		return nil, errors.New("query embedding dimension mismatch")
	}
	if topK <= 0 {
		topK = 5
	}

	idx, ok := s.namespaces[namespace]
	if !ok {
		return nil, nil
	}

	neighbors := idx.graph.Search(vector, topK)

	matches := make([]vectorstore.Match, 0, len(neighbors))
	for _, node := range neighbors {
		rec, ok := idx.records[node.Key]
		if !ok {
			continue
		}
		matches = append(matches, vectorstore.Match{
			Text:     rec.Text,
			Score:    cosineSimilarity(vector, node.Value),
			Metadata: rec.Metadata,
		})
	}
	return matches, nil
}

func (s *MemoryStore) DeleteNamespace(ctx context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.namespaces, namespace)
	return nil
}

// cosineSimilarity computes the cosine similarity between two []float32 vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := 0; i < len(a); i++ {
		dot += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
