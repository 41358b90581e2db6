package contextstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conversation-assistant-be/pkg/embedding"
	"conversation-assistant-be/pkg/textsplit"
	"conversation-assistant-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

var (
	// ErrStoreUnavailable wraps vector store failures on ingest/clear.
	// The operation is a no-op from the caller's perspective; retrying is safe.
	ErrStoreUnavailable = errors.New("context store unavailable")

	// ErrRetrievalFailed wraps embedding or query failures during retrieval.
	ErrRetrievalFailed = errors.New("context retrieval failed")
)

const DefaultTopK = 5

// Store wraps embed+upsert and embed+query against a namespaced vector
// index. One namespace is one logically independent knowledge base.
type Store struct {
	provider      embedding.Provider
	index         vectorstore.Store
	chunkMaxWords int
	queryCache    *cache.Cache
}

type Option func(*Store)

// WithChunkMaxWords overrides the chunk size used during ingestion.
func WithChunkMaxWords(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.chunkMaxWords = n
		}
	}
}

func New(provider embedding.Provider, index vectorstore.Store, opts ...Option) *Store {
	s := &Store{
		provider:      provider,
		index:         index,
		chunkMaxWords: textsplit.DefaultMaxWords,
		// Retrieval re-embeds the same live window often; cache the vectors briefly.
		queryCache: cache.New(5*time.Minute, 10*time.Minute),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest chunks text, embeds each chunk and upserts each as a knowledge
// record under the namespace. Records carry fresh ids, so duplicate
// ingestion of the same text only adds redundant neighbors and is
// harmless for top-k retrieval.
func (s *Store) Ingest(ctx context.Context, text, namespace string) error {
	chunks := textsplit.SplitWords(text, s.chunkMaxWords)
	if len(chunks) == 0 {
		return nil
	}

	records := make([]vectorstore.Record, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := s.provider.Embed(ctx, chunk)
		if err != nil {
			return fmt.Errorf("%w: embed chunk %d: %v", ErrStoreUnavailable, i, err)
		}
		records = append(records, vectorstore.Record{
			Id:     uuid.New(),
			Vector: vector,
			Text:   chunk,
			Metadata: map[string]interface{}{
				"text":        chunk,
				"chunk_index": i,
			},
		})
	}

	if err := s.index.Upsert(ctx, namespace, records); err != nil {
		return fmt.Errorf("%w: upsert: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Retrieve embeds the query, runs a similarity search scoped to the
// namespace and returns the matched texts newline-joined in rank order.
// An empty string means "no background context yet", which is a valid
// state rather than an error.
func (s *Store) Retrieve(ctx context.Context, query, namespace string, topK int) (string, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := s.embedQuery(ctx, query)
	if err != nil {
		return "", fmt.Errorf("%w: embed query: %v", ErrRetrievalFailed, err)
	}

	matches, err := s.index.Query(ctx, namespace, vector, topK)
	if err != nil {
		return "", fmt.Errorf("%w: query: %v", ErrRetrievalFailed, err)
	}

	texts := make([]string, 0, len(matches))
	for _, m := range matches {
		texts = append(texts, m.Text)
	}
	return strings.Join(texts, "\n"), nil
}

// Clear deletes every knowledge record under the namespace. Clearing an
// empty or unknown namespace succeeds silently.
func (s *Store) Clear(ctx context.Context, namespace string) error {
	if err := s.index.DeleteNamespace(ctx, namespace); err != nil {
		return fmt.Errorf("%w: delete namespace: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Store) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if cached, found := s.queryCache.Get(query); found {
		return cached.([]float32), nil
	}

	vector, err := s.provider.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	s.queryCache.Set(query, vector, cache.DefaultExpiration)
	return vector, nil
}
