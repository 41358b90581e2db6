// Package pgstore adapts the knowledge record repository to the
// vectorstore.Store contract so the assistant can run against
// Postgres/pgvector instead of the in-memory index.
package pgstore

import (
	"context"
	"fmt"

	"conversation-assistant-be/internal/entity"
	"conversation-assistant-be/internal/model"
	"conversation-assistant-be/internal/repository/contract"
	"conversation-assistant-be/internal/repository/implementation"
	"conversation-assistant-be/pkg/vectorstore"

	"gorm.io/gorm"
)

type Store struct {
	repo contract.KnowledgeRecordRepository
}

func New(repo contract.KnowledgeRecordRepository) *Store {
	return &Store{repo: repo}
}

// Open bootstraps the pgvector schema and returns a Store backed by db.
// The embedding dimension must match the vector column; a mismatched
// provider is rejected up front instead of failing on every insert.
func Open(db *gorm.DB, embeddingDim int) (*Store, error) {
	if embeddingDim != model.EmbeddingDim {
		return nil, fmt.Errorf("pgvector column holds %d-dimensional vectors but the embedding provider produces %d; use VECTOR_STORE=memory or a %d-dimensional embedding model", model.EmbeddingDim, embeddingDim, model.EmbeddingDim)
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return New(implementation.NewKnowledgeRecordRepository(db)), nil
}

// EnsureSchema idempotently creates the vector extension, the
// knowledge_records table and its ANN index, so a fresh database works
// without a separate migration step.
func EnsureSchema(db *gorm.DB) error {
	for _, stmt := range []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
		`CREATE EXTENSION IF NOT EXISTS vector`,
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create extension: %w", err)
		}
	}

	if err := db.AutoMigrate(&model.KnowledgeRecord{}); err != nil {
		return fmt.Errorf("migrate knowledge records: %w", err)
	}

	indexSQL := `CREATE INDEX IF NOT EXISTS idx_knowledge_records_embedding
		 ON knowledge_records USING hnsw (embedding_value vector_cosine_ops)`
	if err := db.Exec(indexSQL).Error; err != nil {
		return fmt.Errorf("create ann index: %w", err)
	}
	return nil
}

var _ vectorstore.Store = (*Store)(nil)

func (s *Store) Upsert(ctx context.Context, namespace string, records []vectorstore.Record) error {
	if len(records) == 0 {
		return nil
	}

	entities := make([]*entity.KnowledgeRecord, len(records))
	for i, rec := range records {
		chunkIndex := i
		if idx, ok := rec.Metadata["chunk_index"].(int); ok {
			chunkIndex = idx
		}
		entities[i] = &entity.KnowledgeRecord{
			Id:             rec.Id,
			Namespace:      namespace,
			Document:       rec.Text,
			EmbeddingValue: rec.Vector,
			ChunkIndex:     chunkIndex,
			Metadata:       rec.Metadata,
		}
	}

	return s.repo.CreateBulk(ctx, entities)
}

func (s *Store) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorstore.Match, error) {
	scored, err := s.repo.SearchSimilar(ctx, namespace, vector, topK)
	if err != nil {
		return nil, err
	}

	matches := make([]vectorstore.Match, len(scored))
	for i, sr := range scored {
		matches[i] = vectorstore.Match{
			Text:     sr.Record.Document,
			Score:    sr.Similarity,
			Metadata: sr.Record.Metadata,
		}
	}
	return matches, nil
}

func (s *Store) DeleteNamespace(ctx context.Context, namespace string) error {
	return s.repo.DeleteByNamespace(ctx, namespace)
}
