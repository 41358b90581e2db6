package contract

import (
	"context"

	"conversation-assistant-be/internal/entity"
	"conversation-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredKnowledgeRecord wraps KnowledgeRecord with its similarity score
type ScoredKnowledgeRecord struct {
	Record     *entity.KnowledgeRecord
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type KnowledgeRecordRepository interface {
	CreateBulk(ctx context.Context, records []*entity.KnowledgeRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByNamespace(ctx context.Context, namespace string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar returns the closest records in a namespace by cosine distance,
	// with their similarity scores.
	SearchSimilar(ctx context.Context, namespace string, embedding []float32, limit int) ([]*ScoredKnowledgeRecord, error)
}
