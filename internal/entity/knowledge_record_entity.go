package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeRecord is one embedded chunk of background knowledge,
// scoped to a namespace ("{profile}-{topic}").
type KnowledgeRecord struct {
	Id             uuid.UUID
	Namespace      string
	Document       string
	EmbeddingValue []float32
	ChunkIndex     int
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
