package mapper

import (
	"encoding/json"
	"time"

	"conversation-assistant-be/internal/entity"
	"conversation-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeRecordMapper struct{}

func NewKnowledgeRecordMapper() *KnowledgeRecordMapper {
	return &KnowledgeRecordMapper{}
}

func (m *KnowledgeRecordMapper) ToEntity(e *model.KnowledgeRecord) *entity.KnowledgeRecord {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		// Ignore malformed metadata rather than failing the read
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.KnowledgeRecord{
		Id:             e.Id,
		Namespace:      e.Namespace,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		ChunkIndex:     e.ChunkIndex,
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *KnowledgeRecordMapper) ToModel(e *entity.KnowledgeRecord) *model.KnowledgeRecord {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	var metadata datatypes.JSON
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = raw
		}
	}

	return &model.KnowledgeRecord{
		Id:             e.Id,
		Namespace:      e.Namespace,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		ChunkIndex:     e.ChunkIndex,
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *KnowledgeRecordMapper) ToEntities(records []*model.KnowledgeRecord) []*entity.KnowledgeRecord {
	entities := make([]*entity.KnowledgeRecord, len(records))
	for i, e := range records {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *KnowledgeRecordMapper) ToModels(records []*entity.KnowledgeRecord) []*model.KnowledgeRecord {
	models := make([]*model.KnowledgeRecord, len(records))
	for i, e := range records {
		models[i] = m.ToModel(e)
	}
	return models
}
