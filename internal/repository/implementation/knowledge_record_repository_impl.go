package implementation

import (
	"context"

	"conversation-assistant-be/internal/entity"
	"conversation-assistant-be/internal/mapper"
	"conversation-assistant-be/internal/model"
	"conversation-assistant-be/internal/repository/contract"
	"conversation-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeRecordMapper
}

func NewKnowledgeRecordRepository(db *gorm.DB) contract.KnowledgeRecordRepository {
	return &KnowledgeRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeRecordMapper(),
	}
}

func (r *KnowledgeRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeRecordRepositoryImpl) CreateBulk(ctx context.Context, records []*entity.KnowledgeRecord) error {
	if len(records) == 0 {
		return nil
	}
	models := r.mapper.ToModels(records)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	// Update IDs back to entities
	for i, m := range models {
		*records[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *KnowledgeRecordRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.KnowledgeRecord{}, id).Error
}

func (r *KnowledgeRecordRepositoryImpl) DeleteByNamespace(ctx context.Context, namespace string) error {
	return r.db.WithContext(ctx).Where("namespace = ?", namespace).Delete(&model.KnowledgeRecord{}).Error
}

func (r *KnowledgeRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeRecord, error) {
	var models []*model.KnowledgeRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KnowledgeRecordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.KnowledgeRecord{}).Count(&count).Error
	return count, err
}

func (r *KnowledgeRecordRepositoryImpl) SearchSimilar(ctx context.Context, namespace string, embedding []float32, limit int) ([]*contract.ScoredKnowledgeRecord, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	// So we compute: 1 - (embedding_value <=> query_vector) = cosine_similarity
	type result struct {
		model.KnowledgeRecord
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("knowledge_records").
		Select("knowledge_records.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("namespace = ?", namespace).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredKnowledgeRecord, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredKnowledgeRecord{
			Record:     r.mapper.ToEntity(&res.KnowledgeRecord),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
