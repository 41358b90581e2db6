package service

import (
	"context"
	"testing"
	"time"

	"conversation-assistant-be/internal/entity"
	"conversation-assistant-be/internal/repository/contract"
	"conversation-assistant-be/internal/repository/specification"
	internalWS "conversation-assistant-be/internal/websocket"
	"conversation-assistant-be/pkg/contextstore"
	"conversation-assistant-be/pkg/vectorstore/hnsw"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecordRepo struct {
	records []*entity.KnowledgeRecord
	total   int64
	deleted []uuid.UUID
}

func (s *stubRecordRepo) CreateBulk(_ context.Context, _ []*entity.KnowledgeRecord) error {
	return nil
}

func (s *stubRecordRepo) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubRecordRepo) DeleteByNamespace(_ context.Context, _ string) error { return nil }

func (s *stubRecordRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.KnowledgeRecord, error) {
	return s.records, nil
}

func (s *stubRecordRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return s.total, nil
}

func (s *stubRecordRepo) SearchSimilar(_ context.Context, _ string, _ []float32, _ int) ([]*contract.ScoredKnowledgeRecord, error) {
	return nil, nil
}

func newKnowledgeServiceWithRepo(t *testing.T, repo contract.KnowledgeRecordRepository) IKnowledgeService {
	t.Helper()
	store := contextstore.New(wordHashEmbedder{}, hnsw.NewMemoryStore(testEmbeddingDim))
	hub := internalWS.NewHub(nil, nopLogger{})
	cfg := newTestAssistantConfig()
	sessionSvc := NewSessionService(store, cannedLLM{}, nil, hub, nil, nopLogger{}, cfg)
	return NewKnowledgeService(nil, sessionSvc, store, repo, nil, nopLogger{}, cfg)
}

func TestKnowledgeServiceListRecords(t *testing.T) {
	now := time.Now()
	repo := &stubRecordRepo{
		records: []*entity.KnowledgeRecord{
			{Id: uuid.New(), Namespace: "twitter-space-launch", Document: "second chunk", ChunkIndex: 1, CreatedAt: now},
			{Id: uuid.New(), Namespace: "twitter-space-launch", Document: "first chunk", ChunkIndex: 0, CreatedAt: now.Add(-time.Minute)},
		},
		total: 42,
	}
	svc := newKnowledgeServiceWithRepo(t, repo)

	// Out-of-range paging falls back to the defaults.
	res, err := svc.ListRecords(context.Background(), "launch", "", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, "launch", res.Topic)
	assert.Equal(t, "twitter-space-launch", res.Namespace)
	assert.Equal(t, int64(42), res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.PageSize)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "second chunk", res.Records[0].Document)
	assert.Equal(t, 1, res.Records[0].ChunkIndex)
	assert.Equal(t, repo.records[0].Id.String(), res.Records[0].Id)
}

func TestKnowledgeServiceDeleteRecordDelegates(t *testing.T) {
	repo := &stubRecordRepo{}
	svc := newKnowledgeServiceWithRepo(t, repo)

	id := uuid.New()
	require.NoError(t, svc.DeleteRecord(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id}, repo.deleted)
}

func TestKnowledgeServiceRecordsNeedDatabaseStore(t *testing.T) {
	svc := newKnowledgeServiceWithRepo(t, nil)

	_, err := svc.ListRecords(context.Background(), "launch", "", 1, 20)
	assert.ErrorIs(t, err, ErrRecordStoreUnavailable)

	assert.ErrorIs(t, svc.DeleteRecord(context.Background(), uuid.New()), ErrRecordStoreUnavailable)
}
