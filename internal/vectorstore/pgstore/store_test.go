package pgstore

import (
	"context"
	"testing"

	"conversation-assistant-be/internal/entity"
	"conversation-assistant-be/internal/repository/contract"
	"conversation-assistant-be/internal/repository/specification"
	"conversation-assistant-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKnowledgeRepo struct {
	created []*entity.KnowledgeRecord
	scored  []*contract.ScoredKnowledgeRecord
	deleted []string
}

func (f *fakeKnowledgeRepo) CreateBulk(_ context.Context, records []*entity.KnowledgeRecord) error {
	f.created = append(f.created, records...)
	return nil
}

func (f *fakeKnowledgeRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeKnowledgeRepo) DeleteByNamespace(_ context.Context, namespace string) error {
	f.deleted = append(f.deleted, namespace)
	return nil
}

func (f *fakeKnowledgeRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.KnowledgeRecord, error) {
	return nil, nil
}

func (f *fakeKnowledgeRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return 0, nil
}

func (f *fakeKnowledgeRepo) SearchSimilar(_ context.Context, _ string, _ []float32, _ int) ([]*contract.ScoredKnowledgeRecord, error) {
	return f.scored, nil
}

func TestStoreUpsertMapsRecords(t *testing.T) {
	repo := &fakeKnowledgeRepo{}
	store := New(repo)

	err := store.Upsert(context.Background(), "twitter-space-launch", []vectorstore.Record{
		{
			Id:       uuid.New(),
			Vector:   []float32{0.1, 0.2},
			Text:     "first chunk",
			Metadata: map[string]interface{}{"chunk_index": 4},
		},
		{
			Id:     uuid.New(),
			Vector: []float32{0.3, 0.4},
			Text:   "second chunk",
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 2)

	assert.Equal(t, "twitter-space-launch", repo.created[0].Namespace)
	assert.Equal(t, "first chunk", repo.created[0].Document)
	assert.Equal(t, 4, repo.created[0].ChunkIndex)
	// Without explicit metadata the positional index is used.
	assert.Equal(t, 1, repo.created[1].ChunkIndex)
}

func TestStoreQueryReportsSimilarityAsScore(t *testing.T) {
	repo := &fakeKnowledgeRepo{
		scored: []*contract.ScoredKnowledgeRecord{
			{
				Record:     &entity.KnowledgeRecord{Document: "closest", Metadata: map[string]interface{}{"source": "upload"}},
				Similarity: 0.93,
			},
			{
				Record:     &entity.KnowledgeRecord{Document: "further"},
				Similarity: 0.41,
			},
		},
	}
	store := New(repo)

	matches, err := store.Query(context.Background(), "twitter-space-launch", []float32{0.1, 0.2}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "closest", matches[0].Text)
	assert.InDelta(t, 0.93, matches[0].Score, 1e-9)
	assert.Equal(t, "upload", matches[0].Metadata["source"])
	assert.InDelta(t, 0.41, matches[1].Score, 1e-9)
}

func TestStoreDeleteNamespaceDelegates(t *testing.T) {
	repo := &fakeKnowledgeRepo{}
	store := New(repo)

	require.NoError(t, store.DeleteNamespace(context.Background(), "linkedin-call-panel"))
	assert.Equal(t, []string{"linkedin-call-panel"}, repo.deleted)
}

func TestOpenRejectsMismatchedEmbeddingDimension(t *testing.T) {
	// The dimension guard fires before any database work, so a nil DB
	// is fine here.
	store, err := Open(nil, 768)
	require.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "768")
	assert.Contains(t, err.Error(), "1536")
}
