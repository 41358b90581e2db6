package service

import (
	"context"
	"encoding/json"
	"errors"

	"conversation-assistant-be/internal/config"
	"conversation-assistant-be/internal/dto"
	"conversation-assistant-be/internal/pkg/logger"
	"conversation-assistant-be/internal/repository/contract"
	"conversation-assistant-be/internal/repository/specification"
	"conversation-assistant-be/pkg/assistant"
	"conversation-assistant-be/pkg/contextstore"
	"conversation-assistant-be/pkg/events"
	pktNats "conversation-assistant-be/pkg/nats"

	"github.com/google/uuid"
)

// ErrRecordStoreUnavailable is returned for record inspection requests
// when the in-memory vector store is active and no database is wired.
var ErrRecordStoreUnavailable = errors.New("record inspection requires the database-backed vector store")

type IKnowledgeService interface {
	UploadContext(ctx context.Context, topic string, req *dto.UploadContextRequest) (*dto.UploadContextResponse, error)
	ClearTopic(ctx context.Context, topic, profileName string) error
	ListRecords(ctx context.Context, topic, profileName string, page, pageSize int) (*dto.ListRecordsResponse, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
}

type knowledgeService struct {
	publisherService IPublisherService
	sessionService   ISessionService
	contextStore     *contextstore.Store
	recordRepo       contract.KnowledgeRecordRepository
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
	cfg              config.AssistantConfig
}

func NewKnowledgeService(
	publisherService IPublisherService,
	sessionService ISessionService,
	contextStore *contextstore.Store,
	recordRepo contract.KnowledgeRecordRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	cfg config.AssistantConfig,
) IKnowledgeService {
	return &knowledgeService{
		publisherService: publisherService,
		sessionService:   sessionService,
		contextStore:     contextStore,
		recordRepo:       recordRepo,
		eventPublisher:   eventPublisher,
		logger:           log,
		cfg:              cfg,
	}
}

// UploadContext queues a background document for embedding. The work is
// asynchronous so large documents never block the request.
func (s *knowledgeService) UploadContext(ctx context.Context, topic string, req *dto.UploadContextRequest) (*dto.UploadContextResponse, error) {
	namespace := s.namespaceFor(topic, req.Profile)

	payload := dto.PublishIngestDocumentMessage{
		Namespace: namespace,
		Text:      req.Text,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		return nil, err
	}

	s.logger.Info("KnowledgeService", "Document queued for embedding", map[string]interface{}{"topic": topic, "namespace": namespace, "length": len(req.Text)})

	return &dto.UploadContextResponse{
		Topic:     topic,
		Namespace: namespace,
		Queued:    true,
	}, nil
}

// ClearTopic removes every knowledge record under the topic's namespace.
func (s *knowledgeService) ClearTopic(ctx context.Context, topic, profileName string) error {
	namespace := s.namespaceFor(topic, profileName)

	if err := s.contextStore.Clear(ctx, namespace); err != nil {
		return err
	}

	s.logger.Info("KnowledgeService", "Topic cleared", map[string]interface{}{"topic": topic, "namespace": namespace})

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewTopicCleared(topic, namespace)); err != nil {
			s.logger.Warn("KnowledgeService", "Failed to publish topic cleared event", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

// ListRecords pages through the stored chunks of a topic's namespace,
// newest first.
func (s *knowledgeService) ListRecords(ctx context.Context, topic, profileName string, page, pageSize int) (*dto.ListRecordsResponse, error) {
	if s.recordRepo == nil {
		return nil, ErrRecordStoreUnavailable
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	namespace := s.namespaceFor(topic, profileName)
	byNamespace := specification.ByNamespace{Namespace: namespace}

	records, err := s.recordRepo.FindAll(ctx, byNamespace,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	if err != nil {
		return nil, err
	}
	total, err := s.recordRepo.Count(ctx, byNamespace)
	if err != nil {
		return nil, err
	}

	out := make([]dto.KnowledgeRecordResponse, len(records))
	for i, rec := range records {
		out[i] = dto.KnowledgeRecordResponse{
			Id:         rec.Id.String(),
			Document:   rec.Document,
			ChunkIndex: rec.ChunkIndex,
			CreatedAt:  rec.CreatedAt,
		}
	}

	return &dto.ListRecordsResponse{
		Topic:     topic,
		Namespace: namespace,
		Records:   out,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// DeleteRecord removes a single stored chunk by id.
func (s *knowledgeService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if s.recordRepo == nil {
		return ErrRecordStoreUnavailable
	}
	return s.recordRepo.Delete(ctx, id)
}

// namespaceFor prefers the active session's profile so uploads land where
// the live session retrieves from.
func (s *knowledgeService) namespaceFor(topic, profileName string) string {
	if profile, ok := s.sessionService.ProfileFor(topic); ok {
		return profile.Namespace(topic)
	}
	if profileName == "" {
		profileName = s.cfg.DefaultProfile
	}
	return assistant.ProfileByName(profileName).Namespace(topic)
}
