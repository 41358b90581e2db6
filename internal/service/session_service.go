package service

import (
	"context"
	"errors"
	"io"

	"conversation-assistant-be/internal/config"
	"conversation-assistant-be/internal/dto"
	"conversation-assistant-be/internal/pkg/logger"
	internalWS "conversation-assistant-be/internal/websocket"
	"conversation-assistant-be/pkg/assistant"
	"conversation-assistant-be/pkg/events"
	"conversation-assistant-be/pkg/llm"
	pktNats "conversation-assistant-be/pkg/nats"
	"conversation-assistant-be/pkg/transcribe"

	"github.com/patrickmn/go-cache"
)

var (
	ErrSessionNotFound        = errors.New("no active session for topic")
	ErrSessionExists          = errors.New("session already active for topic")
	ErrTranscriberUnavailable = errors.New("audio transcription is not configured")
)

type ISessionService interface {
	Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error)
	Ingest(ctx context.Context, topic, segment string) (*dto.IngestSegmentResponse, error)
	IngestAudio(ctx context.Context, topic, filename string, audio io.Reader) (*dto.TranscribeSegmentResponse, error)
	Show(ctx context.Context, topic string) (*dto.ShowSessionResponse, error)
	Stop(ctx context.Context, topic string) error
	ProfileFor(topic string) (assistant.Profile, bool)
}

type sessionService struct {
	sessions       *cache.Cache // topic -> *assistant.Session
	contextStore   assistant.ContextStore
	llmProvider    llm.Provider
	transcriber    transcribe.Provider
	hub            *internalWS.Hub
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	cfg            config.AssistantConfig
}

func NewSessionService(
	contextStore assistant.ContextStore,
	llmProvider llm.Provider,
	transcriber transcribe.Provider,
	hub *internalWS.Hub,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	cfg config.AssistantConfig,
) ISessionService {
	return &sessionService{
		sessions:       cache.New(cache.NoExpiration, 0),
		contextStore:   contextStore,
		llmProvider:    llmProvider,
		transcriber:    transcriber,
		hub:            hub,
		eventPublisher: eventPublisher,
		logger:         log,
		cfg:            cfg,
	}
}

func (s *sessionService) Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.StartSessionResponse, error) {
	if _, found := s.sessions.Get(req.Topic); found {
		return nil, ErrSessionExists
	}

	profileName := req.Profile
	if profileName == "" {
		profileName = s.cfg.DefaultProfile
	}
	profile := assistant.ProfileByName(profileName)

	topic := req.Topic
	hook := func(window, questions, background string) {
		s.hub.Broadcast(topic, "questions", map[string]interface{}{
			"topic":      topic,
			"questions":  questions,
			"background": background,
		})
		if s.eventPublisher != nil {
			event := events.NewQuestionsGenerated(topic, window, questions, background)
			if err := s.eventPublisher.Publish(context.Background(), event); err != nil {
				s.logger.Warn("SessionService", "Failed to publish questions event", map[string]interface{}{"topic": topic, "error": err.Error()})
			}
		}
	}

	session := assistant.NewSession(assistant.Config{
		Profile:       profile,
		BufferLimit:   s.cfg.BufferLimit,
		TriggerPeriod: s.cfg.TriggerPeriod,
		TopK:          s.cfg.TopK,
		Guidance:      req.Guidance,
	}, s.contextStore, s.llmProvider, hook)
	session.Start(topic)

	s.sessions.Set(topic, session, cache.NoExpiration)
	s.logger.Info("SessionService", "Session started", map[string]interface{}{"topic": topic, "profile": profile.Name})

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewSessionStarted(topic, profile.Name)); err != nil {
			s.logger.Warn("SessionService", "Failed to publish session started event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.StartSessionResponse{
		Topic:   topic,
		Profile: profile.Name,
		State:   string(session.State()),
	}, nil
}

func (s *sessionService) Ingest(ctx context.Context, topic, segment string) (*dto.IngestSegmentResponse, error) {
	session, err := s.lookup(topic)
	if err != nil {
		return nil, err
	}

	res, err := session.IngestSegment(ctx, segment)
	if err != nil {
		return nil, err
	}

	out := &dto.IngestSegmentResponse{
		Triggered:        res.Triggered,
		Questions:        res.Questions,
		Summary:          res.Summary,
		SummaryPersisted: res.SummaryPersisted,
	}
	if res.Err != nil {
		out.Warning = res.Err.Error()
		s.logger.Warn("SessionService", "Trigger cycle completed with errors", map[string]interface{}{"topic": topic, "error": res.Err.Error()})
	}
	return out, nil
}

func (s *sessionService) IngestAudio(ctx context.Context, topic, filename string, audio io.Reader) (*dto.TranscribeSegmentResponse, error) {
	if _, err := s.lookup(topic); err != nil {
		return nil, err
	}
	if s.transcriber == nil {
		return nil, ErrTranscriberUnavailable
	}

	transcript, err := s.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		return nil, err
	}

	ingest, err := s.Ingest(ctx, topic, transcript)
	if err != nil {
		return nil, err
	}

	return &dto.TranscribeSegmentResponse{
		Transcript: transcript,
		Ingest:     *ingest,
	}, nil
}

func (s *sessionService) Show(ctx context.Context, topic string) (*dto.ShowSessionResponse, error) {
	session, err := s.lookup(topic)
	if err != nil {
		return nil, err
	}

	questions, summary := session.Latest()
	return &dto.ShowSessionResponse{
		Topic:           topic,
		Profile:         session.Profile().Name,
		State:           string(session.State()),
		Window:          session.Window(),
		SegmentCount:    session.Len(),
		LatestQuestions: questions,
		LatestSummary:   summary,
	}, nil
}

func (s *sessionService) Stop(ctx context.Context, topic string) error {
	session, err := s.lookup(topic)
	if err != nil {
		return err
	}

	session.Stop()
	s.sessions.Delete(topic)
	s.logger.Info("SessionService", "Session stopped", map[string]interface{}{"topic": topic})

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewSessionStopped(topic)); err != nil {
			s.logger.Warn("SessionService", "Failed to publish session stopped event", map[string]interface{}{"error": err.Error()})
		}
	}
	return nil
}

func (s *sessionService) ProfileFor(topic string) (assistant.Profile, bool) {
	session, err := s.lookup(topic)
	if err != nil {
		return assistant.Profile{}, false
	}
	return session.Profile(), true
}

func (s *sessionService) lookup(topic string) (*assistant.Session, error) {
	raw, found := s.sessions.Get(topic)
	if !found {
		return nil, ErrSessionNotFound
	}
	session, ok := raw.(*assistant.Session)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
