package service

import (
	"context"
	"hash/fnv"
	"strings"
	"testing"
	"time"

	"conversation-assistant-be/internal/config"
	"conversation-assistant-be/internal/dto"
	internalWS "conversation-assistant-be/internal/websocket"
	"conversation-assistant-be/pkg/assistant"
	"conversation-assistant-be/pkg/contextstore"
	"conversation-assistant-be/pkg/llm"
	"conversation-assistant-be/pkg/vectorstore/hnsw"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmbeddingDim = 32

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type wordHashEmbedder struct{}

func (wordHashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, testEmbeddingDim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%testEmbeddingDim]++
	}
	return vec, nil
}

func (wordHashEmbedder) Dimension() int { return testEmbeddingDim }

type cannedLLM struct{}

func (cannedLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	if strings.HasPrefix(prompt, "Summarize") {
		return "canned summary", nil
	}
	return "canned questions", nil
}

func (c cannedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	var last string
	if len(history) > 0 {
		last = history[len(history)-1].Content
	}
	return c.Generate(ctx, last, opts...)
}

func newTestAssistantConfig() config.AssistantConfig {
	return config.AssistantConfig{
		DefaultProfile: "twitter-space",
		TriggerPeriod:  2,
		TopK:           3,
		ChunkMaxWords:  500,
	}
}

func newTestSessionService(t *testing.T) (ISessionService, *contextstore.Store) {
	t.Helper()
	store := contextstore.New(wordHashEmbedder{}, hnsw.NewMemoryStore(testEmbeddingDim))
	hub := internalWS.NewHub(nil, nopLogger{})
	svc := NewSessionService(store, cannedLLM{}, nil, hub, nil, nopLogger{}, newTestAssistantConfig())
	return svc, store
}

func TestSessionServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSessionService(t)

	started, err := svc.Start(ctx, &dto.StartSessionRequest{Topic: "standup"})
	require.NoError(t, err)
	assert.Equal(t, "standup", started.Topic)
	assert.Equal(t, "twitter-space", started.Profile)
	assert.Equal(t, string(assistant.StateListening), started.State)

	_, err = svc.Start(ctx, &dto.StartSessionRequest{Topic: "standup"})
	assert.ErrorIs(t, err, ErrSessionExists)

	res, err := svc.Ingest(ctx, "standup", "first segment")
	require.NoError(t, err)
	assert.False(t, res.Triggered)

	res, err = svc.Ingest(ctx, "standup", "second segment")
	require.NoError(t, err)
	assert.True(t, res.Triggered)
	assert.Equal(t, "canned questions", res.Questions)
	assert.Equal(t, "canned summary", res.Summary)
	assert.True(t, res.SummaryPersisted)
	assert.Empty(t, res.Warning)

	shown, err := svc.Show(ctx, "standup")
	require.NoError(t, err)
	assert.Equal(t, "first segment second segment", shown.Window)
	assert.Equal(t, 2, shown.SegmentCount)
	assert.Equal(t, "canned questions", shown.LatestQuestions)

	require.NoError(t, svc.Stop(ctx, "standup"))
	_, err = svc.Ingest(ctx, "standup", "after stop")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionServiceUnknownTopic(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSessionService(t)

	_, err := svc.Ingest(ctx, "ghost", "segment")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.Show(ctx, "ghost")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, svc.Stop(ctx, "ghost"), ErrSessionNotFound)

	_, ok := svc.ProfileFor("ghost")
	assert.False(t, ok)
}

func TestKnowledgeServicePublishConsumeRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := contextstore.New(wordHashEmbedder{}, hnsw.NewMemoryStore(testEmbeddingDim))
	hub := internalWS.NewHub(nil, nopLogger{})
	cfg := newTestAssistantConfig()

	sessionSvc := NewSessionService(store, cannedLLM{}, nil, hub, nil, nopLogger{}, cfg)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisher := NewPublisherService("INGEST_DOCUMENT", pubSub)
	consumer := NewConsumerService(pubSub, "INGEST_DOCUMENT", store)
	require.NoError(t, consumer.Consume(ctx))

	knowledgeSvc := NewKnowledgeService(publisher, sessionSvc, store, nil, nil, nopLogger{}, cfg)

	res, err := knowledgeSvc.UploadContext(ctx, "launch", &dto.UploadContextRequest{
		Text: "the launch depends on the payments integration",
	})
	require.NoError(t, err)
	assert.True(t, res.Queued)
	assert.Equal(t, "twitter-space-launch", res.Namespace)

	require.Eventually(t, func() bool {
		got, err := store.Retrieve(ctx, "payments integration", "twitter-space-launch", 3)
		return err == nil && strings.Contains(got, "payments integration")
	}, 2*time.Second, 20*time.Millisecond, "background consumer should embed the document")

	require.NoError(t, knowledgeSvc.ClearTopic(ctx, "launch", ""))
	got, err := store.Retrieve(ctx, "payments integration", "twitter-space-launch", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKnowledgeServicePrefersActiveSessionProfile(t *testing.T) {
	ctx := context.Background()
	store := contextstore.New(wordHashEmbedder{}, hnsw.NewMemoryStore(testEmbeddingDim))
	hub := internalWS.NewHub(nil, nopLogger{})
	cfg := newTestAssistantConfig()

	sessionSvc := NewSessionService(store, cannedLLM{}, nil, hub, nil, nopLogger{}, cfg)
	_, err := sessionSvc.Start(ctx, &dto.StartSessionRequest{Topic: "panel", Profile: "linkedin-call"})
	require.NoError(t, err)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisher := NewPublisherService("INGEST_DOCUMENT", pubSub)
	knowledgeSvc := NewKnowledgeService(publisher, sessionSvc, store, nil, nil, nopLogger{}, cfg)

	res, err := knowledgeSvc.UploadContext(ctx, "panel", &dto.UploadContextRequest{Text: "doc"})
	require.NoError(t, err)
	assert.Equal(t, "linkedin-call-panel", res.Namespace)
}
