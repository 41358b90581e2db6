package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(store ContextStore, provider *fakeLLM, hook TriggerHook) *Session {
	s := NewSession(Config{
		Profile:       ProfileByName("twitter-space"),
		BufferLimit:   12,
		TriggerPeriod: 6,
	}, store, provider, hook)
	s.Start("demo")
	return s
}

func TestSessionEndToEndTrigger(t *testing.T) {
	ctx := context.Background()
	store := newFakeContextStore()
	provider := &fakeLLM{response: "generated output"}
	session := newTestSession(store, provider, nil)

	segments := []string{"hello", "world", "foo", "bar", "baz", "qux"}
	for i, seg := range segments[:5] {
		res, err := session.IngestSegment(ctx, seg)
		require.NoError(t, err)
		assert.False(t, res.Triggered, "segment %d must not trigger", i+1)
	}
	require.Equal(t, 0, provider.promptCount(), "no model calls before the trigger")

	res, err := session.IngestSegment(ctx, segments[5])
	require.NoError(t, err)

	assert.True(t, res.Triggered)
	assert.True(t, res.SummaryPersisted)
	assert.Equal(t, "generated output", res.Questions)
	assert.NoError(t, res.Err)

	// Exactly one summarize call and one question call.
	require.Equal(t, 2, provider.promptCount())
	assert.Equal(t, "Summarize this transcript:\n\nhello world foo bar baz qux", provider.prompts[0])
	assert.Contains(t, provider.prompts[1], "Live Transcript:\nhello world foo bar baz qux")

	// The summary landed in the topic's namespace.
	ingested := store.ingestedIn("twitter-space-demo")
	require.Len(t, ingested, 1)
	assert.Equal(t, "generated output", ingested[0])
}

func TestSessionRejectsWhitespaceSegments(t *testing.T) {
	ctx := context.Background()
	store := newFakeContextStore()
	provider := &fakeLLM{response: "x"}
	session := newTestSession(store, provider, nil)

	_, err := session.IngestSegment(ctx, "spoken")
	require.NoError(t, err)

	for _, blank := range []string{"", "   ", "\t\n"} {
		res, err := session.IngestSegment(ctx, blank)
		require.NoError(t, err, "blank segments are a no-op, not an error")
		assert.False(t, res.Triggered)
	}

	assert.Equal(t, "spoken", session.Window())
}

func TestSessionNotListening(t *testing.T) {
	store := newFakeContextStore()
	provider := &fakeLLM{response: "x"}
	session := NewSession(Config{Profile: ProfileByName("twitter-space")}, store, provider, nil)

	_, err := session.IngestSegment(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrSessionNotListening)

	session.Start("demo")
	session.Stop()
	_, err = session.IngestSegment(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrSessionNotListening)
}

func TestSessionStartResetsBufferAndCounter(t *testing.T) {
	ctx := context.Background()
	store := newFakeContextStore()
	provider := &fakeLLM{response: "x"}
	session := newTestSession(store, provider, nil)

	for i := 0; i < 5; i++ {
		_, err := session.IngestSegment(ctx, "seg")
		require.NoError(t, err)
	}

	session.Start("demo") // restart: counter back to zero

	res, err := session.IngestSegment(ctx, "first again")
	require.NoError(t, err)
	assert.False(t, res.Triggered, "restart must reset the counter, not carry it at 5")
	assert.Equal(t, "first again", session.Window())
}

func TestSessionSurvivesGenerationFailure(t *testing.T) {
	ctx := context.Background()
	store := newFakeContextStore()
	provider := &fakeLLM{err: errBoom}
	session := newTestSession(store, provider, nil)

	for i := 0; i < 5; i++ {
		_, err := session.IngestSegment(ctx, "seg")
		require.NoError(t, err)
	}

	res, err := session.IngestSegment(ctx, "seg")
	require.NoError(t, err, "trigger failures must not throw out of ingest")
	assert.True(t, res.Triggered)
	assert.ErrorIs(t, res.Err, ErrGenerationFailed)
	assert.False(t, res.SummaryPersisted)
	assert.Empty(t, res.Questions)

	// The session keeps accepting segments afterwards.
	res, err = session.IngestSegment(ctx, "next")
	require.NoError(t, err)
	assert.False(t, res.Triggered)
	assert.Equal(t, StateListening, session.State())
}

func TestSessionSummaryPersistFailureStillGenerates(t *testing.T) {
	ctx := context.Background()
	store := newFakeContextStore()
	store.ingestErr = errBoom
	provider := &fakeLLM{response: "questions"}
	session := newTestSession(store, provider, nil)

	for i := 0; i < 6; i++ {
		res, err := session.IngestSegment(ctx, "seg")
		require.NoError(t, err)
		if i == 5 {
			assert.True(t, res.Triggered)
			assert.False(t, res.SummaryPersisted)
			assert.Error(t, res.Err)
			assert.Equal(t, "questions", res.Questions, "persist failure must not block questions")
		}
	}
}

func TestSessionTriggerHook(t *testing.T) {
	ctx := context.Background()
	store := newFakeContextStore()
	store.retrieved = "old context"
	provider := &fakeLLM{response: "hook questions"}

	type hookCall struct{ window, questions, background string }
	called := make(chan hookCall, 1)

	session := newTestSession(store, provider, func(window, questions, background string) {
		called <- hookCall{window, questions, background}
	})

	for i := 0; i < 6; i++ {
		_, err := session.IngestSegment(ctx, "seg")
		require.NoError(t, err)
	}

	select {
	case call := <-called:
		assert.Equal(t, strings.Repeat("seg ", 5)+"seg", call.window)
		assert.Equal(t, "hook questions", call.questions)
		assert.Equal(t, "old context", call.background)
	case <-time.After(time.Second):
		t.Fatal("trigger hook was not invoked")
	}
}

func TestSessionPanickingHookIsIsolated(t *testing.T) {
	ctx := context.Background()
	store := newFakeContextStore()
	provider := &fakeLLM{response: "qs"}

	session := newTestSession(store, provider, func(window, questions, background string) {
		panic("observer exploded")
	})

	var triggered IngestResult
	for i := 0; i < 6; i++ {
		res, err := session.IngestSegment(ctx, "seg")
		require.NoError(t, err)
		if res.Triggered {
			triggered = res
		}
	}

	assert.Equal(t, "qs", triggered.Questions, "hook failure must never affect delivery")
	// Give the hook goroutine a moment so its recover runs within the test.
	time.Sleep(50 * time.Millisecond)
}

func TestSessionClearTopicLeavesBuffer(t *testing.T) {
	ctx := context.Background()
	store := newFakeContextStore()
	provider := &fakeLLM{response: "x"}
	session := newTestSession(store, provider, nil)

	_, err := session.IngestSegment(ctx, "kept")
	require.NoError(t, err)

	require.NoError(t, session.ClearTopic(ctx, "demo"))
	assert.Equal(t, "kept", session.Window(), "clear affects the store, not the live buffer")
}

func TestSessionLatestArtifacts(t *testing.T) {
	ctx := context.Background()
	store := newFakeContextStore()
	provider := &fakeLLM{response: "artifact"}
	session := newTestSession(store, provider, nil)

	for i := 0; i < 6; i++ {
		_, err := session.IngestSegment(ctx, "seg")
		require.NoError(t, err)
	}

	questions, summary := session.Latest()
	assert.Equal(t, "artifact", questions)
	assert.Equal(t, "artifact", summary)
}
