package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func (h *Hub) listenerCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}

func TestHubBroadcastDeliversToListener(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	client := &Client{Hub: h, Topic: "standup", Send: make(chan []byte, 8)}
	h.register <- client

	require.Eventually(t, func() bool {
		return h.listenerCount("standup") == 1
	}, time.Second, 10*time.Millisecond)

	h.Broadcast("standup", "questions", map[string]interface{}{"questions": "q1"})

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), `"type":"questions"`)
		assert.Contains(t, string(msg), "q1")
	case <-time.After(time.Second):
		t.Fatal("no message delivered to listener")
	}
}

func TestHubEvictsSlowListenerWithoutPanic(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	slow := &Client{Hub: h, Topic: "standup", Send: make(chan []byte, 1)}
	h.register <- slow

	require.Eventually(t, func() bool {
		return h.listenerCount("standup") == 1
	}, time.Second, 10*time.Millisecond)

	// The first broadcast fills the one-slot buffer; the second
	// overflows it and must evict the client instead of panicking.
	h.Broadcast("standup", "questions", map[string]interface{}{"n": 1})
	h.Broadcast("standup", "questions", map[string]interface{}{"n": 2})

	require.Eventually(t, func() bool {
		return h.listenerCount("standup") == 0
	}, time.Second, 10*time.Millisecond)

	// Send is closed exactly once by the unregister path: the buffered
	// message drains, then the channel reports closed.
	<-slow.Send
	_, open := <-slow.Send
	assert.False(t, open)
}

func TestHubUnregisterUnknownClientIsNoOp(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	registered := &Client{Hub: h, Topic: "standup", Send: make(chan []byte, 1)}
	h.register <- registered
	require.Eventually(t, func() bool {
		return h.listenerCount("standup") == 1
	}, time.Second, 10*time.Millisecond)

	stranger := &Client{Hub: h, Topic: "standup", Send: make(chan []byte, 1)}
	h.unregister <- stranger
	h.unregister <- registered

	require.Eventually(t, func() bool {
		return h.listenerCount("standup") == 0
	}, time.Second, 10*time.Millisecond)
	select {
	case _, open := <-stranger.Send:
		assert.True(t, open, "unregistered stranger's channel must not be closed")
	default:
	}
}
