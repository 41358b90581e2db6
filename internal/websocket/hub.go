package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"conversation-assistant-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Hub fans generated questions out to every listener of a topic.
type Hub struct {
	// Registered clients map: topic -> list of clients (multi-listener)
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Topic] = append(h.clients[client.Topic], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"topic": client.Topic})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.Topic]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.Topic] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.Topic]) == 0 {
					delete(h.clients, client.Topic)
					h.logger.Info("Hub", "Topic has no listeners left", map[string]interface{}{"topic": client.Topic})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a payload to every listener of a topic, on this
// instance and on peers via Redis.
func (h *Hub) Broadcast(topic string, messageType string, payload interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": messageType,
		"data": payload,
	})

	h.sendLocal(topic, data)

	if h.rdb != nil {
		envelope := map[string]interface{}{
			"target_topic": topic,
			"message":      data,
		}
		jsonEnvelope, _ := json.Marshal(envelope)
		h.rdb.Publish(context.Background(), "cluster_events", jsonEnvelope)
	}
}

func (h *Hub) sendLocal(topic string, data []byte) {
	h.mu.RLock()
	clients, ok := h.clients[topic]
	h.mu.RUnlock()

	if !ok {
		return
	}
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// The unregister path owns closing Send; closing here too
			// would double-close when the slow client is evicted.
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"topic": topic})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to "cluster_events". When a message
	// arrives, deliver it to local listeners of the target topic.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var envelope struct {
			TargetTopic string          `json:"target_topic"`
			Message     json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.sendLocal(envelope.TargetTopic, envelope.Message)
	}
}
