package handler

import (
	"context"

	"conversation-assistant-be/internal/pkg/logger"
	"conversation-assistant-be/internal/service"
	internalWS "conversation-assistant-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SessionWsHandler streams a live session over one websocket: inbound
// text frames are transcript segments, outbound frames carry generated
// questions from the hub.
type SessionWsHandler struct {
	sessionService service.ISessionService
	hub            *internalWS.Hub
	logger         logger.ILogger
}

func NewSessionWsHandler(sessionService service.ISessionService, hub *internalWS.Hub, log logger.ILogger) *SessionWsHandler {
	return &SessionWsHandler{
		sessionService: sessionService,
		hub:            hub,
		logger:         log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *SessionWsHandler) ServeWs(c *fiber.Ctx) error {
	topic := c.Params("topic")
	if topic == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing topic"})
	}

	// Require an active session before upgrading; listeners on dead
	// topics would never receive anything.
	if _, ok := h.sessionService.ProfileFor(topic); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active session for topic"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("SessionWsHandler", "Starting WebSocket session", map[string]interface{}{"topic": topic})
			internalWS.ServeWs(h.hub, conn, topic, h.onSegment)
			h.logger.Info("SessionWsHandler", "WebSocket session ended", map[string]interface{}{"topic": topic})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// onSegment forwards inbound frames into the session pipeline. Results
// reach the client through the hub broadcast, not this return path.
func (h *SessionWsHandler) onSegment(topic, segment string) {
	if _, err := h.sessionService.Ingest(context.Background(), topic, segment); err != nil {
		h.logger.Warn("SessionWsHandler", "Failed to ingest websocket segment", map[string]interface{}{"topic": topic, "error": err.Error()})
	}
}

// RegisterRoutes registers the websocket route.
func (h *SessionWsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/sessions/:topic", h.ServeWs)
}
