package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs handles websocket requests from the peer.
func ServeWs(hub *Hub, c *websocket.Conn, topic string, onSegment SegmentHandler) {
	client := &Client{Hub: hub, Conn: c, Topic: topic, Send: make(chan []byte, 256), OnSegment: onSegment}
	client.Hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
