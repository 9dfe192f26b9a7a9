package websocket

import (
	"context"
	"encoding/json"
	"time"

	"edubook-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	// streamInterval is how often pending events are fetched and pushed.
	streamInterval = time.Second
	// purgeInterval is how often the housekeeping purge runs inside a
	// long-lived stream.
	purgeInterval = 5 * time.Minute
)

// ServeWs streams a session's progress events over one websocket
// connection. Delivery is at-least-once: events are re-sent every poll
// until the client acknowledges them over the REST endpoint.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID uuid.UUID, eventService service.IEventService) {
	client := &Client{
		Hub:       hub,
		Conn:      c,
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		done:      make(chan struct{}),
	}
	client.Hub.register <- client

	go client.writePump()
	go streamPump(client, eventService)
	client.readPump()
}

// streamPump is the pull loop behind the stream: an initial connected
// frame, then a fetch of unacknowledged events every second, forwarded
// as discrete messages, plus a periodic purge of acknowledged history.
func streamPump(c *Client, eventService service.IEventService) {
	defer close(c.Send)

	connected, _ := json.Marshal(map[string]interface{}{
		"type":       "connected",
		"session_id": c.SessionID.String(),
	})
	if !c.push(connected) {
		return
	}

	ticker := time.NewTicker(streamInterval)
	purgeTicker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	defer purgeTicker.Stop()

	ctx := context.Background()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			res, err := eventService.Poll(ctx, c.SessionID)
			if err != nil {
				c.Hub.logger.Warn("Hub", "Failed to poll events for stream", map[string]interface{}{
					"session_id": c.SessionID,
					"error":      err.Error(),
				})
				continue
			}
			for _, event := range res.Events {
				data, err := json.Marshal(event)
				if err != nil {
					continue
				}
				if !c.push(data) {
					return
				}
			}
		case <-purgeTicker.C:
			if _, err := eventService.Purge(ctx); err != nil {
				c.Hub.logger.Warn("Hub", "Stream housekeeping purge failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

// push queues one message, giving up when the connection is done.
func (c *Client) push(data []byte) bool {
	select {
	case c.Send <- data:
		return true
	case <-c.done:
		return false
	}
}
