package handler

import (
	"edubook-be/internal/pkg/logger"
	"edubook-be/internal/service"
	internalWS "edubook-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// StreamHandler upgrades progress-stream requests to websocket
// connections bound to one session.
type StreamHandler struct {
	hub            *internalWS.Hub
	eventService   service.IEventService
	sessionService service.ISessionService
	logger         logger.ILogger
}

func NewStreamHandler(
	hub *internalWS.Hub,
	eventService service.IEventService,
	sessionService service.ISessionService,
	log logger.ILogger,
) *StreamHandler {
	return &StreamHandler{
		hub:            hub,
		eventService:   eventService,
		sessionService: sessionService,
		logger:         log,
	}
}

func (h *StreamHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/events/v1/:sessionId/stream", h.ServeWs)
}

func (h *StreamHandler) ServeWs(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	exists, err := h.sessionService.Exists(c.Context(), sessionID)
	if err != nil {
		return err
	}
	if !exists {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StreamHandler", "Starting event stream", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID, h.eventService)
			h.logger.Info("StreamHandler", "Event stream ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
