package dto

import (
	"time"

	"github.com/google/uuid"
)

type EventResponse struct {
	EventId   uuid.UUID              `json:"event_id"`
	SessionId uuid.UUID              `json:"session_id"`
	EventType string                 `json:"event_type"`
	EventData map[string]interface{} `json:"event_data"`
	CreatedAt time.Time              `json:"created_at"`
}

type PollEventsResponse struct {
	Events []EventResponse `json:"events"`
}

type AcknowledgeEventResponse struct {
	EventId      uuid.UUID `json:"event_id"`
	Acknowledged bool      `json:"acknowledged"`
}
