package entity

import (
	"time"

	"github.com/google/uuid"
)

type ProcessingEvent struct {
	Id           uuid.UUID
	SessionId    uuid.UUID
	EventType    string
	EventData    string
	CreatedAt    time.Time
	Acknowledged bool
}
