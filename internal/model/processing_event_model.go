package model

import (
	"time"

	"github.com/google/uuid"
)

type ProcessingEvent struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId    uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType    string    `gorm:"type:varchar(40);not null"`
	EventData    string    `gorm:"type:text"` // JSON payload
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
	Acknowledged bool      `gorm:"not null;default:false;index"`
}

func (ProcessingEvent) TableName() string {
	return "processing_events"
}
