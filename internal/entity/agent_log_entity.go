package entity

import (
	"time"

	"github.com/google/uuid"
)

type AgentLog struct {
	Id             uint
	SessionId      uuid.UUID
	AgentType      string
	InputData      string
	OutputData     string
	ProcessingTime float64
	Timestamp      time.Time
}
