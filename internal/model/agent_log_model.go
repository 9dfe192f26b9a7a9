package model

import (
	"time"

	"github.com/google/uuid"
)

type AgentLog struct {
	Id             uint      `gorm:"primaryKey;autoIncrement"`
	SessionId      uuid.UUID `gorm:"type:uuid;not null;index"`
	AgentType      string    `gorm:"type:varchar(20);not null"`
	InputData      string    `gorm:"type:text"`
	OutputData     string    `gorm:"type:text"`
	ProcessingTime float64   // seconds
	Timestamp      time.Time `gorm:"autoCreateTime"`
}

func (AgentLog) TableName() string {
	return "agent_logs"
}
