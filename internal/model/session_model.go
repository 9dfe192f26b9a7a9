package model

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserIP    string    `gorm:"type:varchar(64)"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
