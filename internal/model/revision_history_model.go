package model

import (
	"time"

	"github.com/google/uuid"
)

type RevisionHistory struct {
	Id             uint      `gorm:"primaryKey;autoIncrement"`
	ContentId      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserFeedback   string    `gorm:"type:text"`
	RevisedContent string    `gorm:"type:text"`
	RevisionNumber int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (RevisionHistory) TableName() string {
	return "revision_history"
}
