package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId    uuid.UUID `gorm:"type:uuid;not null;index"`
	OriginalText string    `gorm:"type:text"`
	FileName     string    `gorm:"type:varchar(255)"`
	FileType     string    `gorm:"type:varchar(10)"`
	UploadedAt   time.Time `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}
