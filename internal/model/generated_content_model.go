package model

import (
	"time"

	"github.com/google/uuid"
)

type GeneratedContent struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId      uuid.UUID `gorm:"type:uuid;not null;index"`
	ContentType     string    `gorm:"type:varchar(20);not null"` // summary | ebook | revised
	UserPrompt      string    `gorm:"type:text"`
	ContentMarkdown string    `gorm:"type:text"`
	Version         int       `gorm:"not null;default:1"`
	AccuracyScore   *float64
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
}

func (GeneratedContent) TableName() string {
	return "generated_content"
}
