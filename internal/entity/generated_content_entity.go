package entity

import (
	"time"

	"github.com/google/uuid"
)

type GeneratedContent struct {
	Id              uuid.UUID
	DocumentId      uuid.UUID
	ContentType     string
	UserPrompt      string
	ContentMarkdown string
	Version         int
	AccuracyScore   *float64
	CreatedAt       time.Time
}
