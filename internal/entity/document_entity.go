package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID
	SessionId    uuid.UUID
	OriginalText string
	FileName     string
	FileType     string
	UploadedAt   time.Time
}
