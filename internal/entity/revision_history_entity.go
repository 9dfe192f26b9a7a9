package entity

import (
	"time"

	"github.com/google/uuid"
)

type RevisionHistory struct {
	Id             uint
	ContentId      uuid.UUID
	UserFeedback   string
	RevisedContent string
	RevisionNumber int
	CreatedAt      time.Time
}
