package dto

import (
	"time"

	"github.com/google/uuid"
)

type ContentResponse struct {
	ContentId     uuid.UUID `json:"content_id"`
	DocumentId    uuid.UUID `json:"document_id"`
	ContentType   string    `json:"content_type"`
	UserPrompt    string    `json:"user_prompt"`
	Content       string    `json:"content"`
	Version       int       `json:"version"`
	AccuracyScore *float64  `json:"accuracy_score"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReviseContentRequest struct {
	ContentId uuid.UUID
	Feedback  string `json:"feedback" validate:"required,max=2000"`
}

type ReviseContentResponse struct {
	ContentId      uuid.UUID `json:"content_id"`
	Version        int       `json:"version"`
	RevisionNumber int       `json:"revision_number"`
	Content        string    `json:"content"`
}
