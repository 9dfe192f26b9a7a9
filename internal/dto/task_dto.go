package dto

import "github.com/google/uuid"

// ProcessDocumentTask is the message queued for the background
// processing consumer after a successful upload.
type ProcessDocumentTask struct {
	SessionId  uuid.UUID `json:"session_id"`
	DocumentId uuid.UUID `json:"document_id"`
	UserPrompt string    `json:"user_prompt"`
	Enhance    bool      `json:"enhance"`
}
