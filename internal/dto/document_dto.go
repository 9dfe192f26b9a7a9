package dto

import (
	"github.com/google/uuid"
)

// UploadDocumentRequest carries the multipart form fields accompanying
// the file. The file itself is read from the multipart part directly.
type UploadDocumentRequest struct {
	SessionId  uuid.UUID
	UserPrompt string `validate:"max=1000"`
	Enhance    bool
}

type UploadDocumentResponse struct {
	DocumentId uuid.UUID `json:"document_id"`
	SessionId  uuid.UUID `json:"session_id"`
	Filename   string    `json:"filename"`
	Status     string    `json:"status"`
}
