package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionStatusResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
