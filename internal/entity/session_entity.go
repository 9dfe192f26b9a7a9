package entity

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Id        uuid.UUID
	UserIP    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
