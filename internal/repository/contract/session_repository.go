package contract

import (
	"context"

	"edubook-be/internal/entity"
	"edubook-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
