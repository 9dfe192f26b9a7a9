package contract

import (
	"context"

	"edubook-be/internal/entity"
	"edubook-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RevisionHistoryRepository interface {
	Create(ctx context.Context, revision *entity.RevisionHistory) error
	CountByContentId(ctx context.Context, contentId uuid.UUID) (int64, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RevisionHistory, error)
}
