package contract

import (
	"context"

	"edubook-be/internal/entity"
	"edubook-be/internal/repository/specification"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
}
