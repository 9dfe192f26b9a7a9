package contract

import (
	"context"

	"edubook-be/internal/entity"
	"edubook-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GeneratedContentRepository interface {
	Create(ctx context.Context, content *entity.GeneratedContent) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedContent, error)
	// FindLatestBySessionId returns the most recently created content row
	// for any document belonging to the session, or nil when none exists.
	FindLatestBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.GeneratedContent, error)
	// NextVersion returns max(version)+1 across a document's content rows.
	NextVersion(ctx context.Context, documentId uuid.UUID) (int, error)
}
