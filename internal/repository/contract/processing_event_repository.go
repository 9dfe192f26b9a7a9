package contract

import (
	"context"
	"time"

	"edubook-be/internal/entity"
	"edubook-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ProcessingEventRepository interface {
	Create(ctx context.Context, event *entity.ProcessingEvent) error
	// FindUnacknowledged returns a session's pending events ordered by
	// creation time ascending.
	FindUnacknowledged(ctx context.Context, sessionId uuid.UUID) ([]*entity.ProcessingEvent, error)
	// Acknowledge marks an event consumed. Idempotent: acknowledging an
	// already-acknowledged or unknown event is not an error.
	Acknowledge(ctx context.Context, eventId uuid.UUID) error
	// PurgeAcknowledged deletes acknowledged events created before the
	// cutoff. Unacknowledged events are never removed regardless of age.
	PurgeAcknowledged(ctx context.Context, cutoff time.Time) (int64, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProcessingEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
