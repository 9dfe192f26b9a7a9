package contract

import (
	"context"

	"edubook-be/internal/entity"
	"edubook-be/internal/repository/specification"
)

type AgentLogRepository interface {
	Create(ctx context.Context, logEntry *entity.AgentLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AgentLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
