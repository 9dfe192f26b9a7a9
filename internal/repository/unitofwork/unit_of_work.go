package unitofwork

import (
	"context"

	"edubook-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	DocumentRepository() contract.DocumentRepository
	GeneratedContentRepository() contract.GeneratedContentRepository
	AgentLogRepository() contract.AgentLogRepository
	ProcessingEventRepository() contract.ProcessingEventRepository
	RevisionHistoryRepository() contract.RevisionHistoryRepository
}
