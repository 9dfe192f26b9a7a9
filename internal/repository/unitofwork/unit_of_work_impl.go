package unitofwork

import (
	"context"
	"fmt"

	"edubook-be/internal/repository/contract"
	"edubook-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) SessionRepository() contract.SessionRepository {
	return implementation.NewSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DocumentRepository() contract.DocumentRepository {
	return implementation.NewDocumentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GeneratedContentRepository() contract.GeneratedContentRepository {
	return implementation.NewGeneratedContentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AgentLogRepository() contract.AgentLogRepository {
	return implementation.NewAgentLogRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProcessingEventRepository() contract.ProcessingEventRepository {
	return implementation.NewProcessingEventRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RevisionHistoryRepository() contract.RevisionHistoryRepository {
	return implementation.NewRevisionHistoryRepository(u.getDB())
}
