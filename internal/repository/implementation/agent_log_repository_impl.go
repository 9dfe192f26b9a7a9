package implementation

import (
	"context"

	"edubook-be/internal/entity"
	"edubook-be/internal/mapper"
	"edubook-be/internal/model"
	"edubook-be/internal/repository/contract"
	"edubook-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AgentLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PipelineMapper
}

func NewAgentLogRepository(db *gorm.DB) contract.AgentLogRepository {
	return &AgentLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewPipelineMapper(),
	}
}

func (r *AgentLogRepositoryImpl) Create(ctx context.Context, log *entity.AgentLog) error {
	m := r.mapper.AgentLogToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.AgentLogToEntity(m)
	return nil
}

func (r *AgentLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AgentLog, error) {
	var models []*model.AgentLog
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	logs := make([]*entity.AgentLog, len(models))
	for i, m := range models {
		logs[i] = r.mapper.AgentLogToEntity(m)
	}
	return logs, nil
}

func (r *AgentLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.AgentLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
