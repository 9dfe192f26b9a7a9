package implementation

import (
	"context"
	"time"

	"edubook-be/internal/entity"
	"edubook-be/internal/mapper"
	"edubook-be/internal/model"
	"edubook-be/internal/repository/contract"
	"edubook-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProcessingEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PipelineMapper
}

func NewProcessingEventRepository(db *gorm.DB) contract.ProcessingEventRepository {
	return &ProcessingEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewPipelineMapper(),
	}
}

func (r *ProcessingEventRepositoryImpl) Create(ctx context.Context, event *entity.ProcessingEvent) error {
	m := r.mapper.EventToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.EventToEntity(m)
	return nil
}

func (r *ProcessingEventRepositoryImpl) FindUnacknowledged(ctx context.Context, sessionId uuid.UUID) ([]*entity.ProcessingEvent, error) {
	var models []*model.ProcessingEvent
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND acknowledged = ?", sessionId, false).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	events := make([]*entity.ProcessingEvent, len(models))
	for i, m := range models {
		events[i] = r.mapper.EventToEntity(m)
	}
	return events, nil
}

func (r *ProcessingEventRepositoryImpl) Acknowledge(ctx context.Context, eventId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.ProcessingEvent{}).
		Where("id = ?", eventId).
		Update("acknowledged", true).Error
}

func (r *ProcessingEventRepositoryImpl) PurgeAcknowledged(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("acknowledged = ? AND created_at < ?", true, cutoff).
		Delete(&model.ProcessingEvent{})
	return result.RowsAffected, result.Error
}

func (r *ProcessingEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProcessingEvent, error) {
	var models []*model.ProcessingEvent
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	events := make([]*entity.ProcessingEvent, len(models))
	for i, m := range models {
		events[i] = r.mapper.EventToEntity(m)
	}
	return events, nil
}

func (r *ProcessingEventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ProcessingEvent{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
