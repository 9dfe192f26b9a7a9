package implementation

import (
	"context"

	"edubook-be/internal/entity"
	"edubook-be/internal/mapper"
	"edubook-be/internal/model"
	"edubook-be/internal/repository/contract"
	"edubook-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RevisionHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PipelineMapper
}

func NewRevisionHistoryRepository(db *gorm.DB) contract.RevisionHistoryRepository {
	return &RevisionHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewPipelineMapper(),
	}
}

func (r *RevisionHistoryRepositoryImpl) Create(ctx context.Context, revision *entity.RevisionHistory) error {
	m := r.mapper.RevisionToModel(revision)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*revision = *r.mapper.RevisionToEntity(m)
	return nil
}

func (r *RevisionHistoryRepositoryImpl) CountByContentId(ctx context.Context, contentId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.RevisionHistory{}).
		Where("content_id = ?", contentId).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RevisionHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RevisionHistory, error) {
	var models []*model.RevisionHistory
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	revisions := make([]*entity.RevisionHistory, len(models))
	for i, m := range models {
		revisions[i] = r.mapper.RevisionToEntity(m)
	}
	return revisions, nil
}
