package implementation

import (
	"context"
	"errors"

	"edubook-be/internal/entity"
	"edubook-be/internal/mapper"
	"edubook-be/internal/model"
	"edubook-be/internal/repository/contract"
	"edubook-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GeneratedContentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PipelineMapper
}

func NewGeneratedContentRepository(db *gorm.DB) contract.GeneratedContentRepository {
	return &GeneratedContentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPipelineMapper(),
	}
}

func (r *GeneratedContentRepositoryImpl) Create(ctx context.Context, content *entity.GeneratedContent) error {
	m := r.mapper.ContentToModel(content)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*content = *r.mapper.ContentToEntity(m)
	return nil
}

func (r *GeneratedContentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedContent, error) {
	var m model.GeneratedContent
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ContentToEntity(&m), nil
}

func (r *GeneratedContentRepositoryImpl) FindLatestBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.GeneratedContent, error) {
	var m model.GeneratedContent
	err := r.db.WithContext(ctx).
		Joins("JOIN documents d ON d.id = generated_content.document_id").
		Where("d.session_id = ?", sessionId).
		Order("generated_content.created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ContentToEntity(&m), nil
}

func (r *GeneratedContentRepositoryImpl) NextVersion(ctx context.Context, documentId uuid.UUID) (int, error) {
	var maxVersion int
	err := r.db.WithContext(ctx).
		Model(&model.GeneratedContent{}).
		Where("document_id = ?", documentId).
		Select("COALESCE(MAX(version), 0)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, err
	}
	return maxVersion + 1, nil
}
