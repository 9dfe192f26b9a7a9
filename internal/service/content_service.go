package service

import (
	"context"
	"time"

	"edubook-be/internal/constant"
	"edubook-be/internal/dto"
	"edubook-be/internal/entity"
	"edubook-be/internal/pkg/logger"
	"edubook-be/internal/repository/specification"
	"edubook-be/internal/repository/unitofwork"
	"edubook-be/pkg/events"
	"edubook-be/pkg/pipeline"

	"github.com/google/uuid"
)

type IContentService interface {
	// Latest returns the most recently created content for a session.
	Latest(ctx context.Context, sessionId uuid.UUID) (*dto.ContentResponse, error)
	// Revise runs the revision agent against stored content with user
	// feedback, appending a new content version and a revision history
	// row. It runs synchronously.
	Revise(ctx context.Context, req *dto.ReviseContentRequest) (*dto.ReviseContentResponse, error)
}

type contentService struct {
	uowFactory unitofwork.RepositoryFactory
	revisor    *pipeline.ReviseAgent
	notifier   *events.Notifier
	log        logger.ILogger
}

func NewContentService(
	uowFactory unitofwork.RepositoryFactory,
	revisor *pipeline.ReviseAgent,
	notifier *events.Notifier,
	log logger.ILogger,
) IContentService {
	return &contentService{
		uowFactory: uowFactory,
		revisor:    revisor,
		notifier:   notifier,
		log:        log,
	}
}

func (s *contentService) Latest(ctx context.Context, sessionId uuid.UUID) (*dto.ContentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	content, err := uow.GeneratedContentRepository().FindLatestBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil // Nothing generated yet
	}

	return &dto.ContentResponse{
		ContentId:     content.Id,
		DocumentId:    content.DocumentId,
		ContentType:   content.ContentType,
		UserPrompt:    content.UserPrompt,
		Content:       content.ContentMarkdown,
		Version:       content.Version,
		AccuracyScore: content.AccuracyScore,
		CreatedAt:     content.CreatedAt,
	}, nil
}

func (s *contentService) Revise(ctx context.Context, req *dto.ReviseContentRequest) (*dto.ReviseContentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	content, err := uow.GeneratedContentRepository().FindOne(ctx, specification.ByID{ID: req.ContentId})
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil // Not found
	}

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: content.DocumentId})
	if err != nil {
		return nil, err
	}

	// Events for the revision are keyed to the owning session when the
	// document still resolves; otherwise the run is detached.
	sessionId := uuid.Nil
	if document != nil {
		sessionId = document.SessionId
	}

	revised := s.revisor.Revise(ctx, sessionId, content.ContentMarkdown, req.Feedback)

	version, err := uow.GeneratedContentRepository().NextVersion(ctx, content.DocumentId)
	if err != nil {
		return nil, err
	}

	newContent := entity.GeneratedContent{
		Id:              uuid.New(),
		DocumentId:      content.DocumentId,
		ContentType:     constant.ContentTypeRevised,
		UserPrompt:      content.UserPrompt,
		ContentMarkdown: revised.Output,
		Version:         version,
		CreatedAt:       time.Now(),
	}
	if err := uow.GeneratedContentRepository().Create(ctx, &newContent); err != nil {
		return nil, err
	}

	revisionCount, err := uow.RevisionHistoryRepository().CountByContentId(ctx, content.Id)
	if err != nil {
		return nil, err
	}
	revision := entity.RevisionHistory{
		ContentId:      content.Id,
		UserFeedback:   req.Feedback,
		RevisedContent: revised.Output,
		RevisionNumber: int(revisionCount) + 1,
		CreatedAt:      time.Now(),
	}
	if err := uow.RevisionHistoryRepository().Create(ctx, &revision); err != nil {
		return nil, err
	}

	s.notifier.NotifyContentSaved(ctx, sessionId, newContent.Id, newContent.ContentType, newContent.Version)

	s.log.Info("content", "content revised", map[string]interface{}{
		"content_id":      content.Id.String(),
		"new_content_id":  newContent.Id.String(),
		"version":         version,
		"revision_number": revision.RevisionNumber,
	})

	return &dto.ReviseContentResponse{
		ContentId:      newContent.Id,
		Version:        newContent.Version,
		RevisionNumber: revision.RevisionNumber,
		Content:        newContent.ContentMarkdown,
	}, nil
}
