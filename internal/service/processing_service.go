package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"edubook-be/internal/constant"
	"edubook-be/internal/dto"
	"edubook-be/internal/entity"
	"edubook-be/internal/pkg/logger"
	"edubook-be/internal/repository/specification"
	"edubook-be/internal/repository/unitofwork"
	"edubook-be/pkg/events"
	"edubook-be/pkg/pipeline"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IProcessingService interface {
	Consume(ctx context.Context) error
}

// processingService is the background consumer that runs the content
// pipeline for uploaded documents. Whatever happens inside a run, the
// session always ends in exactly one terminal status.
type processingService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	orchestrator *pipeline.Orchestrator
	notifier     *events.Notifier
	log          logger.ILogger
}

func NewProcessingService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	orchestrator *pipeline.Orchestrator,
	notifier *events.Notifier,
	log logger.ILogger,
) IProcessingService {
	return &processingService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		orchestrator: orchestrator,
		notifier:     notifier,
		log:          log,
	}
}

func (s *processingService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *processingService) processMessage(ctx context.Context, msg *message.Message) {
	var task dto.ProcessDocumentTask
	if err := json.Unmarshal(msg.Payload, &task); err != nil {
		s.log.Error("processing", "failed to unmarshal task message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: task.DocumentId})
	if err != nil {
		s.log.Error("processing", "failed to load document", map[string]interface{}{
			"document_id": task.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack() // Retriable
		return
	}
	if document == nil {
		s.log.Error("processing", "document not found, dropping task", map[string]interface{}{
			"document_id": task.DocumentId.String(),
		})
		msg.Ack()
		return
	}

	if err := s.runPipeline(ctx, task, document); err != nil {
		s.failSession(ctx, task.SessionId, err)
	}
	msg.Ack()
}

// runPipeline executes the orchestrator and persists the result. A
// panic out of any stage is converted into an error so the session can
// be marked terminal.
func (s *processingService) runPipeline(ctx context.Context, task dto.ProcessDocumentTask, document *entity.Document) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panic: %v", r)
		}
	}()

	result, err := s.orchestrator.ProcessDocument(ctx, task.SessionId, document.OriginalText, task.UserPrompt, task.Enhance)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	version, err := uow.GeneratedContentRepository().NextVersion(ctx, document.Id)
	if err != nil {
		return err
	}

	score := result.AccuracyScore
	content := entity.GeneratedContent{
		Id:              uuid.New(),
		DocumentId:      document.Id,
		ContentType:     constant.ContentTypeEbook,
		UserPrompt:      task.UserPrompt,
		ContentMarkdown: result.Content,
		Version:         version,
		AccuracyScore:   &score,
		CreatedAt:       time.Now(),
	}
	if err := uow.GeneratedContentRepository().Create(ctx, &content); err != nil {
		return err
	}

	s.notifier.NotifyContentSaved(ctx, task.SessionId, content.Id, content.ContentType, content.Version)

	if err := uow.SessionRepository().UpdateStatus(ctx, task.SessionId, constant.SessionStatusCompleted); err != nil {
		return err
	}

	s.log.Info("processing", "document processed", map[string]interface{}{
		"session_id":     task.SessionId.String(),
		"document_id":    document.Id.String(),
		"content_id":     content.Id.String(),
		"version":        version,
		"accuracy_score": result.AccuracyScore,
	})
	return nil
}

// failSession flips the session into its terminal error state and
// appends one error event for the client to observe.
func (s *processingService) failSession(ctx context.Context, sessionId uuid.UUID, cause error) {
	s.log.Error("processing", "document processing failed", map[string]interface{}{
		"session_id": sessionId.String(),
		"error":      cause.Error(),
	})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().UpdateStatus(ctx, sessionId, constant.SessionStatusError); err != nil {
		s.log.Error("processing", "failed to mark session errored", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}

	s.notifier.NotifyError(ctx, sessionId, cause.Error())
}
