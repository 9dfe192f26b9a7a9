package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"edubook-be/internal/constant"
	"edubook-be/internal/dto"
	"edubook-be/internal/entity"
	"edubook-be/internal/pkg/logger"
	"edubook-be/internal/pkg/sanitize"
	"edubook-be/internal/repository/unitofwork"
	"edubook-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentService interface {
	// Upload validates and stores the document, flips the session to
	// processing and queues the pipeline task. It returns immediately;
	// generation happens in the background consumer.
	Upload(ctx context.Context, req *dto.UploadDocumentRequest, filename string, data []byte) (*dto.UploadDocumentResponse, error)
}

type documentService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessionService ISessionService
	publisher      IPublisherService
	notifier       *events.Notifier
	log            logger.ILogger
	maxUploadBytes int64
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	sessionService ISessionService,
	publisher IPublisherService,
	notifier *events.Notifier,
	log logger.ILogger,
	maxUploadBytes int64,
) IDocumentService {
	return &documentService{
		uowFactory:     uowFactory,
		sessionService: sessionService,
		publisher:      publisher,
		notifier:       notifier,
		log:            log,
		maxUploadBytes: maxUploadBytes,
	}
}

func (s *documentService) Upload(ctx context.Context, req *dto.UploadDocumentRequest, filename string, data []byte) (*dto.UploadDocumentResponse, error) {
	if !sanitize.ValidFileType(filename) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "unsupported file type, allowed: .txt .md .pdf .docx")
	}
	if !sanitize.ValidFileSize(int64(len(data)), s.maxUploadBytes) {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
	}
	if !sanitize.ValidUserPrompt(req.UserPrompt) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid structuring instruction")
	}

	exists, err := s.sessionService.Exists(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil // Session not found
	}

	safeName := sanitize.Filename(filename)
	text := extractText(safeName, data)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	document := entity.Document{
		Id:           uuid.New(),
		SessionId:    req.SessionId,
		OriginalText: text,
		FileName:     safeName,
		FileType:     strings.ToLower(filepath.Ext(safeName)),
		UploadedAt:   time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		return nil, err
	}

	if err := uow.SessionRepository().UpdateStatus(ctx, req.SessionId, constant.SessionStatusProcessing); err != nil {
		return nil, err
	}

	s.notifier.NotifyUploadComplete(ctx, req.SessionId, safeName, int64(len(data)))

	task := dto.ProcessDocumentTask{
		SessionId:  req.SessionId,
		DocumentId: document.Id,
		UserPrompt: req.UserPrompt,
		Enhance:    req.Enhance,
	}
	taskJson, err := json.Marshal(task)
	if err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, taskJson); err != nil {
		return nil, err
	}

	s.log.Info("document", "document queued for processing", map[string]interface{}{
		"session_id":  req.SessionId.String(),
		"document_id": document.Id.String(),
		"filename":    safeName,
		"size":        len(data),
	})

	return &dto.UploadDocumentResponse{
		DocumentId: document.Id,
		SessionId:  req.SessionId,
		Filename:   safeName,
		Status:     constant.SessionStatusProcessing,
	}, nil
}

// extractText pulls plain text out of the upload. PDF and DOCX
// extraction is not implemented; those uploads carry a placeholder so
// the pipeline still runs end to end.
func extractText(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return sanitize.Text(string(data))
	case ".pdf":
		return "PDF processing not implemented yet"
	case ".docx":
		return "DOCX processing not implemented yet"
	default:
		return sanitize.Text(string(data))
	}
}
