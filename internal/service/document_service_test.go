package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"edubook-be/internal/constant"
	"edubook-be/internal/dto"
	"edubook-be/internal/repository/memory"
	"edubook-be/internal/repository/specification"
	"edubook-be/internal/repository/unitofwork"
	"edubook-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturePublisher records queued task payloads instead of handing them
// to a live consumer.
type capturePublisher struct {
	payloads [][]byte
}

func (p *capturePublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newDocumentService(t *testing.T) (IDocumentService, ISessionService, *capturePublisher, unitofwork.RepositoryFactory) {
	t.Helper()
	uowFactory := unitofwork.NewRepositoryFactory(testDB(t))
	sessionService := NewSessionService(uowFactory, memory.NewSessionCache())
	eventService := NewEventService(uowFactory, time.Hour, nopLogger{})
	notifier := events.NewNotifier(eventService, nil, nopLogger{})
	publisher := &capturePublisher{}
	svc := NewDocumentService(uowFactory, sessionService, publisher, notifier, nopLogger{}, 1024*1024)
	return svc, sessionService, publisher, uowFactory
}

func TestDocumentUploadQueuesProcessingTask(t *testing.T) {
	svc, sessions, publisher, uowFactory := newDocumentService(t)
	ctx := context.Background()

	created, err := sessions.Create(ctx, "198.51.100.4")
	require.NoError(t, err)

	res, err := svc.Upload(ctx, &dto.UploadDocumentRequest{
		SessionId:  created.SessionId,
		UserPrompt: "create a 3-day bootcamp",
		Enhance:    true,
	}, "My Notes.txt", []byte("lecture notes"))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, constant.SessionStatusProcessing, res.Status)

	// Session flipped to processing.
	status, err := sessions.Status(ctx, created.SessionId)
	require.NoError(t, err)
	assert.Equal(t, constant.SessionStatusProcessing, status.Status)

	// Exactly one task queued, carrying the upload's options.
	require.Len(t, publisher.payloads, 1)
	var task dto.ProcessDocumentTask
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &task))
	assert.Equal(t, created.SessionId, task.SessionId)
	assert.Equal(t, res.DocumentId, task.DocumentId)
	assert.Equal(t, "create a 3-day bootcamp", task.UserPrompt)
	assert.True(t, task.Enhance)

	// The stored document carries the sanitized text.
	doc, err := uowFactory.NewUnitOfWork(ctx).DocumentRepository().FindOne(ctx, specification.ByID{ID: res.DocumentId})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "lecture notes", doc.OriginalText)
	assert.Equal(t, ".txt", doc.FileType)
}

func TestDocumentUploadUnknownSessionReturnsNil(t *testing.T) {
	svc, _, publisher, _ := newDocumentService(t)

	res, err := svc.Upload(context.Background(), &dto.UploadDocumentRequest{
		SessionId: uuid.New(),
	}, "notes.txt", []byte("text"))
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, publisher.payloads)
}

func TestDocumentUploadRejectsBadInput(t *testing.T) {
	svc, sessions, _, _ := newDocumentService(t)
	ctx := context.Background()

	created, err := sessions.Create(ctx, "198.51.100.4")
	require.NoError(t, err)

	tests := []struct {
		name     string
		filename string
		data     []byte
		prompt   string
		code     int
	}{
		{"unsupported extension", "payload.exe", []byte("x"), "", fiber.StatusBadRequest},
		{"oversized file", "big.txt", []byte(strings.Repeat("a", 1024*1024+1)), "", fiber.StatusRequestEntityTooLarge},
		{"dangerous prompt", "notes.txt", []byte("x"), "<script>alert(1)</script>", fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(ctx, &dto.UploadDocumentRequest{
				SessionId:  created.SessionId,
				UserPrompt: tt.prompt,
			}, tt.filename, tt.data)
			require.Error(t, err)
			var fiberErr *fiber.Error
			require.ErrorAs(t, err, &fiberErr)
			assert.Equal(t, tt.code, fiberErr.Code)
		})
	}
}

func TestDocumentUploadBinaryFormatsGetPlaceholderText(t *testing.T) {
	svc, sessions, _, uowFactory := newDocumentService(t)
	ctx := context.Background()

	created, err := sessions.Create(ctx, "198.51.100.4")
	require.NoError(t, err)

	res, err := svc.Upload(ctx, &dto.UploadDocumentRequest{
		SessionId: created.SessionId,
	}, "paper.pdf", []byte{0x25, 0x50, 0x44, 0x46})
	require.NoError(t, err)
	require.NotNil(t, res)

	doc, err := uowFactory.NewUnitOfWork(ctx).DocumentRepository().FindOne(ctx, specification.ByID{ID: res.DocumentId})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "PDF processing not implemented yet", doc.OriginalText)
}
