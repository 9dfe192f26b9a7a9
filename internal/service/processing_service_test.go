package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"edubook-be/internal/constant"
	"edubook-be/internal/dto"
	"edubook-be/internal/entity"
	"edubook-be/internal/repository/specification"
	"edubook-be/internal/repository/unitofwork"
	"edubook-be/pkg/events"
	"edubook-be/pkg/llm"
	"edubook-be/pkg/outline"
	"edubook-be/pkg/pipeline"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider plays back canned responses per pipeline stage so
// the whole consumer can run without a live model.
type scriptedProvider struct {
	generate func(prompt string) (string, error)
}

func (p *scriptedProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	return p.generate(history[len(history)-1].Content)
}

func (p *scriptedProvider) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	return p.generate(prompt)
}

func stageScript() *scriptedProvider {
	return &scriptedProvider{generate: func(prompt string) (string, error) {
		switch {
		case strings.HasPrefix(prompt, "Summarize the following document"):
			return "Summary of the uploaded document.", nil
		case strings.HasPrefix(prompt, "Analyze the following document summary"):
			if strings.Contains(prompt, "3-day bootcamp") {
				return "TITLE: Crash Course\nSTRUCTURE_TYPE: daily\nSTRUCTURE_COUNT: 3", nil
			}
			return "TITLE: Field Guide\nSTRUCTURE_TYPE: chapters\nSTRUCTURE_COUNT: 5", nil
		case strings.HasPrefix(prompt, "Write the educational content"):
			return "Subsection body text.", nil
		case strings.HasPrefix(prompt, "Review the generated educational content"):
			return "Accuracy Score: 90\nLooks faithful to the source.", nil
		case strings.HasPrefix(prompt, "Revise the educational content"):
			return "Revised body.", nil
		case strings.HasPrefix(prompt, "Enhance the educational content"):
			return "Enhanced body.", nil
		}
		return "unexpected prompt", nil
	}}
}

type processingHarness struct {
	uowFactory   unitofwork.RepositoryFactory
	eventService IEventService
	pubSub       *gochannel.GoChannel
	topic        string
}

func newProcessingHarness(t *testing.T, provider llm.LLMProvider) *processingHarness {
	t.Helper()

	uowFactory := unitofwork.NewRepositoryFactory(testDB(t))
	eventService := NewEventService(uowFactory, time.Hour, nopLogger{})
	notifier := events.NewNotifier(eventService, nil, nopLogger{})

	client := pipeline.NewClient(provider, notifier, nil, nopLogger{}, pipeline.ClientConfig{
		SpacingFloor: time.Millisecond,
		Window:       time.Second,
		WindowLimit:  1000,
	})
	analyzer := outline.NewAnalyzer(client)
	orchestrator := pipeline.NewOrchestrator(
		pipeline.NewSummarizeAgent(client),
		pipeline.NewGenerateAgent(client, analyzer),
		pipeline.NewReviewAgent(client),
		pipeline.NewReviseAgent(client),
		pipeline.NewEnhanceAgent(client),
		notifier,
		NewAgentLogService(uowFactory),
		nopLogger{},
	)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	topic := "process_document"
	svc := NewProcessingService(pubSub, topic, uowFactory, orchestrator, notifier, nopLogger{})
	require.NoError(t, svc.Consume(context.Background()))

	return &processingHarness{
		uowFactory:   uowFactory,
		eventService: eventService,
		pubSub:       pubSub,
		topic:        topic,
	}
}

func (h *processingHarness) seed(t *testing.T, text string) (uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	uow := h.uowFactory.NewUnitOfWork(ctx)

	session := entity.Session{
		Id:     uuid.New(),
		Status: constant.SessionStatusProcessing,
	}
	require.NoError(t, uow.SessionRepository().Create(ctx, &session))

	document := entity.Document{
		Id:           uuid.New(),
		SessionId:    session.Id,
		OriginalText: text,
		FileName:     "notes.txt",
		FileType:     ".txt",
	}
	require.NoError(t, uow.DocumentRepository().Create(ctx, &document))
	return session.Id, document.Id
}

func (h *processingHarness) publish(t *testing.T, task dto.ProcessDocumentTask) {
	t.Helper()
	publisher := NewPublisherService(h.topic, h.pubSub)
	payload, err := json.Marshal(task)
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), payload))
}

func (h *processingHarness) sessionStatus(t *testing.T, sessionId uuid.UUID) string {
	t.Helper()
	ctx := context.Background()
	session, err := h.uowFactory.NewUnitOfWork(ctx).SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	require.NoError(t, err)
	require.NotNil(t, session)
	return session.Status
}

func TestConsumeProcessesDocumentToCompletion(t *testing.T) {
	h := newProcessingHarness(t, stageScript())
	sessionId, documentId := h.seed(t, "Lecture notes on concurrency.")

	h.publish(t, dto.ProcessDocumentTask{
		SessionId:  sessionId,
		DocumentId: documentId,
		UserPrompt: "create a 3-day bootcamp",
	})

	require.Eventually(t, func() bool {
		return h.sessionStatus(t, sessionId) == constant.SessionStatusCompleted
	}, 5*time.Second, 20*time.Millisecond)

	ctx := context.Background()
	content, err := h.uowFactory.NewUnitOfWork(ctx).GeneratedContentRepository().FindLatestBySessionId(ctx, sessionId)
	require.NoError(t, err)
	require.NotNil(t, content)

	assert.Equal(t, constant.ContentTypeEbook, content.ContentType)
	assert.Equal(t, 1, content.Version)
	assert.Contains(t, content.ContentMarkdown, "# Crash Course")
	assert.Contains(t, content.ContentMarkdown, "## Chapter 1: Day 1")
	assert.Contains(t, content.ContentMarkdown, "## Chapter 2: Day 2")
	assert.Contains(t, content.ContentMarkdown, "## Chapter 3: Day 3")
	assert.NotContains(t, content.ContentMarkdown, "Day 4")
	assert.Contains(t, content.ContentMarkdown, "### 1.1 Learning Objectives")

	require.NotNil(t, content.AccuracyScore)
	assert.GreaterOrEqual(t, *content.AccuracyScore, 0.0)
	assert.LessOrEqual(t, *content.AccuracyScore, 100.0)

	// The progress trail ends with saved content and completion.
	res, err := h.eventService.Poll(ctx, sessionId)
	require.NoError(t, err)
	types := make([]string, len(res.Events))
	for i, e := range res.Events {
		types[i] = e.EventType
	}
	assert.Contains(t, types, events.KindContentSaved)
	assert.Contains(t, types, events.KindProcessingComplete)
	assert.NotContains(t, types, events.KindError)
}

func TestConsumeEmptyInstructionFallsBackToChapters(t *testing.T) {
	h := newProcessingHarness(t, stageScript())
	sessionId, documentId := h.seed(t, "A long reference text.")

	h.publish(t, dto.ProcessDocumentTask{
		SessionId:  sessionId,
		DocumentId: documentId,
		UserPrompt: "",
	})

	require.Eventually(t, func() bool {
		return h.sessionStatus(t, sessionId) == constant.SessionStatusCompleted
	}, 5*time.Second, 20*time.Millisecond)

	ctx := context.Background()
	content, err := h.uowFactory.NewUnitOfWork(ctx).GeneratedContentRepository().FindLatestBySessionId(ctx, sessionId)
	require.NoError(t, err)
	require.NotNil(t, content)

	for _, heading := range []string{
		"## Chapter 1: Introduction",
		"## Chapter 2: Core Concepts",
		"## Chapter 3: Advanced Topics",
		"## Chapter 4: Practical Applications",
		"## Chapter 5: Assessment and Resources",
	} {
		assert.Contains(t, content.ContentMarkdown, heading)
	}
}

func TestConsumePanickingProviderMarksSessionErrored(t *testing.T) {
	provider := &scriptedProvider{generate: func(prompt string) (string, error) {
		panic("provider exploded")
	}}
	h := newProcessingHarness(t, provider)
	sessionId, documentId := h.seed(t, "Some text.")

	h.publish(t, dto.ProcessDocumentTask{
		SessionId:  sessionId,
		DocumentId: documentId,
	})

	require.Eventually(t, func() bool {
		return h.sessionStatus(t, sessionId) == constant.SessionStatusError
	}, 5*time.Second, 20*time.Millisecond)

	ctx := context.Background()

	// No content row, one terminal status, and a visible error event.
	content, err := h.uowFactory.NewUnitOfWork(ctx).GeneratedContentRepository().FindLatestBySessionId(ctx, sessionId)
	require.NoError(t, err)
	assert.Nil(t, content)

	res, err := h.eventService.Poll(ctx, sessionId)
	require.NoError(t, err)
	var sawError bool
	for _, e := range res.Events {
		if e.EventType == events.KindError {
			sawError = true
			assert.Contains(t, e.EventData["error"], "pipeline panic")
		}
	}
	assert.True(t, sawError)
}

func TestConsumeDropsTaskForMissingDocument(t *testing.T) {
	h := newProcessingHarness(t, stageScript())
	sessionId, _ := h.seed(t, "Some text.")

	h.publish(t, dto.ProcessDocumentTask{
		SessionId:  sessionId,
		DocumentId: uuid.New(),
	})

	// The task is dropped without flipping the session.
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, constant.SessionStatusProcessing, h.sessionStatus(t, sessionId))
}
