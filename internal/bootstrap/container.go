package bootstrap

import (
	"log"
	"time"

	"edubook-be/internal/config"
	"edubook-be/internal/controller"
	"edubook-be/internal/handler"
	"edubook-be/internal/pkg/logger"
	"edubook-be/internal/repository/memory"
	"edubook-be/internal/repository/unitofwork"
	"edubook-be/internal/service"
	"edubook-be/internal/websocket"
	pkgEvents "edubook-be/pkg/events"
	"edubook-be/pkg/llm/factory"
	pktNats "edubook-be/pkg/nats"
	"edubook-be/pkg/outline"
	"edubook-be/pkg/pipeline"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const processDocumentTopic = "process_document"

type Container struct {
	// Controllers
	SessionController  controller.ISessionController
	DocumentController controller.IDocumentController
	ContentController  controller.IContentController
	EventController    controller.IEventController

	// Background Services (Exposed for main.go to run)
	ProcessingService service.IProcessingService
	EventService      service.IEventService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(factory.ProviderConfig{
		ProviderType:  cfg.Ai.LLMProvider,
		ModelName:     cfg.Ai.LLMModel,
		OpenAIAPIKey:  cfg.Ai.OpenAIAPIKey,
		OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	// NATS mirror for progress events, best effort.
	var eventMirror pkgEvents.Mirror
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventMirror = natsPub
	}

	sessionCache := memory.NewSessionCache()

	// 5. Progress events
	eventService := service.NewEventService(uowFactory,
		time.Duration(cfg.Events.RetentionHours)*time.Hour, sysLogger)

	pipelineLogger := logger.NewIsolatedLogger(cfg.App.PipelineLogPath)
	notifier := pkgEvents.NewNotifier(eventService, eventMirror, pipelineLogger)

	// 6. Pipeline
	var estimator pipeline.TokenEstimator
	if tk, err := pipeline.NewTiktokenEstimator(cfg.Ai.LLMModel); err != nil {
		log.Printf("[WARN] Token estimator unavailable: %v", err)
	} else {
		estimator = tk
	}

	llmClient := pipeline.NewClient(llmProvider, notifier, estimator, pipelineLogger, pipeline.ClientConfig{
		SpacingFloor: time.Duration(cfg.Pipeline.MinRequestIntervalMs) * time.Millisecond,
		Window:       time.Duration(cfg.Pipeline.WindowSeconds) * time.Second,
		WindowLimit:  cfg.Pipeline.WindowLimit,
	})

	analyzer := outline.NewAnalyzer(llmClient)
	agentLogService := service.NewAgentLogService(uowFactory)
	revisor := pipeline.NewReviseAgent(llmClient)

	orchestrator := pipeline.NewOrchestrator(
		pipeline.NewSummarizeAgent(llmClient),
		pipeline.NewGenerateAgent(llmClient, analyzer),
		pipeline.NewReviewAgent(llmClient),
		revisor,
		pipeline.NewEnhanceAgent(llmClient),
		notifier,
		agentLogService,
		pipelineLogger,
	)

	// 7. Services
	publisherService := service.NewPublisherService(processDocumentTopic, pubSub)
	processingService := service.NewProcessingService(
		pubSub,
		processDocumentTopic,
		uowFactory,
		orchestrator,
		notifier,
		sysLogger,
	)

	sessionService := service.NewSessionService(uowFactory, sessionCache)
	documentService := service.NewDocumentService(
		uowFactory,
		sessionService,
		publisherService,
		notifier,
		sysLogger,
		int64(cfg.App.MaxUploadBytes),
	)
	contentService := service.NewContentService(uowFactory, revisor, notifier, sysLogger)

	// 8. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(wsLogger)
	go wsHub.Run()

	streamHandler := handler.NewStreamHandler(wsHub, eventService, sessionService, wsLogger)

	return &Container{
		SessionController:  controller.NewSessionController(sessionService),
		DocumentController: controller.NewDocumentController(documentService),
		ContentController:  controller.NewContentController(contentService),
		EventController:    controller.NewEventController(eventService),
		ProcessingService:  processingService,
		EventService:       eventService,
		StreamHandler:      streamHandler,
		WebSocketHub:       wsHub,
	}
}
