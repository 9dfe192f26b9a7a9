package service

import (
	"context"
	"encoding/json"
	"time"

	"edubook-be/internal/dto"
	"edubook-be/internal/entity"
	"edubook-be/internal/pkg/logger"
	"edubook-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IEventService interface {
	// Poll returns the session's unacknowledged events in creation order.
	Poll(ctx context.Context, sessionId uuid.UUID) (*dto.PollEventsResponse, error)
	// Acknowledge marks an event consumed; repeating it is a no-op.
	Acknowledge(ctx context.Context, eventId uuid.UUID) (*dto.AcknowledgeEventResponse, error)
	// Purge removes acknowledged events older than the retention window
	// and returns the number of rows removed.
	Purge(ctx context.Context) (int64, error)
	// Store persists one event; it is the durable sink behind the
	// pipeline's progress notifier.
	Store(ctx context.Context, sessionId uuid.UUID, eventType string, payload map[string]interface{}) error
}

type eventService struct {
	uowFactory unitofwork.RepositoryFactory
	retention  time.Duration
	log        logger.ILogger
}

func NewEventService(uowFactory unitofwork.RepositoryFactory, retention time.Duration, log logger.ILogger) IEventService {
	if retention <= 0 {
		retention = time.Hour
	}
	return &eventService{
		uowFactory: uowFactory,
		retention:  retention,
		log:        log,
	}
}

func (s *eventService) Store(ctx context.Context, sessionId uuid.UUID, eventType string, payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	event := entity.ProcessingEvent{
		Id:        uuid.New(),
		SessionId: sessionId,
		EventType: eventType,
		EventData: string(data),
		CreatedAt: time.Now(),
	}
	return uow.ProcessingEventRepository().Create(ctx, &event)
}

func (s *eventService) Poll(ctx context.Context, sessionId uuid.UUID) (*dto.PollEventsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pending, err := uow.ProcessingEventRepository().FindUnacknowledged(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(pending))
	for _, event := range pending {
		var payload map[string]interface{}
		if err := json.Unmarshal([]byte(event.EventData), &payload); err != nil {
			s.log.Warn("events", "stored event payload is not valid JSON", map[string]interface{}{
				"event_id": event.Id.String(),
				"error":    err.Error(),
			})
			payload = map[string]interface{}{"raw": event.EventData}
		}
		responses = append(responses, dto.EventResponse{
			EventId:   event.Id,
			SessionId: event.SessionId,
			EventType: event.EventType,
			EventData: payload,
			CreatedAt: event.CreatedAt,
		})
	}

	return &dto.PollEventsResponse{Events: responses}, nil
}

func (s *eventService) Acknowledge(ctx context.Context, eventId uuid.UUID) (*dto.AcknowledgeEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.ProcessingEventRepository().Acknowledge(ctx, eventId); err != nil {
		return nil, err
	}

	return &dto.AcknowledgeEventResponse{
		EventId:      eventId,
		Acknowledged: true,
	}, nil
}

func (s *eventService) Purge(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	cutoff := time.Now().Add(-s.retention)
	purged, err := uow.ProcessingEventRepository().PurgeAcknowledged(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if purged > 0 {
		s.log.Info("events", "purged acknowledged events", map[string]interface{}{
			"count":  purged,
			"cutoff": cutoff.Format(time.RFC3339),
		})
	}
	return purged, nil
}
