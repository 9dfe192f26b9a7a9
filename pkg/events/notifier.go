package events

import (
	"context"
	"time"

	"edubook-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Sink persists progress events for later delivery to polling or
// streaming clients.
type Sink interface {
	Store(ctx context.Context, sessionId uuid.UUID, eventType string, payload map[string]interface{}) error
}

// Mirror republishes events onto an external bus. Mirroring is best
// effort: a failed mirror never fails the pipeline.
type Mirror interface {
	Publish(ctx context.Context, event Event) error
}

// Notifier fans progress events out to the durable sink and, when
// configured, to an external mirror. Notification failures are logged
// and swallowed: progress reporting must never abort processing.
type Notifier struct {
	sink   Sink
	mirror Mirror
	log    logger.ILogger
}

func NewNotifier(sink Sink, mirror Mirror, log logger.ILogger) *Notifier {
	return &Notifier{
		sink:   sink,
		mirror: mirror,
		log:    log,
	}
}

// Notify stores an event for the session. The payload is enriched with
// the emission timestamp and session id before persisting. A nil session
// id means the caller runs detached from any session; the event is
// logged but not stored.
func (n *Notifier) Notify(ctx context.Context, sessionId uuid.UUID, eventType string, payload map[string]interface{}) {
	enriched := make(map[string]interface{}, len(payload)+2)
	for k, v := range payload {
		enriched[k] = v
	}
	now := time.Now()
	enriched["timestamp"] = now.UTC().Format(time.RFC3339)
	enriched["session_id"] = sessionId.String()

	if sessionId == uuid.Nil {
		n.log.Debug("events", "skipping event for detached run", map[string]interface{}{
			"event_type": eventType,
		})
		return
	}

	if err := n.sink.Store(ctx, sessionId, eventType, enriched); err != nil {
		n.log.Warn("events", "failed to store progress event", map[string]interface{}{
			"event_type": eventType,
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}

	if n.mirror != nil {
		event := BaseEvent{
			Type:       eventType,
			Data:       enriched,
			OccurredAt: now,
		}
		if err := n.mirror.Publish(ctx, event); err != nil {
			n.log.Warn("events", "failed to mirror progress event", map[string]interface{}{
				"event_type": eventType,
				"session_id": sessionId.String(),
				"error":      err.Error(),
			})
		}
	}
}

func (n *Notifier) NotifyUploadComplete(ctx context.Context, sessionId uuid.UUID, filename string, fileSize int64) {
	n.Notify(ctx, sessionId, KindUploadComplete, map[string]interface{}{
		"filename":  filename,
		"file_size": fileSize,
		"status":    "uploaded",
	})
}

func (n *Notifier) NotifyAgentStarted(ctx context.Context, sessionId uuid.UUID, agent, message string) {
	n.Notify(ctx, sessionId, KindAgentStarted, map[string]interface{}{
		"agent":   agent,
		"message": message,
	})
}

func (n *Notifier) NotifyAgentCompleted(ctx context.Context, sessionId uuid.UUID, agent, message string) {
	n.Notify(ctx, sessionId, KindAgentCompleted, map[string]interface{}{
		"agent":   agent,
		"message": message,
	})
}

func (n *Notifier) NotifyLLMStarted(ctx context.Context, sessionId uuid.UUID, requestType string, requestCount uint64, promptLength int) {
	n.Notify(ctx, sessionId, KindLLMStarted, map[string]interface{}{
		"request_type":  requestType,
		"request_count": requestCount,
		"prompt_length": promptLength,
	})
}

func (n *Notifier) NotifyLLMCompleted(ctx context.Context, sessionId uuid.UUID, requestType string, requestCount uint64, responseLength int, duration time.Duration) {
	n.Notify(ctx, sessionId, KindLLMCompleted, map[string]interface{}{
		"request_type":    requestType,
		"request_count":   requestCount,
		"response_length": responseLength,
		"duration":        duration.Seconds(),
	})
}

func (n *Notifier) NotifyLLMError(ctx context.Context, sessionId uuid.UUID, requestType string, requestCount uint64, errMessage string) {
	n.Notify(ctx, sessionId, KindLLMError, map[string]interface{}{
		"request_type":  requestType,
		"request_count": requestCount,
		"error":         errMessage,
	})
}

func (n *Notifier) NotifyContentSaved(ctx context.Context, sessionId uuid.UUID, contentId uuid.UUID, contentType string, version int) {
	n.Notify(ctx, sessionId, KindContentSaved, map[string]interface{}{
		"content_id":   contentId.String(),
		"content_type": contentType,
		"version":      version,
	})
}

func (n *Notifier) NotifyProcessingComplete(ctx context.Context, sessionId uuid.UUID, message string, accuracyScore float64, elapsed time.Duration) {
	n.Notify(ctx, sessionId, KindProcessingComplete, map[string]interface{}{
		"message":               message,
		"accuracy_score":        accuracyScore,
		"total_processing_time": elapsed.Seconds(),
	})
}

func (n *Notifier) NotifyError(ctx context.Context, sessionId uuid.UUID, message string) {
	n.Notify(ctx, sessionId, KindError, map[string]interface{}{
		"error": message,
	})
}

func (n *Notifier) NotifyHeartbeat(ctx context.Context, sessionId uuid.UUID) {
	n.Notify(ctx, sessionId, KindHeartbeat, map[string]interface{}{
		"status": "alive",
	})
}
