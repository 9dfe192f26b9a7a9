package events

import "time"

// Progress event kinds emitted during document processing. Clients key
// off these to drive their progress UI.
const (
	KindUploadComplete     = "upload_complete"
	KindAgentStarted       = "agent_started"
	KindAgentCompleted     = "agent_completed"
	KindLLMStarted         = "llm_started"
	KindLLMCompleted       = "llm_completed"
	KindLLMError           = "llm_error"
	KindContentSaved       = "content_saved"
	KindProcessingComplete = "processing_complete"
	KindError              = "error"
	KindHeartbeat          = "heartbeat"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "llm_started").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common Event implementation used across the pipeline.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
