package implementation

import (
	"context"
	"testing"
	"time"

	"edubook-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(sessionId uuid.UUID, eventType string, createdAt time.Time) *entity.ProcessingEvent {
	return &entity.ProcessingEvent{
		Id:        uuid.New(),
		SessionId: sessionId,
		EventType: eventType,
		EventData: `{"status":"test"}`,
		CreatedAt: createdAt,
	}
}

func TestFindUnacknowledgedReturnsCreationOrder(t *testing.T) {
	repo := NewProcessingEventRepository(testDB(t))
	ctx := context.Background()
	sessionId := uuid.New()
	base := time.Now().Add(-time.Minute)

	// Insert out of chronological order.
	second := newEvent(sessionId, "agent_started", base.Add(2*time.Second))
	first := newEvent(sessionId, "upload_complete", base)
	third := newEvent(sessionId, "agent_completed", base.Add(4*time.Second))
	for _, e := range []*entity.ProcessingEvent{second, first, third} {
		require.NoError(t, repo.Create(ctx, e))
	}

	events, err := repo.FindUnacknowledged(ctx, sessionId)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "upload_complete", events[0].EventType)
	assert.Equal(t, "agent_started", events[1].EventType)
	assert.Equal(t, "agent_completed", events[2].EventType)
}

func TestAcknowledgeRemovesFromPendingAndIsIdempotent(t *testing.T) {
	repo := NewProcessingEventRepository(testDB(t))
	ctx := context.Background()
	sessionId := uuid.New()

	event := newEvent(sessionId, "heartbeat", time.Now())
	require.NoError(t, repo.Create(ctx, event))

	require.NoError(t, repo.Acknowledge(ctx, event.Id))
	require.NoError(t, repo.Acknowledge(ctx, event.Id))

	// Unknown ids are not an error either.
	require.NoError(t, repo.Acknowledge(ctx, uuid.New()))

	events, err := repo.FindUnacknowledged(ctx, sessionId)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAcknowledgeDoesNotAffectOtherSessions(t *testing.T) {
	repo := NewProcessingEventRepository(testDB(t))
	ctx := context.Background()
	sessionA := uuid.New()
	sessionB := uuid.New()

	eventA := newEvent(sessionA, "llm_started", time.Now())
	eventB := newEvent(sessionB, "llm_started", time.Now())
	require.NoError(t, repo.Create(ctx, eventA))
	require.NoError(t, repo.Create(ctx, eventB))

	require.NoError(t, repo.Acknowledge(ctx, eventA.Id))

	pendingA, err := repo.FindUnacknowledged(ctx, sessionA)
	require.NoError(t, err)
	assert.Empty(t, pendingA)

	pendingB, err := repo.FindUnacknowledged(ctx, sessionB)
	require.NoError(t, err)
	require.Len(t, pendingB, 1)
	assert.Equal(t, eventB.Id, pendingB[0].Id)
}

func TestPurgeAcknowledgedSparesUnacknowledgedAndRecent(t *testing.T) {
	repo := NewProcessingEventRepository(testDB(t))
	ctx := context.Background()
	sessionId := uuid.New()
	cutoff := time.Now().Add(-time.Hour)

	oldAcked := newEvent(sessionId, "agent_started", cutoff.Add(-time.Hour))
	oldPending := newEvent(sessionId, "agent_completed", cutoff.Add(-time.Hour))
	recentAcked := newEvent(sessionId, "llm_completed", cutoff.Add(time.Minute))
	for _, e := range []*entity.ProcessingEvent{oldAcked, oldPending, recentAcked} {
		require.NoError(t, repo.Create(ctx, e))
	}
	require.NoError(t, repo.Acknowledge(ctx, oldAcked.Id))
	require.NoError(t, repo.Acknowledge(ctx, recentAcked.Id))

	purged, err := repo.PurgeAcknowledged(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	// The old unacknowledged event survives regardless of age.
	pending, err := repo.FindUnacknowledged(ctx, sessionId)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, oldPending.Id, pending[0].Id)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
