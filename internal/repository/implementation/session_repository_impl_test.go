package implementation

import (
	"context"
	"testing"

	"edubook-be/internal/constant"
	"edubook-be/internal/entity"
	"edubook-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCreateAndFindOne(t *testing.T) {
	repo := NewSessionRepository(testDB(t))
	ctx := context.Background()

	session := &entity.Session{
		Id:     uuid.New(),
		UserIP: "203.0.113.7",
		Status: constant.SessionStatusActive,
	}
	require.NoError(t, repo.Create(ctx, session))
	assert.False(t, session.CreatedAt.IsZero())

	found, err := repo.FindOne(ctx, specification.ByID{ID: session.Id})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, session.Id, found.Id)
	assert.Equal(t, "203.0.113.7", found.UserIP)
	assert.Equal(t, constant.SessionStatusActive, found.Status)
}

func TestSessionFindOneNotFoundReturnsNil(t *testing.T) {
	repo := NewSessionRepository(testDB(t))

	found, err := repo.FindOne(context.Background(), specification.ByID{ID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestSessionUpdateStatus(t *testing.T) {
	repo := NewSessionRepository(testDB(t))
	ctx := context.Background()

	session := &entity.Session{
		Id:     uuid.New(),
		Status: constant.SessionStatusActive,
	}
	require.NoError(t, repo.Create(ctx, session))

	require.NoError(t, repo.UpdateStatus(ctx, session.Id, constant.SessionStatusProcessing))
	require.NoError(t, repo.UpdateStatus(ctx, session.Id, constant.SessionStatusCompleted))

	found, err := repo.FindOne(ctx, specification.ByID{ID: session.Id})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, constant.SessionStatusCompleted, found.Status)
}
