package service

import (
	"context"
	"time"

	"edubook-be/internal/constant"
	"edubook-be/internal/dto"
	"edubook-be/internal/entity"
	"edubook-be/internal/repository/memory"
	"edubook-be/internal/repository/specification"
	"edubook-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, userIP string) (*dto.CreateSessionResponse, error)
	Status(ctx context.Context, id uuid.UUID) (*dto.SessionStatusResponse, error)
	// Exists is the fast path used by upload validation; it checks the
	// in-memory cache before touching the database.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.SessionCache
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, cache *memory.SessionCache) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *sessionService) Create(ctx context.Context, userIP string) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := entity.Session{
		Id:        uuid.New(),
		UserIP:    userIP,
		Status:    constant.SessionStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	s.cache.Save(&session)

	return &dto.CreateSessionResponse{
		SessionId: session.Id,
		Status:    session.Status,
		CreatedAt: session.CreatedAt,
	}, nil
}

func (s *sessionService) Status(ctx context.Context, id uuid.UUID) (*dto.SessionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Status changes while processing runs, so always read fresh and
	// refresh the cache afterwards.
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil // Not found
	}

	s.cache.Save(session)

	return &dto.SessionStatusResponse{
		SessionId: session.Id,
		Status:    session.Status,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}, nil
}

func (s *sessionService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, found := s.cache.Get(id.String()); found {
		return true, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return false, err
	}
	if session == nil {
		return false, nil
	}

	s.cache.Save(session)
	return true, nil
}
