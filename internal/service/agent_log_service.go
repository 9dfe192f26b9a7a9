package service

import (
	"context"
	"time"

	"edubook-be/internal/entity"
	"edubook-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// AgentLogService appends the pipeline's audit trail, one row per agent
// invocation.
type AgentLogService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAgentLogService(uowFactory unitofwork.RepositoryFactory) *AgentLogService {
	return &AgentLogService{uowFactory: uowFactory}
}

func (s *AgentLogService) LogAgentActivity(ctx context.Context, sessionId uuid.UUID, agent, input, output string, duration time.Duration) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	log := entity.AgentLog{
		SessionId:      sessionId,
		AgentType:      agent,
		InputData:      input,
		OutputData:     output,
		ProcessingTime: duration.Seconds(),
		Timestamp:      time.Now(),
	}
	return uow.AgentLogRepository().Create(ctx, &log)
}
