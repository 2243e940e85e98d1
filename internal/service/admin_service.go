package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
	"github.com/spec-kit/realty-service/internal/search"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// AdminService covers administrator workflows over agent accounts.
type AdminService struct {
	agents     repository.AgentRepository
	dispatcher events.Dispatcher
	bounds     search.Bounds
}

// NewAdminService builds the service.
func NewAdminService(agents repository.AgentRepository, dispatcher events.Dispatcher, bounds search.Bounds) *AdminService {
	return &AdminService{agents: agents, dispatcher: dispatcher, bounds: bounds}
}

// ListAgents returns agents matching the review filter.
func (s *AdminService) ListAgents(ctx context.Context, filter repository.AgentFilter) ([]domain.Agent, error) {
	filter.Limit, filter.Offset = s.bounds.Normalize(filter.Limit, filter.Offset)
	return s.agents.List(ctx, filter)
}

// ApproveAgent marks an agent approved for listing management.
func (s *AdminService) ApproveAgent(ctx context.Context, adminID, agentID string) (*domain.Agent, error) {
	agent, err := s.getAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	agent.Approved = true
	if err := s.agents.Update(ctx, agent); err != nil {
		return nil, err
	}
	s.publishStatus(ctx, events.EventAgentApproved, adminID, agent)
	return agent, nil
}

// SuspendAgent blocks an agent from elevated routes.
func (s *AdminService) SuspendAgent(ctx context.Context, adminID, agentID string) (*domain.Agent, error) {
	agent, err := s.getAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	agent.AccountStatus = domain.AgentStatusSuspended
	if err := s.agents.Update(ctx, agent); err != nil {
		return nil, err
	}
	s.publishStatus(ctx, events.EventAgentSuspended, adminID, agent)
	return agent, nil
}

// ReinstateAgent restores a suspended agent to active status.
func (s *AdminService) ReinstateAgent(ctx context.Context, adminID, agentID string) (*domain.Agent, error) {
	agent, err := s.getAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	agent.AccountStatus = domain.AgentStatusActive
	if err := s.agents.Update(ctx, agent); err != nil {
		return nil, err
	}
	s.publishStatus(ctx, events.EventAgentApproved, adminID, agent)
	return agent, nil
}

func (s *AdminService) getAgent(ctx context.Context, agentID string) (*domain.Agent, error) {
	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("agent", nil)
		}
		return nil, err
	}
	return agent, nil
}

func (s *AdminService) publishStatus(ctx context.Context, eventType events.EventType, adminID string, agent *domain.Agent) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{Kind: domain.SubjectKindAdmin, SubjectID: adminID},
		Timestamp: time.Now(),
		Payload: events.AgentStatusPayload{
			AgentID:       agent.ID,
			Approved:      agent.Approved,
			AccountStatus: agent.AccountStatus,
		},
	})
}
