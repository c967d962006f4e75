// internal/service/agentapp/service.go
package agentapp

import (
	"context"
	"database/sql"
	"strings"

	"lifesure-service/internal/domain/agentapp"
	"lifesure-service/internal/domain/user"
	"lifesure-service/internal/guard"

	"go.uber.org/zap"
)

// Repository is the persistence contract for agent applications.
type Repository interface {
	Create(ctx context.Context, a *agentapp.AgentApplication) error
	FindByID(ctx context.Context, id string) (*agentapp.AgentApplication, error)
	ListPending(ctx context.Context) ([]agentapp.AgentApplication, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id, feedback string) error
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Apply files a new agent application. Open to anyone.
func (s *Service) Apply(ctx context.Context, req *agentapp.ApplyRequest) (*agentapp.AgentApplication, error) {
	a := &agentapp.AgentApplication{
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:   req.FullName,
		Experience: sql.NullString{String: req.Experience, Valid: req.Experience != ""},
		Specialty:  sql.NullString{String: req.Specialty, Valid: req.Specialty != ""},
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("failed to file agent application", zap.Error(err))
		return nil, err
	}

	s.logger.Info("agent application filed", zap.String("id", a.ID), zap.String("email", a.Email))
	return a, nil
}

// ListPending returns applications awaiting a decision. Admin only.
func (s *Service) ListPending(ctx context.Context, caller user.User) ([]agentapp.AgentApplication, error) {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return nil, err
	}
	return s.repo.ListPending(ctx)
}

// Approve accepts an agent application. Admin only. The applicant's User
// role is NOT changed here; granting the agent role is a separate admin
// action on the user record.
func (s *Service) Approve(ctx context.Context, caller user.User, id string) (*agentapp.AgentApplication, error) {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return nil, err
	}

	if err := s.repo.Approve(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("agent application approved", zap.String("id", id), zap.String("approved_by", caller.Email))
	return s.repo.FindByID(ctx, id)
}

// Reject declines an agent application with feedback. Admin only.
func (s *Service) Reject(ctx context.Context, caller user.User, id, feedback string) (*agentapp.AgentApplication, error) {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return nil, err
	}

	if err := s.repo.Reject(ctx, id, feedback); err != nil {
		return nil, err
	}

	s.logger.Info("agent application rejected", zap.String("id", id), zap.String("rejected_by", caller.Email))
	return s.repo.FindByID(ctx, id)
}
