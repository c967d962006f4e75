// internal/service/application/service.go

// Package application implements the application lifecycle: submission,
// agent assignment, approval/rejection, payment and activation. Every
// operation evaluates its authorization predicate before touching state;
// reads needed to resolve ownership are discarded on denial.
package application

import (
	"context"
	"database/sql"
	"time"

	"lifesure-service/internal/domain/application"
	"lifesure-service/internal/domain/policy"
	"lifesure-service/internal/domain/user"
	"lifesure-service/internal/guard"
	xerrors "lifesure-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Repository is the persistence contract for applications.
type Repository interface {
	Create(ctx context.Context, a *application.Application) error
	FindByID(ctx context.Context, id string) (*application.Application, error)
	List(ctx context.Context) ([]application.Application, error)
	ListByAgent(ctx context.Context, agentEmail string) ([]application.Application, error)
	ListByCustomer(ctx context.Context, customerEmail string) ([]application.Application, error)
	UpdateAssignedAgent(ctx context.Context, id, agentEmail string) error
	UpdateStatus(ctx context.Context, id string, status application.Status) error
	ApproveWithPurchaseCount(ctx context.Context, id, policyID string) error
	Reject(ctx context.Context, id, feedback string) error
	MarkPaid(ctx context.Context, id string, dueDate time.Time) error
}

// PolicyReader resolves referenced policies at submission time.
type PolicyReader interface {
	FindByID(ctx context.Context, id string) (*policy.Policy, error)
}

// UserReader resolves assignee accounts.
type UserReader interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type Service struct {
	repo     Repository
	policies PolicyReader
	users    UserReader
	logger   *zap.Logger
}

func NewService(repo Repository, policies PolicyReader, users UserReader, logger *zap.Logger) *Service {
	return &Service{repo: repo, policies: policies, users: users, logger: logger}
}

// Submit creates an application in its initial state. Customers only, and
// only for themselves.
func (s *Service) Submit(ctx context.Context, caller user.User, req *application.SubmitRequest) (*application.Application, error) {
	if err := guard.All(
		guard.HasRole(user.RoleCustomer),
		guard.IsSelf(req.CustomerEmail),
	)(caller); err != nil {
		return nil, err
	}

	p, err := s.policies.FindByID(ctx, req.PolicyID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "referenced policy does not exist")
		}
		return nil, err
	}

	a := &application.Application{
		CustomerEmail:    caller.Email,
		CustomerName:     req.CustomerName,
		PolicyID:         p.ID,
		PolicyTitle:      p.Title,
		Address:          sql.NullString{String: req.Address, Valid: req.Address != ""},
		Phone:            sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		HealthConditions: req.HealthConditions,
		PremiumAmount:    p.BasePremium,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("failed to submit application", zap.Error(err))
		return nil, err
	}

	s.logger.Info("application submitted",
		zap.String("application_id", a.ID),
		zap.String("customer", a.CustomerEmail),
		zap.String("policy_id", a.PolicyID),
	)
	return a, nil
}

// ListAll returns every application for admins, and an agent's own
// assignments for agents. Everyone else is denied.
func (s *Service) ListAll(ctx context.Context, caller user.User) ([]application.Application, error) {
	switch caller.Role {
	case user.RoleAdmin:
		return s.repo.List(ctx)
	case user.RoleAgent:
		return s.repo.ListByAgent(ctx, caller.Email)
	default:
		return nil, guard.Deny("requires role admin or agent")
	}
}

// ListByAgent returns applications assigned to the given agent. The agent
// may only query their own assignments.
func (s *Service) ListByAgent(ctx context.Context, caller user.User, agentEmail string) ([]application.Application, error) {
	if err := guard.All(
		guard.HasRole(user.RoleAgent),
		guard.IsSelf(agentEmail),
	)(caller); err != nil {
		return nil, err
	}
	return s.repo.ListByAgent(ctx, caller.Email)
}

// ListByCustomer returns applications submitted by the given customer. The
// customer may only query their own submissions.
func (s *Service) ListByCustomer(ctx context.Context, caller user.User, customerEmail string) ([]application.Application, error) {
	if err := guard.All(
		guard.HasRole(user.RoleCustomer),
		guard.IsSelf(customerEmail),
	)(caller); err != nil {
		return nil, err
	}
	return s.repo.ListByCustomer(ctx, caller.Email)
}

// Get retrieves one application for an admin, the assigned agent, or the
// owning customer. The record must be read before ownership can be
// resolved; it is discarded on denial.
func (s *Service) Get(ctx context.Context, caller user.User, id string) (*application.Application, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := guard.Any(
		guard.HasRole(user.RoleAdmin),
		guard.All(guard.HasRole(user.RoleAgent), guard.IsSelf(a.AssignedAgent.String)),
		guard.IsSelf(a.CustomerEmail),
	)(caller); err != nil {
		return nil, err
	}
	return a, nil
}

// AssignAgent sets (or overwrites) the assigned agent. Admin only; legal
// from any status and does not itself change status.
func (s *Service) AssignAgent(ctx context.Context, caller user.User, id, agentEmail string) (*application.Application, error) {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return nil, err
	}

	assignee, err := s.users.FindByEmail(ctx, agentEmail)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "assignee is not registered")
		}
		return nil, err
	}
	if assignee.Role != user.RoleAgent {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "assignee is not an agent")
	}

	if err := s.repo.UpdateAssignedAgent(ctx, id, assignee.Email); err != nil {
		return nil, err
	}

	s.logger.Info("agent assigned",
		zap.String("application_id", id),
		zap.String("agent", assignee.Email),
		zap.String("assigned_by", caller.Email),
	)
	return s.repo.FindByID(ctx, id)
}

// SetStatus moves the application to the given status. Admins and agents
// only. Entering approved bumps the referenced policy's purchase counter
// exactly once, in the same transaction as the status write; replaying the
// approval of an already-approved application does not count again. A
// rejected application is terminal.
func (s *Service) SetStatus(ctx context.Context, caller user.User, id string, status application.Status) (*application.Application, error) {
	if err := guard.Any(
		guard.HasRole(user.RoleAdmin),
		guard.HasRole(user.RoleAgent),
	)(caller); err != nil {
		return nil, err
	}
	if !application.ValidStatus(status) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown status")
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == application.StatusRejected && status != application.StatusRejected {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "rejected application is terminal")
	}

	if status == application.StatusApproved {
		if err := s.repo.ApproveWithPurchaseCount(ctx, id, a.PolicyID); err != nil {
			s.logger.Error("failed to approve application", zap.String("application_id", id), zap.Error(err))
			return nil, err
		}
	} else {
		if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
			return nil, err
		}
	}

	s.logger.Info("application status updated",
		zap.String("application_id", id),
		zap.String("status", string(status)),
		zap.String("updated_by", caller.Email),
	)
	return s.repo.FindByID(ctx, id)
}

// Reject moves the application to rejected with feedback. Admins and
// agents only. Terminal.
func (s *Service) Reject(ctx context.Context, caller user.User, id, feedback string) (*application.Application, error) {
	if err := guard.Any(
		guard.HasRole(user.RoleAdmin),
		guard.HasRole(user.RoleAgent),
	)(caller); err != nil {
		return nil, err
	}
	if feedback == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "rejection feedback is required")
	}

	if err := s.repo.Reject(ctx, id, feedback); err != nil {
		return nil, err
	}

	s.logger.Info("application rejected",
		zap.String("application_id", id),
		zap.String("rejected_by", caller.Email),
	)
	return s.repo.FindByID(ctx, id)
}

// Pay records payment for the caller's own application and activates the
// cover. Requires prior approval; an unpaid pending or rejected
// application cannot be paid.
func (s *Service) Pay(ctx context.Context, caller user.User, id string) (*application.Application, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := guard.All(
		guard.HasRole(user.RoleCustomer),
		guard.IsSelf(a.CustomerEmail),
	)(caller); err != nil {
		return nil, err
	}

	if a.Status != application.StatusApproved {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "application is not approved")
	}
	if a.PaymentStatus == application.PaymentPaid {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "application is already paid")
	}

	if err := s.repo.MarkPaid(ctx, id, time.Now()); err != nil {
		s.logger.Error("failed to record payment", zap.String("application_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("application paid",
		zap.String("application_id", id),
		zap.String("customer", caller.Email),
	)
	return s.repo.FindByID(ctx, id)
}
