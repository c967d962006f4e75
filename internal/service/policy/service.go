// internal/service/policy/service.go
package policy

import (
	"context"
	"database/sql"

	"lifesure-service/internal/domain/policy"
	"lifesure-service/internal/domain/user"
	"lifesure-service/internal/guard"

	"go.uber.org/zap"
)

// Repository is the persistence contract for policies.
type Repository interface {
	Create(ctx context.Context, p *policy.Policy) error
	FindByID(ctx context.Context, id string) (*policy.Policy, error)
	List(ctx context.Context, filters *policy.ListFilters) ([]policy.Policy, int64, error)
	ListPopular(ctx context.Context, limit int) ([]policy.Policy, error)
	Update(ctx context.Context, p *policy.Policy) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create adds a new policy to the catalogue. Admin only.
func (s *Service) Create(ctx context.Context, caller user.User, req *policy.CreatePolicyRequest) (*policy.Policy, error) {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return nil, err
	}

	p := &policy.Policy{
		Title:           req.Title,
		Category:        req.Category,
		Description:     req.Description,
		ImageURL:        sql.NullString{String: req.ImageURL, Valid: req.ImageURL != ""},
		MinAge:          req.MinAge,
		MaxAge:          req.MaxAge,
		CoverageRange:   req.CoverageRange,
		DurationOptions: req.DurationOptions,
		BasePremium:     req.BasePremium,
		Benefits:        req.Benefits,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create policy", zap.Error(err))
		return nil, err
	}

	s.logger.Info("policy created", zap.String("policy_id", p.ID), zap.String("title", p.Title))
	return p, nil
}

// Get retrieves a single policy. Public.
func (s *Service) Get(ctx context.Context, id string) (*policy.Policy, error) {
	return s.repo.FindByID(ctx, id)
}

// List retrieves policies with filters and pagination. Public.
func (s *Service) List(ctx context.Context, filters *policy.ListFilters) (*policy.ListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 || filters.PageSize > 100 {
		filters.PageSize = 9
	}

	policies, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &policy.ListResponse{
		Policies: policies,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}

// ListPopular retrieves the most purchased policies. Public.
func (s *Service) ListPopular(ctx context.Context, limit int) ([]policy.Policy, error) {
	if limit < 1 || limit > 20 {
		limit = 6
	}
	return s.repo.ListPopular(ctx, limit)
}

// Update replaces a policy's mutable fields. Admin only.
func (s *Service) Update(ctx context.Context, caller user.User, id string, req *policy.UpdatePolicyRequest) (*policy.Policy, error) {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return nil, err
	}

	p := &policy.Policy{
		ID:              id,
		Title:           req.Title,
		Category:        req.Category,
		Description:     req.Description,
		ImageURL:        sql.NullString{String: req.ImageURL, Valid: req.ImageURL != ""},
		MinAge:          req.MinAge,
		MaxAge:          req.MaxAge,
		CoverageRange:   req.CoverageRange,
		DurationOptions: req.DurationOptions,
		BasePremium:     req.BasePremium,
		Benefits:        req.Benefits,
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("policy updated", zap.String("policy_id", id), zap.String("updated_by", caller.Email))
	return p, nil
}

// Delete removes a policy from the catalogue. Admin only.
func (s *Service) Delete(ctx context.Context, caller user.User, id string) error {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("policy deleted", zap.String("policy_id", id), zap.String("deleted_by", caller.Email))
	return nil
}
