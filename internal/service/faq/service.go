// internal/service/faq/service.go
package faq

import (
	"context"

	"lifesure-service/internal/domain/faq"
	"lifesure-service/internal/domain/user"
	"lifesure-service/internal/guard"

	"go.uber.org/zap"
)

// Repository is the persistence contract for FAQ entries.
type Repository interface {
	Create(ctx context.Context, f *faq.FAQ) error
	List(ctx context.Context) ([]faq.FAQ, error)
	Update(ctx context.Context, f *faq.FAQ) error
	IncrementHelpful(ctx context.Context, id string) (*faq.FAQ, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns all FAQ entries. Public.
func (s *Service) List(ctx context.Context) ([]faq.FAQ, error) {
	return s.repo.List(ctx)
}

// Create adds an entry. Admin only.
func (s *Service) Create(ctx context.Context, caller user.User, req *faq.UpsertRequest) (*faq.FAQ, error) {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return nil, err
	}

	f := &faq.FAQ{Question: req.Question, Answer: req.Answer}
	if err := s.repo.Create(ctx, f); err != nil {
		s.logger.Error("failed to create FAQ", zap.Error(err))
		return nil, err
	}
	return f, nil
}

// Update edits an entry. Admin only.
func (s *Service) Update(ctx context.Context, caller user.User, id string, req *faq.UpsertRequest) (*faq.FAQ, error) {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return nil, err
	}

	f := &faq.FAQ{ID: id, Question: req.Question, Answer: req.Answer}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// MarkHelpful bumps the helpful-vote counter. Public.
func (s *Service) MarkHelpful(ctx context.Context, id string) (*faq.FAQ, error) {
	return s.repo.IncrementHelpful(ctx, id)
}

// Delete removes an entry. Admin only.
func (s *Service) Delete(ctx context.Context, caller user.User, id string) error {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
