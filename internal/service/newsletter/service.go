// internal/service/newsletter/service.go
package newsletter

import (
	"context"
	"strings"

	"lifesure-service/internal/domain/newsletter"
	"lifesure-service/internal/domain/user"
	"lifesure-service/internal/guard"

	"go.uber.org/zap"
)

// Repository is the persistence contract for newsletter subscriptions.
type Repository interface {
	Create(ctx context.Context, s *newsletter.Subscription) error
	List(ctx context.Context) ([]newsletter.Subscription, error)
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Subscribe records a signup. Public; duplicate emails conflict.
func (s *Service) Subscribe(ctx context.Context, req *newsletter.SubscribeRequest) (*newsletter.Subscription, error) {
	sub := &newsletter.Subscription{
		Name:  req.Name,
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("newsletter subscription added", zap.String("email", sub.Email))
	return sub, nil
}

// List returns all subscriptions. Admin only.
func (s *Service) List(ctx context.Context, caller user.User) ([]newsletter.Subscription, error) {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}
