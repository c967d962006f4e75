// internal/service/review/service.go
package review

import (
	"context"
	"database/sql"

	"lifesure-service/internal/domain/review"
	"lifesure-service/internal/domain/user"
	"lifesure-service/internal/guard"

	"go.uber.org/zap"
)

// Repository is the persistence contract for reviews.
type Repository interface {
	Create(ctx context.Context, rv *review.Review) error
	List(ctx context.Context, limit int) ([]review.Review, error)
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create posts a review. Customers only, writing as themselves.
func (s *Service) Create(ctx context.Context, caller user.User, req *review.CreateRequest) (*review.Review, error) {
	if err := guard.All(
		guard.HasRole(user.RoleCustomer),
		guard.IsSelf(req.ReviewerEmail),
	)(caller); err != nil {
		return nil, err
	}

	rv := &review.Review{
		ReviewerEmail: caller.Email,
		ReviewerName:  req.ReviewerName,
		PolicyID:      sql.NullString{String: req.PolicyID, Valid: req.PolicyID != ""},
		Rating:        req.Rating,
		Comment:       req.Comment,
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		s.logger.Error("failed to create review", zap.Error(err))
		return nil, err
	}
	return rv, nil
}

// List returns the latest reviews. Public.
func (s *Service) List(ctx context.Context, limit int) ([]review.Review, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.repo.List(ctx, limit)
}
