// internal/service/blog/service.go
package blog

import (
	"context"
	"database/sql"

	"lifesure-service/internal/domain/blog"
	"lifesure-service/internal/domain/user"
	"lifesure-service/internal/guard"

	"go.uber.org/zap"
)

// Repository is the persistence contract for blog posts.
type Repository interface {
	Create(ctx context.Context, b *blog.Blog) error
	FindByID(ctx context.Context, id string) (*blog.Blog, error)
	List(ctx context.Context, authorEmail string) ([]blog.Blog, error)
	IncrementVisits(ctx context.Context, id string) (*blog.Blog, error)
	Update(ctx context.Context, b *blog.Blog) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// authorOrAdmin is the write predicate for blog posts: an agent writing as
// themselves, or any admin.
func authorOrAdmin(authorEmail string) guard.Predicate {
	return guard.Any(
		guard.All(guard.HasRole(user.RoleAgent), guard.IsSelf(authorEmail)),
		guard.HasRole(user.RoleAdmin),
	)
}

// Create publishes a new post.
func (s *Service) Create(ctx context.Context, caller user.User, req *blog.CreateRequest) (*blog.Blog, error) {
	if err := authorOrAdmin(req.AuthorEmail)(caller); err != nil {
		return nil, err
	}

	b := &blog.Blog{
		Title:       req.Title,
		Content:     req.Content,
		AuthorEmail: req.AuthorEmail,
		AuthorName:  req.AuthorName,
		ImageURL:    sql.NullString{String: req.ImageURL, Valid: req.ImageURL != ""},
		Tags:        req.Tags,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("failed to create blog", zap.Error(err))
		return nil, err
	}

	s.logger.Info("blog published", zap.String("blog_id", b.ID), zap.String("author", b.AuthorEmail))
	return b, nil
}

// List returns posts, optionally filtered to one author. Public.
func (s *Service) List(ctx context.Context, authorEmail string) ([]blog.Blog, error) {
	return s.repo.List(ctx, authorEmail)
}

// Read returns one post and counts the visit. Public.
func (s *Service) Read(ctx context.Context, id string) (*blog.Blog, error) {
	return s.repo.IncrementVisits(ctx, id)
}

// Update edits a post. The author-agent or an admin.
func (s *Service) Update(ctx context.Context, caller user.User, id string, req *blog.UpdateRequest) (*blog.Blog, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorOrAdmin(existing.AuthorEmail)(caller); err != nil {
		return nil, err
	}

	b := &blog.Blog{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: sql.NullString{String: req.ImageURL, Valid: req.ImageURL != ""},
		Tags:     req.Tags,
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a post. The author-agent or an admin.
func (s *Service) Delete(ctx context.Context, caller user.User, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorOrAdmin(existing.AuthorEmail)(caller); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("blog deleted", zap.String("blog_id", id), zap.String("deleted_by", caller.Email))
	return nil
}
