// internal/service/user/service.go
package user

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"lifesure-service/internal/domain/user"
	"lifesure-service/internal/guard"
	xerrors "lifesure-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Repository is the persistence contract for user records.
type Repository interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	List(ctx context.Context) ([]user.User, error)
	UpdateRole(ctx context.Context, email string, role user.Role) error
	UpdateLastLogin(ctx context.Context, email string, at time.Time) error
	UpdateProfile(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Register creates the user on first sign-in. Re-registering an existing
// email is a no-op success, never an error.
func (s *Service) Register(ctx context.Context, req *user.RegisterRequest) (*user.RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "email is required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return &user.RegisterResponse{User: *existing, Created: false}, nil
	}
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.Wrap(err, "failed to check existing user")
	}

	u := &user.User{
		Email:    email,
		Role:     user.RoleCustomer,
		FullName: req.FullName,
		PhotoURL: nullString(req.PhotoURL),
		Phone:    nullString(req.Phone),
		Address:  nullString(req.Address),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if xerrors.Is(err, xerrors.ErrConflict) {
			// Lost the insert race; the record exists, which is what the
			// caller asked for.
			existing, ferr := s.repo.FindByEmail(ctx, email)
			if ferr != nil {
				return nil, xerrors.Wrap(ferr, "failed to load user after conflict")
			}
			return &user.RegisterResponse{User: *existing, Created: false}, nil
		}
		s.logger.Error("failed to register user", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered", zap.String("email", email), zap.String("user_id", u.ID))
	return &user.RegisterResponse{User: *u, Created: true}, nil
}

// ResolveCaller resolves a verified email to its stored account. There is
// no cache in front of this read: each authorization decision sees the
// current role, so a downgrade takes effect on the very next request.
func (s *Service) ResolveCaller(ctx context.Context, email string) (user.User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return user.User{}, err
	}
	return *u, nil
}

// List retrieves all users. Admin only.
func (s *Service) List(ctx context.Context, caller user.User) ([]user.User, error) {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// GetByEmail retrieves a user record for its owner or an admin.
func (s *Service) GetByEmail(ctx context.Context, caller user.User, email string) (*user.User, error) {
	if err := guard.IsOwnerOrRole(email, user.RoleAdmin)(caller); err != nil {
		return nil, err
	}
	return s.repo.FindByEmail(ctx, normalizeEmail(email))
}

// UpdateRole sets the user's role. Admin only.
func (s *Service) UpdateRole(ctx context.Context, caller user.User, email string, role user.Role) (*user.User, error) {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return nil, err
	}
	if !user.ValidRole(role) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown role")
	}

	email = normalizeEmail(email)
	if err := s.repo.UpdateRole(ctx, email, role); err != nil {
		return nil, err
	}

	s.logger.Info("user role updated",
		zap.String("email", email),
		zap.String("role", string(role)),
		zap.String("updated_by", caller.Email),
	)
	return s.repo.FindByEmail(ctx, email)
}

// TouchLastLogin stamps the caller's own last sign-in time.
func (s *Service) TouchLastLogin(ctx context.Context, caller user.User, email string) error {
	if err := guard.IsSelf(email)(caller); err != nil {
		return err
	}
	return s.repo.UpdateLastLogin(ctx, normalizeEmail(email), time.Now())
}

// UpdateProfile updates the caller's own profile fields. Email itself is
// immutable; it only keys the update.
func (s *Service) UpdateProfile(ctx context.Context, caller user.User, req *user.UpdateProfileRequest) (*user.User, error) {
	if err := guard.IsSelf(req.Email)(caller); err != nil {
		return nil, err
	}

	u := &user.User{
		Email:    normalizeEmail(req.Email),
		FullName: req.FullName,
		PhotoURL: nullString(req.PhotoURL),
		Phone:    nullString(req.Phone),
		Address:  nullString(req.Address),
	}
	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a user account. Admin only.
func (s *Service) Delete(ctx context.Context, caller user.User, id string) error {
	if err := guard.HasRole(user.RoleAdmin)(caller); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("deleted_by", caller.Email))
	return nil
}

// EnsureAdminExists promotes the configured bootstrap email to admin if the
// account is already registered. Startup helper, not an API operation.
func (s *Service) EnsureAdminExists(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u.Role == user.RoleAdmin {
		return nil
	}
	return s.repo.UpdateRole(ctx, email, user.RoleAdmin)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
