// internal/service/auth/service.go
package auth

import (
	"context"
	"strings"

	"lifesure-service/internal/domain/user"
	xerrors "lifesure-service/internal/pkg/errors"
	"lifesure-service/internal/pkg/jwt"

	"go.uber.org/zap"
)

// RoleLookup resolves the stored role for an email, if registered.
type RoleLookup interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// IssueLimiter throttles credential issuance per client.
type IssueLimiter interface {
	CheckTokenIssue(ctx context.Context, ip, email string) (bool, int64, error)
}

// Service mints bearer credentials. Verification lives in pkg/jwt; this
// service only owns the issue path and its rate limit.
type Service struct {
	users   RoleLookup
	tokens  *jwt.Manager
	limiter IssueLimiter
	logger  *zap.Logger
}

func NewService(users RoleLookup, tokens *jwt.Manager, limiter IssueLimiter, logger *zap.Logger) *Service {
	return &Service{users: users, tokens: tokens, limiter: limiter, logger: logger}
}

// IssueToken signs a 10-day credential for the given email. Unregistered
// emails still get a token (registration happens after first sign-in); the
// claims carry the customer role until a stored User says otherwise, and
// every authorized route re-reads the stored role anyway.
func (s *Service) IssueToken(ctx context.Context, clientIP, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", xerrors.Wrap(xerrors.ErrInvalidInput, "email is required")
	}

	if s.limiter != nil {
		allowed, remaining, err := s.limiter.CheckTokenIssue(ctx, clientIP, email)
		if err != nil {
			s.logger.Error("rate limiter unavailable", zap.Error(err))
			return "", xerrors.Wrap(err, "rate limiter unavailable")
		}
		if !allowed {
			s.logger.Warn("token issuance rate limited",
				zap.String("email", email),
				zap.String("ip", clientIP),
				zap.Int64("remaining", remaining),
			)
			return "", xerrors.ErrRateLimited
		}
	}

	role := string(user.RoleCustomer)
	if u, err := s.users.FindByEmail(ctx, email); err == nil {
		role = string(u.Role)
	} else if !xerrors.Is(err, xerrors.ErrNotFound) {
		return "", xerrors.Wrap(err, "failed to look up user role")
	}

	token, jti, err := s.tokens.Generate(email, role)
	if err != nil {
		s.logger.Error("failed to sign token", zap.String("email", email), zap.Error(err))
		return "", xerrors.Wrap(err, "failed to sign token")
	}

	s.logger.Info("credential issued", zap.String("email", email), zap.String("jti", jti))
	return token, nil
}
