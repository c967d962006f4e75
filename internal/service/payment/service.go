// internal/service/payment/service.go
package payment

import (
	"context"

	xerrors "lifesure-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Provider is the payment-provider collaborator: create an intent for an
// amount, get back an opaque client secret.
type Provider interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type Service struct {
	provider Provider
	logger   *zap.Logger
}

func NewService(provider Provider, logger *zap.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// CreateIntent creates a payment intent for the given amount in minor
// units and returns the provider's client secret.
func (s *Service) CreateIntent(ctx context.Context, amount int64) (string, error) {
	if amount <= 0 {
		return "", xerrors.Wrap(xerrors.ErrInvalidInput, "amount must be positive")
	}

	secret, err := s.provider.CreateIntent(ctx, amount, "usd")
	if err != nil {
		s.logger.Error("payment provider call failed", zap.Int64("amount", amount), zap.Error(err))
		return "", xerrors.Wrap(err, "failed to create payment intent")
	}
	return secret, nil
}
