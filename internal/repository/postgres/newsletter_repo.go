// internal/repository/postgres/newsletter_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"lifesure-service/internal/domain/newsletter"
	xerrors "lifesure-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type NewsletterRepository struct {
	db *pgxpool.Pool
}

func NewNewsletterRepository(db *pgxpool.Pool) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

// Create inserts a new subscription. Duplicate emails surface as ErrConflict.
func (r *NewsletterRepository) Create(ctx context.Context, s *newsletter.Subscription) error {
	query := `
		INSERT INTO newsletter_subscriptions (id, name, email)
		VALUES ($1, $2, $3)
		RETURNING subscribed_at
	`

	s.ID = ulid.Make().String()
	err := r.db.QueryRow(ctx, query, s.ID, s.Name, s.Email).Scan(&s.SubscribedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return xerrors.ErrConflict
		}
		return fmt.Errorf("failed to create newsletter subscription: %w", err)
	}
	return nil
}

// List retrieves all subscriptions, newest first.
func (r *NewsletterRepository) List(ctx context.Context) ([]newsletter.Subscription, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, subscribed_at FROM newsletter_subscriptions ORDER BY subscribed_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list newsletter subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []newsletter.Subscription
	for rows.Next() {
		var s newsletter.Subscription
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.SubscribedAt); err != nil {
			return nil, fmt.Errorf("failed to scan newsletter subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
