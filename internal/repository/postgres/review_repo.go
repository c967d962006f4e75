// internal/repository/postgres/review_repo.go
package postgres

import (
	"context"
	"fmt"

	"lifesure-service/internal/domain/review"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type ReviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, reviewer_email, reviewer_name, policy_id, rating, comment, created_at`

func scanReview(row pgx.Row) (*review.Review, error) {
	var rv review.Review
	err := row.Scan(
		&rv.ID, &rv.ReviewerEmail, &rv.ReviewerName, &rv.PolicyID,
		&rv.Rating, &rv.Comment, &rv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Create inserts a new review.
func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	query := `
		INSERT INTO reviews (id, reviewer_email, reviewer_name, policy_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	rv.ID = ulid.Make().String()
	err := r.db.QueryRow(
		ctx, query,
		rv.ID, rv.ReviewerEmail, rv.ReviewerName, rv.PolicyID, rv.Rating, rv.Comment,
	).Scan(&rv.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// List retrieves the latest reviews.
func (r *ReviewRepository) List(ctx context.Context, limit int) ([]review.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []review.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}
