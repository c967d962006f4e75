// internal/repository/postgres/faq_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"lifesure-service/internal/domain/faq"
	xerrors "lifesure-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type FAQRepository struct {
	db *pgxpool.Pool
}

func NewFAQRepository(db *pgxpool.Pool) *FAQRepository {
	return &FAQRepository{db: db}
}

const faqColumns = `id, question, answer, helpful_count, created_at, updated_at`

func scanFAQ(row pgx.Row) (*faq.FAQ, error) {
	var f faq.FAQ
	err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.HelpfulCount, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new FAQ entry.
func (r *FAQRepository) Create(ctx context.Context, f *faq.FAQ) error {
	query := `
		INSERT INTO faqs (id, question, answer)
		VALUES ($1, $2, $3)
		RETURNING helpful_count, created_at, updated_at
	`

	f.ID = ulid.Make().String()
	err := r.db.QueryRow(ctx, query, f.ID, f.Question, f.Answer).
		Scan(&f.HelpfulCount, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create FAQ: %w", err)
	}
	return nil
}

// List retrieves all FAQ entries.
func (r *FAQRepository) List(ctx context.Context) ([]faq.FAQ, error) {
	rows, err := r.db.Query(ctx, `SELECT `+faqColumns+` FROM faqs ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list FAQs: %w", err)
	}
	defer rows.Close()

	var faqs []faq.FAQ
	for rows.Next() {
		f, err := scanFAQ(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan FAQ: %w", err)
		}
		faqs = append(faqs, *f)
	}
	return faqs, rows.Err()
}

// Update replaces an FAQ's question and answer.
func (r *FAQRepository) Update(ctx context.Context, f *faq.FAQ) error {
	query := `
		UPDATE faqs SET question = $2, answer = $3, updated_at = NOW() WHERE id = $1
		RETURNING ` + faqColumns

	updated, err := scanFAQ(r.db.QueryRow(ctx, query, f.ID, f.Question, f.Answer))
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update FAQ: %w", err)
	}
	*f = *updated
	return nil
}

// IncrementHelpful bumps the helpful-vote counter atomically.
func (r *FAQRepository) IncrementHelpful(ctx context.Context, id string) (*faq.FAQ, error) {
	query := `
		UPDATE faqs SET helpful_count = helpful_count + 1 WHERE id = $1
		RETURNING ` + faqColumns

	f, err := scanFAQ(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment helpful count: %w", err)
	}
	return f, nil
}

// Delete removes an FAQ entry by ID.
func (r *FAQRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete FAQ: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
