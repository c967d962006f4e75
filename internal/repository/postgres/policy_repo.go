// internal/repository/postgres/policy_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lifesure-service/internal/domain/policy"
	xerrors "lifesure-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type PolicyRepository struct {
	db *pgxpool.Pool
}

func NewPolicyRepository(db *pgxpool.Pool) *PolicyRepository {
	return &PolicyRepository{db: db}
}

const policyColumns = `id, title, category, description, image_url,
	min_age, max_age, coverage_range, duration_options, base_premium, benefits,
	purchase_count, created_at, updated_at`

func scanPolicy(row pgx.Row) (*policy.Policy, error) {
	var p policy.Policy
	err := row.Scan(
		&p.ID, &p.Title, &p.Category, &p.Description, &p.ImageURL,
		&p.MinAge, &p.MaxAge, &p.CoverageRange, &p.DurationOptions, &p.BasePremium, &p.Benefits,
		&p.PurchaseCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new policy. purchase_count starts at zero.
func (r *PolicyRepository) Create(ctx context.Context, p *policy.Policy) error {
	query := `
		INSERT INTO policies (
			id, title, category, description, image_url,
			min_age, max_age, coverage_range, duration_options, base_premium, benefits
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING purchase_count, created_at, updated_at
	`

	p.ID = ulid.Make().String()
	err := r.db.QueryRow(
		ctx, query,
		p.ID, p.Title, p.Category, p.Description, p.ImageURL,
		p.MinAge, p.MaxAge, p.CoverageRange, p.DurationOptions, p.BasePremium, p.Benefits,
	).Scan(&p.PurchaseCount, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create policy: %w", err)
	}
	return nil
}

// FindByID retrieves a policy by ID.
func (r *PolicyRepository) FindByID(ctx context.Context, id string) (*policy.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE id = $1`

	p, err := scanPolicy(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find policy: %w", err)
	}
	return p, nil
}

// List retrieves policies with optional category and title/description
// substring filters, newest first.
func (r *PolicyRepository) List(ctx context.Context, filters *policy.ListFilters) ([]policy.Policy, int64, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, filters.Category)
		argPos++
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM policies %s", whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count policies: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM policies %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		policyColumns, whereClause, argPos, argPos+1,
	)
	args = append(args, filters.PageSize, (filters.Page-1)*filters.PageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list policies: %w", err)
	}
	defer rows.Close()

	var policies []policy.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies = append(policies, *p)
	}
	return policies, total, rows.Err()
}

// ListPopular retrieves the most purchased policies.
func (r *PolicyRepository) ListPopular(ctx context.Context, limit int) ([]policy.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies ORDER BY purchase_count DESC, created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list popular policies: %w", err)
	}
	defer rows.Close()

	var policies []policy.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies = append(policies, *p)
	}
	return policies, rows.Err()
}

// Update replaces the mutable fields of a policy.
func (r *PolicyRepository) Update(ctx context.Context, p *policy.Policy) error {
	query := `
		UPDATE policies
		SET title = $2, category = $3, description = $4, image_url = $5,
		    min_age = $6, max_age = $7, coverage_range = $8, duration_options = $9,
		    base_premium = $10, benefits = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING purchase_count, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		p.ID, p.Title, p.Category, p.Description, p.ImageURL,
		p.MinAge, p.MaxAge, p.CoverageRange, p.DurationOptions,
		p.BasePremium, p.Benefits,
	).Scan(&p.PurchaseCount, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update policy: %w", err)
	}
	return nil
}

// Delete removes a policy by ID.
func (r *PolicyRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM policies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
