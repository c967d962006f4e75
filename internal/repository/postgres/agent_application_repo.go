// internal/repository/postgres/agent_application_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"lifesure-service/internal/domain/agentapp"
	xerrors "lifesure-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type AgentApplicationRepository struct {
	db *pgxpool.Pool
}

func NewAgentApplicationRepository(db *pgxpool.Pool) *AgentApplicationRepository {
	return &AgentApplicationRepository{db: db}
}

const agentAppColumns = `id, email, full_name, experience, specialty, status, feedback, applied_at`

func scanAgentApplication(row pgx.Row) (*agentapp.AgentApplication, error) {
	var a agentapp.AgentApplication
	err := row.Scan(
		&a.ID, &a.Email, &a.FullName, &a.Experience, &a.Specialty,
		&a.Status, &a.Feedback, &a.AppliedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new pending agent application.
func (r *AgentApplicationRepository) Create(ctx context.Context, a *agentapp.AgentApplication) error {
	query := `
		INSERT INTO agent_applications (id, email, full_name, experience, specialty, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING applied_at
	`

	a.ID = ulid.Make().String()
	a.Status = agentapp.StatusPending

	err := r.db.QueryRow(
		ctx, query,
		a.ID, a.Email, a.FullName, a.Experience, a.Specialty, a.Status,
	).Scan(&a.AppliedAt)

	if err != nil {
		return fmt.Errorf("failed to create agent application: %w", err)
	}
	return nil
}

// FindByID retrieves an agent application by ID.
func (r *AgentApplicationRepository) FindByID(ctx context.Context, id string) (*agentapp.AgentApplication, error) {
	query := `SELECT ` + agentAppColumns + ` FROM agent_applications WHERE id = $1`

	a, err := scanAgentApplication(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find agent application: %w", err)
	}
	return a, nil
}

// ListPending retrieves agent applications awaiting a decision.
func (r *AgentApplicationRepository) ListPending(ctx context.Context) ([]agentapp.AgentApplication, error) {
	query := `SELECT ` + agentAppColumns + ` FROM agent_applications WHERE status = $1 ORDER BY applied_at ASC`

	rows, err := r.db.Query(ctx, query, agentapp.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending agent applications: %w", err)
	}
	defer rows.Close()

	var apps []agentapp.AgentApplication
	for rows.Next() {
		a, err := scanAgentApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent application: %w", err)
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// Approve marks the application approved. Feedback is cleared; it is only
// present on rejected applications.
func (r *AgentApplicationRepository) Approve(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE agent_applications SET status = $2, feedback = NULL WHERE id = $1`,
		id, agentapp.StatusApproved,
	)
	if err != nil {
		return fmt.Errorf("failed to approve agent application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Reject marks the application rejected with feedback.
func (r *AgentApplicationRepository) Reject(ctx context.Context, id, feedback string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE agent_applications SET status = $2, feedback = $3 WHERE id = $1`,
		id, agentapp.StatusRejected, feedback,
	)
	if err != nil {
		return fmt.Errorf("failed to reject agent application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
