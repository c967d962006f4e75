// internal/repository/postgres/application_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lifesure-service/internal/domain/application"
	xerrors "lifesure-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type ApplicationRepository struct {
	db      *pgxpool.Pool
	wrapper *DB
}

func NewApplicationRepository(db *pgxpool.Pool, wrapper *DB) *ApplicationRepository {
	return &ApplicationRepository{db: db, wrapper: wrapper}
}

const applicationColumns = `id, customer_email, customer_name, policy_id, policy_title,
	status, assigned_agent, payment_status, policy_status, rejection_feedback,
	address, phone, health_conditions, premium_amount, submitted_at, due_date`

func scanApplication(row pgx.Row) (*application.Application, error) {
	var a application.Application
	err := row.Scan(
		&a.ID, &a.CustomerEmail, &a.CustomerName, &a.PolicyID, &a.PolicyTitle,
		&a.Status, &a.AssignedAgent, &a.PaymentStatus, &a.PolicyStatus, &a.RejectionFeedback,
		&a.Address, &a.Phone, &a.HealthConditions, &a.PremiumAmount, &a.SubmittedAt, &a.DueDate,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new application in its initial state
// (pending / unpaid / none).
func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	query := `
		INSERT INTO applications (
			id, customer_email, customer_name, policy_id, policy_title,
			status, payment_status, policy_status,
			address, phone, health_conditions, premium_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING submitted_at
	`

	a.ID = ulid.Make().String()
	a.Status = application.StatusPending
	a.PaymentStatus = application.PaymentUnpaid
	a.PolicyStatus = application.PolicyNone

	err := r.db.QueryRow(
		ctx, query,
		a.ID, a.CustomerEmail, a.CustomerName, a.PolicyID, a.PolicyTitle,
		a.Status, a.PaymentStatus, a.PolicyStatus,
		a.Address, a.Phone, a.HealthConditions, a.PremiumAmount,
	).Scan(&a.SubmittedAt)

	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// FindByID retrieves an application by ID.
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	a, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return a, nil
}

func (r *ApplicationRepository) queryList(ctx context.Context, query string, args ...interface{}) ([]application.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []application.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// List retrieves all applications, newest first.
func (r *ApplicationRepository) List(ctx context.Context) ([]application.Application, error) {
	return r.queryList(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY submitted_at DESC`)
}

// ListByAgent retrieves applications assigned to the given agent.
func (r *ApplicationRepository) ListByAgent(ctx context.Context, agentEmail string) ([]application.Application, error) {
	return r.queryList(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE assigned_agent = $1 ORDER BY submitted_at DESC`,
		agentEmail,
	)
}

// ListByCustomer retrieves applications submitted by the given customer.
func (r *ApplicationRepository) ListByCustomer(ctx context.Context, customerEmail string) ([]application.Application, error) {
	return r.queryList(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE customer_email = $1 ORDER BY submitted_at DESC`,
		customerEmail,
	)
}

// UpdateAssignedAgent sets (or overwrites) the assigned agent.
func (r *ApplicationRepository) UpdateAssignedAgent(ctx context.Context, id, agentEmail string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET assigned_agent = $2 WHERE id = $1`,
		id, agentEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to assign agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus sets the application status without side effects.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status application.Status) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ApproveWithPurchaseCount marks the application approved and increments the
// referenced policy's purchase counter in a single transaction. The status
// guard in the WHERE clause keeps a replayed approval from double-counting.
func (r *ApplicationRepository) ApproveWithPurchaseCount(ctx context.Context, id, policyID string) error {
	tx, err := r.wrapper.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin approval transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE applications SET status = $2 WHERE id = $1 AND status <> $2`,
		id, application.StatusApproved,
	)
	if err != nil {
		return fmt.Errorf("failed to approve application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Already approved; nothing to count.
		return nil
	}

	tag, err = tx.Exec(ctx,
		`UPDATE policies SET purchase_count = purchase_count + 1, updated_at = NOW() WHERE id = $1`,
		policyID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment purchase count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("referenced policy %s: %w", policyID, xerrors.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit approval transaction: %w", err)
	}
	return nil
}

// Reject marks the application rejected with feedback. Terminal.
func (r *ApplicationRepository) Reject(ctx context.Context, id, feedback string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2, rejection_feedback = $3 WHERE id = $1`,
		id, application.StatusRejected, feedback,
	)
	if err != nil {
		return fmt.Errorf("failed to reject application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// MarkPaid records payment and activates the purchased policy cover.
func (r *ApplicationRepository) MarkPaid(ctx context.Context, id string, dueDate time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET payment_status = $2, policy_status = $3, due_date = $4 WHERE id = $1`,
		id, application.PaymentPaid, application.PolicyActive, dueDate,
	)
	if err != nil {
		return fmt.Errorf("failed to mark application paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
