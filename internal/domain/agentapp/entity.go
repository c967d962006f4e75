// internal/domain/agentapp/entity.go
package agentapp

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// AgentApplication is a prospective agent's request to join the platform.
// Approving it does not touch the linked User's role; the role grant is a
// separate admin action.
type AgentApplication struct {
	ID         string         `json:"id" db:"id"`
	Email      string         `json:"email" db:"email"`
	FullName   string         `json:"full_name" db:"full_name"`
	Experience sql.NullString `json:"experience,omitempty" db:"experience"`
	Specialty  sql.NullString `json:"specialty,omitempty" db:"specialty"`
	Status     Status         `json:"status" db:"status"`
	Feedback   sql.NullString `json:"feedback,omitempty" db:"feedback"`
	AppliedAt  time.Time      `json:"applied_at" db:"applied_at"`
}
