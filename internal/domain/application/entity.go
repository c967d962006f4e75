// internal/domain/application/entity.go
package application

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type PolicyStatus string

const (
	PolicyNone   PolicyStatus = "none"
	PolicyActive PolicyStatus = "active"
)

// Application is a customer's request for coverage under a policy. It is
// owned by the submitting customer and is never deleted; its lifecycle is
// driven by guarded transitions only.
type Application struct {
	ID            string `json:"id" db:"id"`
	CustomerEmail string `json:"customer_email" db:"customer_email"`
	CustomerName  string `json:"customer_name" db:"customer_name"`
	PolicyID      string `json:"policy_id" db:"policy_id"`
	PolicyTitle   string `json:"policy_title" db:"policy_title"`

	Status            Status         `json:"status" db:"status"`
	AssignedAgent     sql.NullString `json:"assigned_agent,omitempty" db:"assigned_agent"`
	PaymentStatus     PaymentStatus  `json:"payment_status" db:"payment_status"`
	PolicyStatus      PolicyStatus   `json:"policy_status" db:"policy_status"`
	RejectionFeedback sql.NullString `json:"rejection_feedback,omitempty" db:"rejection_feedback"`

	// Applicant details captured at submission
	Address          sql.NullString `json:"address,omitempty" db:"address"`
	Phone            sql.NullString `json:"phone,omitempty" db:"phone"`
	HealthConditions pq.StringArray `json:"health_conditions,omitempty" db:"health_conditions"`
	PremiumAmount    float64        `json:"premium_amount" db:"premium_amount"`

	SubmittedAt time.Time    `json:"submitted_at" db:"submitted_at"`
	DueDate     sql.NullTime `json:"due_date,omitempty" db:"due_date"`
}
