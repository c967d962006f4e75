// internal/domain/policy/entity.go
package policy

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Policy is an insurance product offered on the platform. PurchaseCount is
// a monotonic counter bumped once per application entering approved.
type Policy struct {
	ID          string         `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Category    string         `json:"category" db:"category"`
	Description string         `json:"description" db:"description"`
	ImageURL    sql.NullString `json:"image_url,omitempty" db:"image_url"`

	// Eligibility and terms
	MinAge          int32          `json:"min_age" db:"min_age"`
	MaxAge          int32          `json:"max_age" db:"max_age"`
	CoverageRange   string         `json:"coverage_range" db:"coverage_range"`
	DurationOptions pq.StringArray `json:"duration_options,omitempty" db:"duration_options"`
	BasePremium     float64        `json:"base_premium" db:"base_premium"`
	Benefits        pq.StringArray `json:"benefits,omitempty" db:"benefits"`

	PurchaseCount int64     `json:"purchase_count" db:"purchase_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
