// internal/domain/review/entity.go
package review

import (
	"database/sql"
	"time"
)

// Review is a customer's rating of a policy, surfaced on the landing page.
type Review struct {
	ID            string         `json:"id" db:"id"`
	ReviewerEmail string         `json:"reviewer_email" db:"reviewer_email"`
	ReviewerName  string         `json:"reviewer_name" db:"reviewer_name"`
	PolicyID      sql.NullString `json:"policy_id,omitempty" db:"policy_id"`
	Rating        int32          `json:"rating" db:"rating"`
	Comment       string         `json:"comment" db:"comment"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

type CreateRequest struct {
	ReviewerEmail string `json:"reviewer_email" binding:"required,email"`
	ReviewerName  string `json:"reviewer_name" binding:"required"`
	PolicyID      string `json:"policy_id"`
	Rating        int32  `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment" binding:"required"`
}
