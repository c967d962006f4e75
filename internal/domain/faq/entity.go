// internal/domain/faq/entity.go
package faq

import "time"

type FAQ struct {
	ID           string    `json:"id" db:"id"`
	Question     string    `json:"question" db:"question"`
	Answer       string    `json:"answer" db:"answer"`
	HelpfulCount int64     `json:"helpful_count" db:"helpful_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type UpsertRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}
