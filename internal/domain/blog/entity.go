// internal/domain/blog/entity.go
package blog

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Blog is an article authored by an agent (or an admin on their behalf).
// Visits counts reads through the public detail endpoint.
type Blog struct {
	ID          string         `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Content     string         `json:"content" db:"content"`
	AuthorEmail string         `json:"author_email" db:"author_email"`
	AuthorName  string         `json:"author_name" db:"author_name"`
	ImageURL    sql.NullString `json:"image_url,omitempty" db:"image_url"`
	Tags        pq.StringArray `json:"tags,omitempty" db:"tags"`
	Visits      int64          `json:"visits" db:"visits"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

type CreateRequest struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	AuthorEmail string   `json:"author_email" binding:"required,email"`
	AuthorName  string   `json:"author_name" binding:"required"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags"`
}

type UpdateRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	ImageURL string   `json:"image_url"`
	Tags     []string `json:"tags"`
}
