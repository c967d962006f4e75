// internal/repository/postgres/blog_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"lifesure-service/internal/domain/blog"
	xerrors "lifesure-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

type BlogRepository struct {
	db *pgxpool.Pool
}

func NewBlogRepository(db *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogColumns = `id, title, content, author_email, author_name, image_url, tags, visits, created_at, updated_at`

func scanBlog(row pgx.Row) (*blog.Blog, error) {
	var b blog.Blog
	err := row.Scan(
		&b.ID, &b.Title, &b.Content, &b.AuthorEmail, &b.AuthorName,
		&b.ImageURL, &b.Tags, &b.Visits, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new blog post.
func (r *BlogRepository) Create(ctx context.Context, b *blog.Blog) error {
	query := `
		INSERT INTO blogs (id, title, content, author_email, author_name, image_url, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING visits, created_at, updated_at
	`

	b.ID = ulid.Make().String()
	err := r.db.QueryRow(
		ctx, query,
		b.ID, b.Title, b.Content, b.AuthorEmail, b.AuthorName, b.ImageURL, b.Tags,
	).Scan(&b.Visits, &b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

// FindByID retrieves a blog post by ID.
func (r *BlogRepository) FindByID(ctx context.Context, id string) (*blog.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`

	b, err := scanBlog(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find blog: %w", err)
	}
	return b, nil
}

// List retrieves blog posts newest first, optionally filtered by author.
func (r *BlogRepository) List(ctx context.Context, authorEmail string) ([]blog.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs ORDER BY created_at DESC`
	args := []interface{}{}
	if authorEmail != "" {
		query = `SELECT ` + blogColumns + ` FROM blogs WHERE author_email = $1 ORDER BY created_at DESC`
		args = append(args, authorEmail)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []blog.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, *b)
	}
	return blogs, rows.Err()
}

// IncrementVisits bumps the read counter atomically and returns the post.
func (r *BlogRepository) IncrementVisits(ctx context.Context, id string) (*blog.Blog, error) {
	query := `
		UPDATE blogs SET visits = visits + 1 WHERE id = $1
		RETURNING ` + blogColumns

	b, err := scanBlog(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment blog visits: %w", err)
	}
	return b, nil
}

// Update replaces the mutable fields of a blog post.
func (r *BlogRepository) Update(ctx context.Context, b *blog.Blog) error {
	query := `
		UPDATE blogs
		SET title = $2, content = $3, image_url = $4, tags = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + blogColumns

	updated, err := scanBlog(r.db.QueryRow(ctx, query, b.ID, b.Title, b.Content, b.ImageURL, b.Tags))
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}
	*b = *updated
	return nil
}

// Delete removes a blog post by ID.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
