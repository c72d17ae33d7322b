// Package page manages blog/CMS pages served by the storefront.
package page

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Page is one blog/CMS entry.
type Page struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input carries the writable fields of a page.
type Input struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

// ErrNotFound is returned when a page does not exist.
var ErrNotFound = errors.New("page not found")

// ErrAlreadyExists is returned when a slug is already taken.
var ErrAlreadyExists = errors.New("page already exists")

const pageColumns = `id, slug, title, body, published, created_at, updated_at`

// Repository handles page database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanPage(row pgx.Row) (*Page, error) {
	p := &Page{}
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Body, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new page.
func (r *Repository) Create(ctx context.Context, in Input) (*Page, error) {
	p, err := scanPage(r.db.QueryRow(ctx,
		`INSERT INTO pages (slug, title, body, published)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+pageColumns,
		in.Slug, in.Title, in.Body, in.Published,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create page: %w", err)
	}
	return p, nil
}

// GetBySlug fetches a page by its slug.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	p, err := scanPage(r.db.QueryRow(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get page by slug: %w", err)
	}
	return p, nil
}

// List returns every page, optionally restricted to published ones.
func (r *Repository) List(ctx context.Context, publishedOnly bool) ([]*Page, error) {
	query := `SELECT ` + pageColumns + ` FROM pages`
	if publishedOnly {
		query += ` WHERE published`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	defer rows.Close()

	var pages []*Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// Update replaces a page's writable fields, addressed by slug.
func (r *Repository) Update(ctx context.Context, slug string, in Input) (*Page, error) {
	p, err := scanPage(r.db.QueryRow(ctx,
		`UPDATE pages
		 SET slug = $2, title = $3, body = $4, published = $5, updated_at = now()
		 WHERE slug = $1
		 RETURNING `+pageColumns,
		slug, in.Slug, in.Title, in.Body, in.Published,
	))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("update page: %w", err)
	}
	return p, nil
}

// Delete removes a page by slug.
func (r *Repository) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM pages WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
