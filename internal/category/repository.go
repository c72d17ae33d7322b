// Package category manages the catalog's category tree.
package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Category is one node of the category tree.
type Category struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Slug      string      `json:"slug"`
	ParentID  *string     `json:"parentId,omitempty"`
	SortOrder int         `json:"sortOrder"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Children  []*Category `json:"children,omitempty"`
}

// Input carries the writable fields of a category.
type Input struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	ParentID  *string `json:"parentId"`
	SortOrder int     `json:"sortOrder"`
}

// Placement positions one category within the tree during a bulk reorder.
type Placement struct {
	ID        string  `json:"id"`
	ParentID  *string `json:"parentId"`
	SortOrder int     `json:"sortOrder"`
}

// ErrNotFound is returned when a category does not exist.
var ErrNotFound = errors.New("category not found")

// ErrAlreadyExists is returned when a slug is already taken.
var ErrAlreadyExists = errors.New("category already exists")

const categoryColumns = `id, name, slug, parent_id, sort_order, created_at, updated_at`

// Repository handles category database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanCategory(row pgx.Row) (*Category, error) {
	c := &Category{}
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new category.
func (r *Repository) Create(ctx context.Context, in Input) (*Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx,
		`INSERT INTO categories (name, slug, parent_id, sort_order)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+categoryColumns,
		in.Name, in.Slug, in.ParentID, in.SortOrder,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// GetByID fetches a category by its UUID.
func (r *Repository) GetByID(ctx context.Context, id string) (*Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get category by id: %w", err)
	}
	return c, nil
}

// ListAll returns every category ordered for tree assembly.
func (r *Repository) ListAll(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Update replaces a category's writable fields.
func (r *Repository) Update(ctx context.Context, id string, in Input) (*Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx,
		`UPDATE categories
		 SET name = $2, slug = $3, parent_id = $4, sort_order = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+categoryColumns,
		id, in.Name, in.Slug, in.ParentID, in.SortOrder,
	))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Reorder applies every placement in a single transaction so a drag-and-drop
// rearrangement lands atomically.
func (r *Repository) Reorder(ctx context.Context, placements []Placement) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range placements {
		tag, err := tx.Exec(ctx,
			`UPDATE categories SET parent_id = $2, sort_order = $3, updated_at = now()
			 WHERE id = $1`,
			p.ID, p.ParentID, p.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("reorder category %s: %w", p.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
		}
	}
	return tx.Commit(ctx)
}

// Delete removes a category; children are re-rooted by the FK's ON DELETE SET NULL.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
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
