// Package product manages the catalog: products, pricing, stock, and their
// image attachments.
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoply/service/internal/media"
)

// Product represents one catalog entry.
type Product struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	SKU           *string            `json:"sku,omitempty"`
	PriceCents    int64              `json:"priceCents"`
	Stock         int                `json:"stock"`
	Published     bool               `json:"published"`
	CategoryID    *string            `json:"categoryId,omitempty"`
	ImageURL      *string            `json:"imageUrl,omitempty"`
	ImageVariants *media.VariantURLs `json:"imageVariants,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// Input carries the writable fields of a product.
type Input struct {
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Description   string             `json:"description"`
	SKU           *string            `json:"sku"`
	PriceCents    int64              `json:"priceCents"`
	Stock         int                `json:"stock"`
	Published     bool               `json:"published"`
	CategoryID    *string            `json:"categoryId"`
	ImageURL      *string            `json:"imageUrl"`
	ImageVariants *media.VariantURLs `json:"imageVariants"`
}

// ListFilter narrows and pages product listings.
type ListFilter struct {
	Page       int
	PageSize   int
	Search     string
	CategoryID string
	Published  *bool
}

// ErrNotFound is returned when a product does not exist.
var ErrNotFound = errors.New("product not found")

// ErrAlreadyExists is returned when a slug or SKU is already taken.
var ErrAlreadyExists = errors.New("product already exists")

// ErrInsufficientStock is returned when a stock adjustment would go negative.
var ErrInsufficientStock = errors.New("insufficient stock")

const productColumns = `id, name, slug, description, sku, price_cents, stock,
	published, category_id, image_url, image_variants, created_at, updated_at`

// Repository handles product database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanProduct(row pgx.Row) (*Product, error) {
	p := &Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.SKU, &p.PriceCents,
		&p.Stock, &p.Published, &p.CategoryID, &p.ImageURL, &p.ImageVariants,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new product and returns the created record.
func (r *Repository) Create(ctx context.Context, in Input) (*Product, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO products (name, slug, description, sku, price_cents, stock,
		                       published, category_id, image_url, image_variants)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+productColumns,
		in.Name, in.Slug, in.Description, in.SKU, in.PriceCents, in.Stock,
		in.Published, in.CategoryID, in.ImageURL, in.ImageVariants,
	)
	p, err := scanProduct(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// GetByID fetches a product by its UUID.
func (r *Repository) GetByID(ctx context.Context, id string) (*Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return p, nil
}

// List returns a filtered, paginated page of products plus the total count.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]*Product, int, error) {
	where := []string{"TRUE"}
	args := []interface{}{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.Published != nil {
		args = append(args, *f.Published)
		where = append(where, fmt.Sprintf("published = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE `+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE `+cond+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// Update replaces every writable field of a product.
func (r *Repository) Update(ctx context.Context, id string, in Input) (*Product, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE products
		 SET name = $2, slug = $3, description = $4, sku = $5, price_cents = $6,
		     stock = $7, published = $8, category_id = $9, image_url = $10,
		     image_variants = $11, updated_at = now()
		 WHERE id = $1
		 RETURNING `+productColumns,
		id, in.Name, in.Slug, in.Description, in.SKU, in.PriceCents, in.Stock,
		in.Published, in.CategoryID, in.ImageURL, in.ImageVariants,
	)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// AdjustStock applies a signed delta to a product's stock level. The check
// constraint on the column rejects adjustments that would go negative.
func (r *Repository) AdjustStock(ctx context.Context, id string, delta int) (*Product, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+productColumns,
		id, delta,
	)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if isCheckViolation(err) {
			return nil, ErrInsufficientStock
		}
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	return p, nil
}

// Delete removes a product by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
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

// isCheckViolation checks whether an error is a PostgreSQL check_violation (code 23514).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}
