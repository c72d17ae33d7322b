// Package customer manages storefront customer records.
package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Customer represents a storefront customer.
type Customer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input carries the writable fields of a customer.
type Input struct {
	Email    string  `json:"email"`
	FullName string  `json:"fullName"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// ErrNotFound is returned when a customer does not exist.
var ErrNotFound = errors.New("customer not found")

// ErrAlreadyExists is returned when an email is already registered.
var ErrAlreadyExists = errors.New("customer already exists")

const customerColumns = `id, email, full_name, phone, address, created_at, updated_at`

// Repository handles customer database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanCustomer(row pgx.Row) (*Customer, error) {
	c := &Customer{}
	err := row.Scan(&c.ID, &c.Email, &c.FullName, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new customer.
func (r *Repository) Create(ctx context.Context, in Input) (*Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx,
		`INSERT INTO customers (email, full_name, phone, address)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+customerColumns,
		in.Email, in.FullName, in.Phone, in.Address,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

// GetByID fetches a customer by their UUID.
func (r *Repository) GetByID(ctx context.Context, id string) (*Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get customer by id: %w", err)
	}
	return c, nil
}

// List returns a page of customers matching the optional name/email search,
// plus the total count.
func (r *Repository) List(ctx context.Context, search string, limit, offset int) ([]*Customer, int, error) {
	pattern := "%" + search + "%"

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM customers WHERE full_name ILIKE $1 OR email ILIKE $1`,
		pattern,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+customerColumns+` FROM customers
		 WHERE full_name ILIKE $1 OR email ILIKE $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		pattern, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, total, rows.Err()
}

// Update replaces a customer's writable fields.
func (r *Repository) Update(ctx context.Context, id string, in Input) (*Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(ctx,
		`UPDATE customers
		 SET email = $2, full_name = $3, phone = $4, address = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING `+customerColumns,
		id, in.Email, in.FullName, in.Phone, in.Address,
	))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

// Delete removes a customer by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
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
