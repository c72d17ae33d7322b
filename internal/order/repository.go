package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Order represents one storefront order.
type Order struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Status     Status    `json:"status"`
	TotalCents int64     `json:"totalCents"`
	Items      []*Item   `json:"items,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Item is one order line. Product name and unit price are snapshotted at
// order time so later catalog edits don't rewrite history.
type Item struct {
	ID             string `json:"id"`
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// ItemInput is one requested order line.
type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateInput carries a new order request.
type CreateInput struct {
	CustomerID string      `json:"customerId"`
	Items      []ItemInput `json:"items"`
}

// ListFilter narrows and pages order listings.
type ListFilter struct {
	Page       int
	PageSize   int
	Status     Status
	CustomerID string
}

// ErrNotFound is returned when an order does not exist.
var ErrNotFound = errors.New("order not found")

// ErrProductNotFound is returned when an order line names an unknown product.
var ErrProductNotFound = errors.New("ordered product not found")

// ErrInsufficientStock is returned when an order line exceeds available stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidTransition is returned for a disallowed status change.
var ErrInvalidTransition = errors.New("invalid status transition")

const orderColumns = `id, customer_id, status, total_cents, created_at, updated_at`

// Repository handles order database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanOrder(row pgx.Row) (*Order, error) {
	o := &Order{}
	err := row.Scan(&o.ID, &o.CustomerID, &o.Status, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts the order and its lines in one transaction. Stock for every
// line is decremented up front; the stock check constraint turns an oversell
// into ErrInsufficientStock and rolls the whole order back. Prices are read
// from the catalog inside the same transaction and the total is computed
// server-side.
func (r *Repository) Create(ctx context.Context, in CreateInput) (*Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create order: %w", err)
	}
	defer tx.Rollback(ctx)

	type pricedLine struct {
		input ItemInput
		name  string
		price int64
	}

	lines := make([]pricedLine, 0, len(in.Items))
	var total int64
	for _, item := range in.Items {
		var name string
		var price int64
		err := tx.QueryRow(ctx,
			`UPDATE products SET stock = stock - $2, updated_at = now()
			 WHERE id = $1
			 RETURNING name, price_cents`,
			item.ProductID, item.Quantity,
		).Scan(&name, &price)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		if err != nil {
			if isCheckViolation(err) {
				return nil, fmt.Errorf("%w: product %s", ErrInsufficientStock, item.ProductID)
			}
			return nil, fmt.Errorf("reserve stock: %w", err)
		}
		lines = append(lines, pricedLine{input: item, name: name, price: price})
		total += price * int64(item.Quantity)
	}

	o, err := scanOrder(tx.QueryRow(ctx,
		`INSERT INTO orders (customer_id, status, total_cents)
		 VALUES ($1, $2, $3)
		 RETURNING `+orderColumns,
		in.CustomerID, StatusPending, total,
	))
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, line := range lines {
		item := &Item{
			ProductID:      line.input.ProductID,
			ProductName:    line.name,
			Quantity:       line.input.Quantity,
			UnitPriceCents: line.price,
		}
		err := tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price_cents)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			o.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPriceCents,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit create order: %w", err)
	}
	return o, nil
}

// GetByID fetches an order and its lines.
func (r *Repository) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, product_id, product_name, quantity, unit_price_cents
		 FROM order_items WHERE order_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

// List returns a filtered, paginated page of orders plus the total count.
// Lines are not loaded for list views.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]*Order, int, error) {
	where := []string{"TRUE"}
	args := []interface{}{}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		where = append(where, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM orders WHERE `+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)
	rows, err := r.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE `+cond+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

// UpdateStatus moves an order to a new status, enforcing the lifecycle.
// Cancelling restores the reserved stock of every line in the same
// transaction.
func (r *Repository) UpdateStatus(ctx context.Context, id string, to Status) (*Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin status update: %w", err)
	}
	defer tx.Rollback(ctx)

	var current Status
	err = tx.QueryRow(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id,
	).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock order: %w", err)
	}

	if !CanTransition(current, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, to)
	}

	if to == StatusCancelled {
		if _, err := tx.Exec(ctx,
			`UPDATE products p SET stock = p.stock + i.quantity, updated_at = now()
			 FROM order_items i
			 WHERE i.order_id = $1 AND i.product_id = p.id`,
			id,
		); err != nil {
			return nil, fmt.Errorf("restock cancelled order: %w", err)
		}
	}

	o, err := scanOrder(tx.QueryRow(ctx,
		`UPDATE orders SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+orderColumns,
		id, to,
	))
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit status update: %w", err)
	}
	return o, nil
}

// isCheckViolation checks whether an error is a PostgreSQL check_violation (code 23514).
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}
