package order

import (
	"context"
	"errors"
	"fmt"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ErrInvalidInput is returned when an order payload fails validation.
var ErrInvalidInput = errors.New("invalid order input")

// ListPage is one page of orders with pagination metadata.
type ListPage struct {
	Items    []*Order `json:"items"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}

// Service contains business logic for order management.
type Service struct {
	repo *Repository
}

// NewService creates a new order Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and places a new order.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Order, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: customerId is required", ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: item without productId", ErrInvalidInput)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
		}
		if _, dup := seen[item.ProductID]; dup {
			return nil, fmt.Errorf("%w: duplicate product %s", ErrInvalidInput, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
	}
	return s.repo.Create(ctx, in)
}

// GetByID returns an order with its lines.
func (s *Service) GetByID(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a filtered page of orders.
func (s *Service) List(ctx context.Context, f ListFilter) (*ListPage, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, f.Status)
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}

	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Order{}
	}
	return &ListPage{Items: items, Total: total, Page: f.Page, PageSize: f.PageSize}, nil
}

// UpdateStatus moves an order along its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status) (*Order, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, to)
	}
	return s.repo.UpdateStatus(ctx, id, to)
}
