package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shoply/service/internal/slug"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ErrInvalidInput is returned when a product payload fails validation.
var ErrInvalidInput = errors.New("invalid product input")

// ListPage is one page of products with pagination metadata.
type ListPage struct {
	Items    []*Product `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// Service contains business logic for catalog management.
type Service struct {
	repo *Repository
}

// NewService creates a new product Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and inserts a new product. An empty slug is derived from
// the name.
func (s *Service) Create(ctx context.Context, in Input) (*Product, error) {
	if err := normalize(&in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

// GetByID returns a product by its UUID.
func (s *Service) GetByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a filtered page of products.
func (s *Service) List(ctx context.Context, f ListFilter) (*ListPage, error) {
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
		items = []*Product{}
	}
	return &ListPage{Items: items, Total: total, Page: f.Page, PageSize: f.PageSize}, nil
}

// Update validates and replaces a product's writable fields.
func (s *Service) Update(ctx context.Context, id string, in Input) (*Product, error) {
	if err := normalize(&in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

// AdjustStock applies a signed stock delta (positive restocks, negative sells).
func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (*Product, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: stock delta must be non-zero", ErrInvalidInput)
	}
	return s.repo.AdjustStock(ctx, id, delta)
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func normalize(in *Input) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.PriceCents < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput)
	}
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
	return nil
}
