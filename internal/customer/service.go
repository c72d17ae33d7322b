package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ErrInvalidInput is returned when a customer payload fails validation.
var ErrInvalidInput = errors.New("invalid customer input")

// ListPage is one page of customers with pagination metadata.
type ListPage struct {
	Items    []*Customer `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// Service contains business logic for customer management.
type Service struct {
	repo *Repository
}

// NewService creates a new customer Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and inserts a new customer.
func (s *Service) Create(ctx context.Context, in Input) (*Customer, error) {
	if err := normalize(&in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

// GetByID returns a customer by their UUID.
func (s *Service) GetByID(ctx context.Context, id string) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of customers matching search.
func (s *Service) List(ctx context.Context, search string, page, pageSize int) (*ListPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, total, err := s.repo.List(ctx, search, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Customer{}
	}
	return &ListPage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// Update validates and replaces a customer's writable fields.
func (s *Service) Update(ctx context.Context, id string, in Input) (*Customer, error) {
	if err := normalize(&in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func normalize(in *Input) error {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if in.FullName == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	return nil
}
