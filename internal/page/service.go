package page

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shoply/service/internal/slug"
)

// ErrInvalidInput is returned when a page payload fails validation.
var ErrInvalidInput = errors.New("invalid page input")

// Service contains business logic for blog/CMS pages.
type Service struct {
	repo *Repository
}

// NewService creates a new page Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and inserts a new page.
func (s *Service) Create(ctx context.Context, in Input) (*Page, error) {
	if err := normalize(&in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

// GetBySlug returns a page by its slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// List returns pages, optionally only published ones.
func (s *Service) List(ctx context.Context, publishedOnly bool) ([]*Page, error) {
	pages, err := s.repo.List(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []*Page{}
	}
	return pages, nil
}

// Update validates and replaces a page addressed by slug.
func (s *Service) Update(ctx context.Context, slug string, in Input) (*Page, error) {
	if err := normalize(&in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, slug, in)
}

// Delete removes a page.
func (s *Service) Delete(ctx context.Context, slug string) error {
	return s.repo.Delete(ctx, slug)
}

func normalize(in *Input) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Slug == "" {
		in.Slug = slug.Make(in.Title)
	}
	return nil
}
