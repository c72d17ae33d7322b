package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shoply/service/internal/slug"
)

// ErrInvalidInput is returned when a category payload fails validation.
var ErrInvalidInput = errors.New("invalid category input")

// Service contains business logic for the category tree.
type Service struct {
	repo *Repository
}

// NewService creates a new category Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and inserts a new category.
func (s *Service) Create(ctx context.Context, in Input) (*Category, error) {
	if err := normalize(&in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

// GetByID returns a category by its UUID.
func (s *Service) GetByID(ctx context.Context, id string) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

// Tree returns the full category tree, children nested under parents and
// ordered by sort_order.
func (s *Service) Tree(ctx context.Context) ([]*Category, error) {
	flat, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(flat), nil
}

// Update validates and replaces a category's writable fields.
func (s *Service) Update(ctx context.Context, id string, in Input) (*Category, error) {
	if err := normalize(&in); err != nil {
		return nil, err
	}
	if in.ParentID != nil && *in.ParentID == id {
		return nil, fmt.Errorf("%w: a category cannot be its own parent", ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, in)
}

// Reorder applies a bulk drag-and-drop rearrangement atomically.
func (s *Service) Reorder(ctx context.Context, placements []Placement) error {
	if len(placements) == 0 {
		return fmt.Errorf("%w: no placements given", ErrInvalidInput)
	}
	for _, p := range placements {
		if p.ID == "" {
			return fmt.Errorf("%w: placement without id", ErrInvalidInput)
		}
		if p.ParentID != nil && *p.ParentID == p.ID {
			return fmt.Errorf("%w: a category cannot be its own parent", ErrInvalidInput)
		}
	}
	return s.repo.Reorder(ctx, placements)
}

// Delete removes a category.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// BuildTree nests a flat, pre-sorted category list into a tree. Nodes whose
// parent is missing from the list surface as roots.
func BuildTree(flat []*Category) []*Category {
	byID := make(map[string]*Category, len(flat))
	for _, c := range flat {
		byID[c.ID] = c
	}

	var roots []*Category
	for _, c := range flat {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Children = append(parent.Children, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}

func normalize(in *Input) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	}
	return nil
}
