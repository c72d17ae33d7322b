package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildTree(t *testing.T) {
	// flat list arrives pre-sorted by sort_order, name
	flat := []*Category{
		{ID: "clothing", Name: "Clothing"},
		{ID: "electronics", Name: "Electronics"},
		{ID: "shoes", Name: "Shoes", ParentID: strPtr("clothing")},
		{ID: "shirts", Name: "Shirts", ParentID: strPtr("clothing")},
		{ID: "sneakers", Name: "Sneakers", ParentID: strPtr("shoes")},
	}

	roots := BuildTree(flat)
	require.Len(t, roots, 2)
	assert.Equal(t, "clothing", roots[0].ID)
	assert.Equal(t, "electronics", roots[1].ID)

	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "shoes", roots[0].Children[0].ID)
	assert.Equal(t, "shirts", roots[0].Children[1].ID)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "sneakers", roots[0].Children[0].Children[0].ID)
	assert.Empty(t, roots[1].Children)
}

func TestBuildTree_OrphanSurfacesAsRoot(t *testing.T) {
	flat := []*Category{
		{ID: "orphan", Name: "Orphan", ParentID: strPtr("deleted-parent")},
	}

	roots := BuildTree(flat)
	require.Len(t, roots, 1)
	assert.Equal(t, "orphan", roots[0].ID)
}

func TestBuildTree_Empty(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
}

func TestService_Create_RequiresName(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Create(context.Background(), Input{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_RejectsSelfParent(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Update(context.Background(), "cat-1", Input{Name: "Shoes", ParentID: strPtr("cat-1")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Reorder_Validation(t *testing.T) {
	svc := NewService(nil)

	assert.ErrorIs(t, svc.Reorder(context.Background(), nil), ErrInvalidInput)
	assert.ErrorIs(t, svc.Reorder(context.Background(), []Placement{{ID: ""}}), ErrInvalidInput)
	assert.ErrorIs(t, svc.Reorder(context.Background(),
		[]Placement{{ID: "cat-1", ParentID: strPtr("cat-1")}}), ErrInvalidInput)
}
