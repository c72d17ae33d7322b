package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(nil)

	cases := []struct {
		name string
		in   Input
	}{
		{"blank name", Input{Name: "   "}},
		{"negative price", Input{Name: "Shoes", PriceCents: -1}},
		{"negative stock", Input{Name: "Shoes", Stock: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestNormalize_DerivesSlug(t *testing.T) {
	in := Input{Name: "  Red Shoes  ", PriceCents: 1999}
	assert.NoError(t, normalize(&in))
	assert.Equal(t, "Red Shoes", in.Name)
	assert.Equal(t, "red-shoes", in.Slug)

	in = Input{Name: "Boots", Slug: "custom-slug"}
	assert.NoError(t, normalize(&in))
	assert.Equal(t, "custom-slug", in.Slug)
}

func TestService_AdjustStock_RejectsZeroDelta(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.AdjustStock(context.Background(), "prod-1", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
