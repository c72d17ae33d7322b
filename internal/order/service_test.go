package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(nil)

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing customer", CreateInput{Items: []ItemInput{{ProductID: "p1", Quantity: 1}}}},
		{"no items", CreateInput{CustomerID: "c1"}},
		{"item without product", CreateInput{CustomerID: "c1", Items: []ItemInput{{Quantity: 1}}}},
		{"zero quantity", CreateInput{CustomerID: "c1", Items: []ItemInput{{ProductID: "p1"}}}},
		{"duplicate product", CreateInput{CustomerID: "c1", Items: []ItemInput{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p1", Quantity: 2},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_List_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.List(context.Background(), ListFilter{Status: "refunded"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.UpdateStatus(context.Background(), "order-1", "refunded")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
