package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockPredicates_MutuallyExclusive(t *testing.T) {
	testCases := []struct {
		name       string
		quantity   int
		outOfStock bool
		lowStock   bool
		status     string
	}{
		{"zero quantity", 0, true, false, "Out of Stock"},
		{"one unit", 1, false, true, "Low Stock"},
		{"just below threshold", 19, false, true, "Low Stock"},
		{"at threshold", 20, false, false, "In Stock"},
		{"well stocked", 50, false, false, "In Stock"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Sweet{ID: "1", Name: "Test", Quantity: tc.quantity}

			assert.Equal(t, tc.outOfStock, s.IsOutOfStock())
			assert.Equal(t, tc.lowStock, s.IsLowStock())
			assert.Equal(t, tc.status, s.StockStatus())

			// Out of stock and low stock can never both hold
			assert.False(t, s.IsOutOfStock() && s.IsLowStock())
		})
	}
}
