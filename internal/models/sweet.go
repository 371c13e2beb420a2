package models

// Sweet represents one inventory item as served by the sweets API
type Sweet struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// LowStockThreshold is the quantity below which an in-stock item counts as low stock.
// The admin metrics and the per-row status labels both read this constant so the
// two can never disagree.
const LowStockThreshold = 20

// IsOutOfStock reports whether the item has no stock left
func (s Sweet) IsOutOfStock() bool {
	return s.Quantity == 0
}

// IsLowStock reports whether the item is in stock but below the low-stock threshold
func (s Sweet) IsLowStock() bool {
	return s.Quantity > 0 && s.Quantity < LowStockThreshold
}

// StockStatus returns the display label for the item's stock level
func (s Sweet) StockStatus() string {
	switch {
	case s.IsOutOfStock():
		return "Out of Stock"
	case s.IsLowStock():
		return "Low Stock"
	default:
		return "In Stock"
	}
}

// SweetFields carries the attributes an admin submits when creating or
// updating a sweet. The remote API validates them authoritatively; the
// frontend only echoes its verdict.
type SweetFields struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}
