package catalog

import (
	"sweetshop-web/internal/models"
	"sweetshop-web/pkg/errors"
)

// Card is the presentation unit for one sweet. It owns only transient input
// state (requested purchase and restock quantities) and validates locally
// before delegating to callbacks supplied by the owning view. A card never
// talks to the sweets API itself.
type Card struct {
	Sweet       models.Sweet
	PurchaseQty int
	RestockQty  int
	RestockOpen bool
	EditOpen    bool
}

// Input defaults after a confirmed action
const (
	DefaultPurchaseQty = 1
	DefaultRestockQty  = 10
)

// NewCard creates a card with default input state
func NewCard(sweet models.Sweet) Card {
	return Card{
		Sweet:       sweet,
		PurchaseQty: DefaultPurchaseQty,
		RestockQty:  DefaultRestockQty,
	}
}

// CanPurchase reports whether the requested quantity is purchasable:
// positive and not exceeding current stock
func (c *Card) CanPurchase() bool {
	return c.PurchaseQty > 0 && c.PurchaseQty <= c.Sweet.Quantity
}

// CanRestock reports whether the requested restock quantity is valid
func (c *Card) CanRestock() bool {
	return c.RestockQty > 0
}

// Purchase validates the requested quantity and delegates to the supplied
// callback. Invalid quantities are rejected with no delegation. The input
// resets to its default after delegation.
func (c *Card) Purchase(onPurchase func(id string, quantity int) error) error {
	if !c.CanPurchase() {
		return errors.NewValidationFailure("Please enter a valid quantity")
	}
	err := onPurchase(c.Sweet.ID, c.PurchaseQty)
	c.PurchaseQty = DefaultPurchaseQty
	return err
}

// Restock validates the requested quantity, delegates, and collapses the
// restock input on its way out
func (c *Card) Restock(onRestock func(id string, quantity int) error) error {
	if !c.CanRestock() {
		return errors.NewValidationFailure("Please enter a valid quantity")
	}
	err := onRestock(c.Sweet.ID, c.RestockQty)
	c.RestockQty = DefaultRestockQty
	c.RestockOpen = false
	return err
}
