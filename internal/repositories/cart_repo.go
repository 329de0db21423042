package repositories

import "grocto/internal/models"

// CartRepository defines the interface for cart data access. Cart mutation
// is last-write-wins at the item level; the single-store invariant is
// enforced by the cart service, which clears the cart before binding a new
// store.
type CartRepository interface {
	GetItems(studentID string) ([]models.CartItem, error)
	// GetStoreID returns the store the cart is bound to, or "" when the
	// cart is empty.
	GetStoreID(studentID string) (string, error)
	GetItem(studentID, itemID string) (*models.CartItem, error)
	FindByProduct(studentID, productID string) (*models.CartItem, error)
	Save(item *models.CartItem) error
	RemoveItem(studentID, itemID string) error
	Clear(studentID string) error
}
