package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"grocto/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
// The mutex serializes cart mutation per process, matching the
// last-write-wins discipline of concurrent tabs.
type MockCartRepository struct {
	items map[string]models.CartItem
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		items: make(map[string]models.CartItem),
	}
}

// GetItems returns all cart items of a student.
func (r *MockCartRepository) GetItems(studentID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.CartItem
	for _, item := range r.items {
		if item.StudentID == studentID {
			items = append(items, item)
		}
	}
	return items, nil
}

// GetStoreID returns the store the student's cart is bound to.
func (r *MockCartRepository) GetStoreID(studentID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.StudentID == studentID {
			return item.StoreID, nil
		}
	}
	return "", nil
}

// GetItem returns a single cart item owned by the student.
func (r *MockCartRepository) GetItem(studentID, itemID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok || item.StudentID != studentID {
		return nil, fmt.Errorf("cart item with ID %s not found", itemID)
	}
	return &item, nil
}

// FindByProduct finds the cart line referencing a product, if any.
func (r *MockCartRepository) FindByProduct(studentID, productID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.StudentID == studentID && item.ProductID == productID {
			return &item, nil
		}
	}
	return nil, nil
}

// Save creates or updates a cart line (last write wins).
func (r *MockCartRepository) Save(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

// RemoveItem removes a cart line owned by the student.
func (r *MockCartRepository) RemoveItem(studentID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok || item.StudentID != studentID {
		return fmt.Errorf("cart item with ID %s not found", itemID)
	}
	delete(r.items, itemID)
	return nil
}

// Clear empties the student's cart.
func (r *MockCartRepository) Clear(studentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.StudentID == studentID {
			delete(r.items, id)
		}
	}
	return nil
}
