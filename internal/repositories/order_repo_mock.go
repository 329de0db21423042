package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"grocto/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// The mutex serializes status transitions so concurrent requests on the
// same order apply exactly once.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s not found", id)
	}
	return &order, nil
}

// GetByStore returns all orders placed with a store.
func (r *MockOrderRepository) GetByStore(storeID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.orders {
		if order.StoreID == storeID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// GetByStudent returns all orders placed by a student.
func (r *MockOrderRepository) GetByStudent(studentID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.orders {
		if order.StudentID == studentID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// TransitionStatus compare-and-swaps the order's status under the lock.
func (r *MockOrderRepository) TransitionStatus(id string, from, to models.Status, estimated *time.Time, contact string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return false, fmt.Errorf("order with ID %s not found", id)
	}
	if order.Status != from {
		return false, nil // lost the race; status already moved on
	}
	order.Status = to
	if estimated != nil {
		order.EstimatedDeliveryTime = estimated
	}
	if contact != "" {
		order.DeliveryPersonContact = contact
	}
	r.orders[id] = order
	return true, nil
}
