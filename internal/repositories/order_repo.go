package repositories

import (
	"time"

	"grocto/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByStore(storeID string) ([]models.Order, error)
	GetByStudent(studentID string) ([]models.Order, error)
	// TransitionStatus atomically moves the order from `from` to `to`
	// and applies the transition's side-effect fields. It is the
	// compare-and-swap on order status: applied=false means the order
	// was no longer in `from`, so the caller lost the race and must
	// treat the request as an illegal transition.
	TransitionStatus(id string, from, to models.Status, estimated *time.Time, contact string) (applied bool, err error)
}
