package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grocto/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create creates a new order with its item snapshots.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves a single order with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByStore retrieves all orders placed with a store.
func (r *GORMOrderRepository) GetByStore(storeID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("order_date DESC").Find(&orders, "store_id = ?", storeID).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for store %s: %w", storeID, err)
	}
	return orders, nil
}

// GetByStudent retrieves all orders placed by a student.
func (r *GORMOrderRepository) GetByStudent(studentID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("order_date DESC").Find(&orders, "student_id = ?", studentID).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for student %s: %w", studentID, err)
	}
	return orders, nil
}

// TransitionStatus compare-and-swaps the order's status. The conditional
// UPDATE only matches while the order is still in `from`; zero affected
// rows means a concurrent request won the race.
func (r *GORMOrderRepository) TransitionStatus(id string, from, to models.Status, estimated *time.Time, contact string) (bool, error) {
	fields := map[string]interface{}{"status": to}
	if estimated != nil {
		fields["estimated_delivery_time"] = *estimated
	}
	if contact != "" {
		fields["delivery_person_contact"] = contact
	}

	res := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if res.Error != nil {
		return false, fmt.Errorf("failed to transition order %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
