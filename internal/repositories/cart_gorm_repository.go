package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grocto/internal/models"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetItems retrieves all cart items of a student.
func (r *GORMCartRepository) GetItems(studentID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Find(&items, "student_id = ?", studentID).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart items for student %s: %w", studentID, err)
	}
	return items, nil
}

// GetStoreID returns the store the student's cart is bound to.
func (r *GORMCartRepository) GetStoreID(studentID string) (string, error) {
	var item models.CartItem
	err := r.db.First(&item, "student_id = ?", studentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to get cart store for student %s: %w", studentID, err)
	}
	return item.StoreID, nil
}

// GetItem retrieves a single cart item owned by the student.
func (r *GORMCartRepository) GetItem(studentID, itemID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.First(&item, "id = ? AND student_id = ?", itemID, studentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cart item with ID %s not found", itemID)
		}
		return nil, fmt.Errorf("failed to get cart item %s: %w", itemID, err)
	}
	return &item, nil
}

// FindByProduct finds the cart line referencing a product, if any.
func (r *GORMCartRepository) FindByProduct(studentID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.First(&item, "student_id = ? AND product_id = ?", studentID, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cart item for product %s: %w", productID, err)
	}
	return &item, nil
}

// Save creates or updates a cart line (last write wins).
func (r *GORMCartRepository) Save(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to save cart item: %w", err)
	}
	return nil
}

// RemoveItem removes a cart line owned by the student.
func (r *GORMCartRepository) RemoveItem(studentID, itemID string) error {
	res := r.db.Delete(&models.CartItem{}, "id = ? AND student_id = ?", itemID, studentID)
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item with ID %s not found", itemID)
	}
	return nil
}

// Clear empties the student's cart.
func (r *GORMCartRepository) Clear(studentID string) error {
	if err := r.db.Delete(&models.CartItem{}, "student_id = ?", studentID).Error; err != nil {
		return fmt.Errorf("failed to clear cart for student %s: %w", studentID, err)
	}
	return nil
}
