package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grocto/internal/models"
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{
		db: db,
	}
}

// Create creates a new store in the database.
func (r *GORMStoreRepository) Create(store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	if err := r.db.Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// Update updates an existing store in the database.
func (r *GORMStoreRepository) Update(store *models.Store) error {
	res := r.db.Omit("DeliveryPersons", "DeliverySlots").Save(store)
	if res.Error != nil {
		return fmt.Errorf("failed to update store: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store with ID %s not found for update", store.ID)
	}
	return nil
}

// GetByID retrieves a store with its slots and roster preloaded.
func (r *GORMStoreRepository) GetByID(id string) (*models.Store, error) {
	var store models.Store
	err := r.db.Preload("DeliveryPersons").Preload("DeliverySlots").First(&store, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get store by ID %s: %w", id, err)
	}
	return &store, nil
}

// GetBySellerID retrieves the store owned by a seller account.
func (r *GORMStoreRepository) GetBySellerID(sellerID string) (*models.Store, error) {
	var store models.Store
	err := r.db.Preload("DeliveryPersons").Preload("DeliverySlots").First(&store, "seller_id = ?", sellerID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store for seller %s not found", sellerID)
		}
		return nil, fmt.Errorf("failed to get store for seller %s: %w", sellerID, err)
	}
	return &store, nil
}

// GetAll retrieves all stores.
func (r *GORMStoreRepository) GetAll() ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to get all stores: %w", err)
	}
	return stores, nil
}

// GetSlots retrieves the delivery slots configured by a store.
func (r *GORMStoreRepository) GetSlots(storeID string) ([]models.DeliverySlot, error) {
	var slots []models.DeliverySlot
	if err := r.db.Find(&slots, "store_id = ?", storeID).Error; err != nil {
		return nil, fmt.Errorf("failed to get delivery slots for store %s: %w", storeID, err)
	}
	return slots, nil
}

// CreateSlot creates a new delivery slot.
func (r *GORMStoreRepository) CreateSlot(slot *models.DeliverySlot) error {
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	if err := r.db.Create(slot).Error; err != nil {
		return fmt.Errorf("failed to create delivery slot: %w", err)
	}
	return nil
}

// UpdateSlot updates an existing delivery slot.
func (r *GORMStoreRepository) UpdateSlot(slot *models.DeliverySlot) error {
	res := r.db.Save(slot)
	if res.Error != nil {
		return fmt.Errorf("failed to update delivery slot: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delivery slot with ID %s not found for update", slot.ID)
	}
	return nil
}

// DeleteSlot deletes a delivery slot by its ID.
func (r *GORMStoreRepository) DeleteSlot(id string) error {
	res := r.db.Delete(&models.DeliverySlot{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete delivery slot: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delivery slot with ID %s not found for deletion", id)
	}
	return nil
}

// GetRoster retrieves the delivery-person roster of a store.
func (r *GORMStoreRepository) GetRoster(storeID string) ([]models.DeliveryPerson, error) {
	var roster []models.DeliveryPerson
	if err := r.db.Find(&roster, "store_id = ?", storeID).Error; err != nil {
		return nil, fmt.Errorf("failed to get delivery roster for store %s: %w", storeID, err)
	}
	return roster, nil
}

// AddDeliveryPerson adds an entry to a store's delivery roster.
func (r *GORMStoreRepository) AddDeliveryPerson(person *models.DeliveryPerson) error {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	if err := r.db.Create(person).Error; err != nil {
		return fmt.Errorf("failed to add delivery person: %w", err)
	}
	return nil
}

// RemoveDeliveryPerson removes a roster entry by its ID.
func (r *GORMStoreRepository) RemoveDeliveryPerson(id string) error {
	res := r.db.Delete(&models.DeliveryPerson{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to remove delivery person: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delivery person with ID %s not found for removal", id)
	}
	return nil
}
