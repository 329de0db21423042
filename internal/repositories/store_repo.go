package repositories

import "grocto/internal/models"

// StoreRepository defines the interface for store, delivery-slot, and
// delivery-roster data access.
type StoreRepository interface {
	Create(store *models.Store) error
	Update(store *models.Store) error
	GetByID(id string) (*models.Store, error)
	GetBySellerID(sellerID string) (*models.Store, error)
	GetAll() ([]models.Store, error)

	GetSlots(storeID string) ([]models.DeliverySlot, error)
	CreateSlot(slot *models.DeliverySlot) error
	UpdateSlot(slot *models.DeliverySlot) error
	DeleteSlot(id string) error

	GetRoster(storeID string) ([]models.DeliveryPerson, error)
	AddDeliveryPerson(person *models.DeliveryPerson) error
	RemoveDeliveryPerson(id string) error
}
