package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"grocto/internal/models"
)

// MockStoreRepository is an in-memory implementation of StoreRepository.
type MockStoreRepository struct {
	stores map[string]models.Store
	slots  map[string]models.DeliverySlot
	roster map[string]models.DeliveryPerson
	mu     sync.RWMutex
}

// NewMockStoreRepository creates a new instance of MockStoreRepository.
func NewMockStoreRepository() *MockStoreRepository {
	return &MockStoreRepository{
		stores: make(map[string]models.Store),
		slots:  make(map[string]models.DeliverySlot),
		roster: make(map[string]models.DeliveryPerson),
	}
}

// Create adds a new store.
func (r *MockStoreRepository) Create(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	r.stores[store.ID] = *store
	return nil
}

// Update updates an existing store.
func (r *MockStoreRepository) Update(store *models.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stores[store.ID]; !ok {
		return fmt.Errorf("store with ID %s not found for update", store.ID)
	}
	r.stores[store.ID] = *store
	return nil
}

// GetByID returns a store by its ID with slots and roster attached.
func (r *MockStoreRepository) GetByID(id string) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	store, ok := r.stores[id]
	if !ok {
		return nil, fmt.Errorf("store with ID %s not found", id)
	}
	store.DeliverySlots = r.slotsOf(id)
	store.DeliveryPersons = r.rosterOf(id)
	return &store, nil
}

// GetBySellerID returns the store owned by a seller account.
func (r *MockStoreRepository) GetBySellerID(sellerID string) (*models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, store := range r.stores {
		if store.SellerID == sellerID {
			store.DeliverySlots = r.slotsOf(store.ID)
			store.DeliveryPersons = r.rosterOf(store.ID)
			return &store, nil
		}
	}
	return nil, fmt.Errorf("store for seller %s not found", sellerID)
}

// GetAll returns all stores.
func (r *MockStoreRepository) GetAll() ([]models.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	storeList := make([]models.Store, 0, len(r.stores))
	for _, store := range r.stores {
		storeList = append(storeList, store)
	}
	return storeList, nil
}

// GetSlots returns the delivery slots of a store.
func (r *MockStoreRepository) GetSlots(storeID string) ([]models.DeliverySlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.slotsOf(storeID), nil
}

// CreateSlot adds a new delivery slot.
func (r *MockStoreRepository) CreateSlot(slot *models.DeliverySlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	r.slots[slot.ID] = *slot
	return nil
}

// UpdateSlot updates an existing delivery slot.
func (r *MockStoreRepository) UpdateSlot(slot *models.DeliverySlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slots[slot.ID]; !ok {
		return fmt.Errorf("delivery slot with ID %s not found for update", slot.ID)
	}
	r.slots[slot.ID] = *slot
	return nil
}

// DeleteSlot removes a delivery slot by its ID.
func (r *MockStoreRepository) DeleteSlot(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slots[id]; !ok {
		return fmt.Errorf("delivery slot with ID %s not found for deletion", id)
	}
	delete(r.slots, id)
	return nil
}

// GetRoster returns the delivery-person roster of a store.
func (r *MockStoreRepository) GetRoster(storeID string) ([]models.DeliveryPerson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rosterOf(storeID), nil
}

// AddDeliveryPerson adds a roster entry.
func (r *MockStoreRepository) AddDeliveryPerson(person *models.DeliveryPerson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	r.roster[person.ID] = *person
	return nil
}

// RemoveDeliveryPerson removes a roster entry by its ID.
func (r *MockStoreRepository) RemoveDeliveryPerson(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roster[id]; !ok {
		return fmt.Errorf("delivery person with ID %s not found for removal", id)
	}
	delete(r.roster, id)
	return nil
}

// slotsOf and rosterOf expect the lock to be held by the caller.
func (r *MockStoreRepository) slotsOf(storeID string) []models.DeliverySlot {
	var slots []models.DeliverySlot
	for _, slot := range r.slots {
		if slot.StoreID == storeID {
			slots = append(slots, slot)
		}
	}
	return slots
}

func (r *MockStoreRepository) rosterOf(storeID string) []models.DeliveryPerson {
	var roster []models.DeliveryPerson
	for _, person := range r.roster {
		if person.StoreID == storeID {
			roster = append(roster, person)
		}
	}
	return roster
}
