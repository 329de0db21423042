package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"grocto/internal/engine"
	"grocto/internal/models"
)

// MockOfferRepository is an in-memory implementation of OfferRepository.
type MockOfferRepository struct {
	offers map[string]models.Offer
	usages map[string]bool // "offerID/orderID"
	mu     sync.RWMutex
}

// NewMockOfferRepository creates a new instance of MockOfferRepository.
func NewMockOfferRepository() *MockOfferRepository {
	return &MockOfferRepository{
		offers: make(map[string]models.Offer),
		usages: make(map[string]bool),
	}
}

// Create adds a new offer.
func (r *MockOfferRepository) Create(offer *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	r.offers[offer.ID] = *offer
	return nil
}

// Update updates an existing offer.
func (r *MockOfferRepository) Update(offer *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.offers[offer.ID]; !ok {
		return fmt.Errorf("offer with ID %s not found for update", offer.ID)
	}
	r.offers[offer.ID] = *offer
	return nil
}

// Delete removes an offer by its ID.
func (r *MockOfferRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.offers[id]; !ok {
		return fmt.Errorf("offer with ID %s not found for deletion", id)
	}
	delete(r.offers, id)
	return nil
}

// GetByID returns an offer by its ID.
func (r *MockOfferRepository) GetByID(id string) (*models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offer, ok := r.offers[id]
	if !ok {
		return nil, fmt.Errorf("offer with ID %s not found", id)
	}
	return &offer, nil
}

// GetByStore returns all offers posted by a store.
func (r *MockOfferRepository) GetByStore(storeID string) ([]models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var offers []models.Offer
	for _, offer := range r.offers {
		if offer.StoreID == storeID {
			offers = append(offers, offer)
		}
	}
	return offers, nil
}

// GetAll returns all offers.
func (r *MockOfferRepository) GetAll() ([]models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offerList := make([]models.Offer, 0, len(r.offers))
	for _, offer := range r.offers {
		offerList = append(offerList, offer)
	}
	return offerList, nil
}

// RecordUsage counts one use of the offer for an order, idempotently.
func (r *MockOfferRepository) RecordUsage(offerID, orderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	offer, ok := r.offers[offerID]
	if !ok {
		return false, fmt.Errorf("offer with ID %s not found", offerID)
	}

	key := offerID + "/" + orderID
	if r.usages[key] {
		return false, nil // already counted for this order
	}
	if offer.OfferLimit > 0 && offer.UsageCount >= offer.OfferLimit {
		return false, engine.ErrOfferLimitReached
	}
	r.usages[key] = true
	offer.UsageCount++
	r.offers[offerID] = offer
	return true, nil
}

// ReleaseUsage undoes RecordUsage for an order that was never written.
func (r *MockOfferRepository) ReleaseUsage(offerID, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := offerID + "/" + orderID
	if !r.usages[key] {
		return nil
	}
	delete(r.usages, key)

	offer, ok := r.offers[offerID]
	if !ok {
		return fmt.Errorf("offer with ID %s not found", offerID)
	}
	if offer.UsageCount > 0 {
		offer.UsageCount--
	}
	r.offers[offerID] = offer
	return nil
}
