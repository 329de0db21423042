package services

import (
	"fmt"
	"time"

	"grocto/internal/engine"
	"grocto/internal/models"
	"grocto/internal/repositories"
)

// OfferService handles business logic for promotional offers.
type OfferService struct {
	offerRepo repositories.OfferRepository
	storeRepo repositories.StoreRepository
}

// NewOfferService creates a new OfferService.
func NewOfferService(offerRepo repositories.OfferRepository, storeRepo repositories.StoreRepository) *OfferService {
	return &OfferService{
		offerRepo: offerRepo,
		storeRepo: storeRepo,
	}
}

// CreateOffer creates a new offer under the seller's store.
func (s *OfferService) CreateOffer(sellerID string, offer *models.Offer) error {
	store, err := s.storeRepo.GetBySellerID(sellerID)
	if err != nil {
		return err
	}
	offer.StoreID = store.ID
	offer.UsageCount = 0
	if err := validateOfferFields(offer); err != nil {
		return err
	}
	return s.offerRepo.Create(offer)
}

// UpdateOffer updates an offer owned by the seller's store. The usage
// count is never reset by an edit.
func (s *OfferService) UpdateOffer(sellerID string, offer *models.Offer) error {
	store, err := s.storeRepo.GetBySellerID(sellerID)
	if err != nil {
		return err
	}
	existing, err := s.offerRepo.GetByID(offer.ID)
	if err != nil {
		return err
	}
	if existing.StoreID != store.ID {
		return fmt.Errorf("offer %s does not belong to store %s", offer.ID, store.ID)
	}
	offer.StoreID = existing.StoreID
	offer.UsageCount = existing.UsageCount
	if err := validateOfferFields(offer); err != nil {
		return err
	}
	return s.offerRepo.Update(offer)
}

// DeleteOffer removes an offer. Expired offers linger until the seller
// deletes them explicitly; this is that action.
func (s *OfferService) DeleteOffer(sellerID, offerID string) error {
	store, err := s.storeRepo.GetBySellerID(sellerID)
	if err != nil {
		return err
	}
	existing, err := s.offerRepo.GetByID(offerID)
	if err != nil {
		return err
	}
	if existing.StoreID != store.ID {
		return fmt.Errorf("offer %s does not belong to store %s", offerID, store.ID)
	}
	return s.offerRepo.Delete(offerID)
}

// GetStoreOffers returns every offer of a store, active or not, for the
// seller's management view.
func (s *OfferService) GetStoreOffers(storeID string) ([]models.Offer, error) {
	return s.offerRepo.GetByStore(storeID)
}

// GetActiveStoreOffers returns the offers of a store that are active right
// now, for the student-facing banner.
func (s *OfferService) GetActiveStoreOffers(storeID string) ([]models.Offer, error) {
	offers, err := s.offerRepo.GetByStore(storeID)
	if err != nil {
		return nil, err
	}
	return filterActive(offers, time.Now()), nil
}

// GetActiveOffers returns all currently active offers across stores.
func (s *OfferService) GetActiveOffers() ([]models.Offer, error) {
	offers, err := s.offerRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return filterActive(offers, time.Now()), nil
}

func filterActive(offers []models.Offer, now time.Time) []models.Offer {
	active := make([]models.Offer, 0, len(offers))
	for i := range offers {
		if engine.OfferActive(&offers[i], now) == nil {
			active = append(active, offers[i])
		}
	}
	return active
}

func validateOfferFields(offer *models.Offer) error {
	if offer.DiscountType == models.DiscountPercentage && offer.Amount > 100 {
		return fmt.Errorf("percentage discount cannot exceed 100")
	}
	if offer.ClosingDate.Before(offer.StartingDate) {
		return fmt.Errorf("closing date must not be before starting date")
	}
	return nil
}
