package services

import (
	"fmt"
	"time"

	"grocto/internal/models"
	"grocto/internal/repositories"
)

// StoreService handles business logic for store profiles, delivery slots,
// and the delivery-person roster.
type StoreService struct {
	storeRepo repositories.StoreRepository
}

// NewStoreService creates a new StoreService.
func NewStoreService(storeRepo repositories.StoreRepository) *StoreService {
	return &StoreService{
		storeRepo: storeRepo,
	}
}

// GetAllStores retrieves all stores for browsing.
func (s *StoreService) GetAllStores() ([]models.Store, error) {
	return s.storeRepo.GetAll()
}

// GetStoreByID retrieves a store with its slots and roster.
func (s *StoreService) GetStoreByID(id string) (*models.Store, error) {
	return s.storeRepo.GetByID(id)
}

// GetSellerStore retrieves the store owned by a seller account.
func (s *StoreService) GetSellerStore(sellerID string) (*models.Store, error) {
	return s.storeRepo.GetBySellerID(sellerID)
}

// UpdateProfileInput carries the mutable store-profile fields.
type UpdateProfileInput struct {
	Name          string  `json:"storeName" validate:"required,min=2,max=100"`
	Address       string  `json:"storeAddress" validate:"required,max=200"`
	Phone         string  `json:"phoneNumber" validate:"required,max=20"`
	WorkingDays   string  `json:"workingDays" validate:"omitempty,max=100"`
	OpeningTime   string  `json:"openingTime" validate:"omitempty,len=5"`
	ClosingTime   string  `json:"closingTime" validate:"omitempty,len=5"`
	GSTPercentage float64 `json:"gstPercentage" validate:"gte=0,lte=100"`
}

// UpdateProfile updates the seller's store profile.
func (s *StoreService) UpdateProfile(sellerID string, in UpdateProfileInput) (*models.Store, error) {
	store, err := s.storeRepo.GetBySellerID(sellerID)
	if err != nil {
		return nil, err
	}
	store.Name = in.Name
	store.Address = in.Address
	store.Phone = in.Phone
	store.WorkingDays = in.WorkingDays
	store.OpeningTime = in.OpeningTime
	store.ClosingTime = in.ClosingTime
	store.GSTPercentage = in.GSTPercentage
	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}

// CreateSlot creates a delivery slot for the seller's store after checking
// the startTime < endTime invariant.
func (s *StoreService) CreateSlot(sellerID string, slot *models.DeliverySlot) error {
	store, err := s.storeRepo.GetBySellerID(sellerID)
	if err != nil {
		return err
	}
	slot.StoreID = store.ID
	if err := validateSlotWindow(slot); err != nil {
		return err
	}
	return s.storeRepo.CreateSlot(slot)
}

// UpdateSlot updates a delivery slot owned by the seller's store.
func (s *StoreService) UpdateSlot(sellerID string, slot *models.DeliverySlot) error {
	store, err := s.storeRepo.GetBySellerID(sellerID)
	if err != nil {
		return err
	}
	existing, err := s.findSlot(store.ID, slot.ID)
	if err != nil {
		return err
	}
	slot.StoreID = existing.StoreID
	if err := validateSlotWindow(slot); err != nil {
		return err
	}
	return s.storeRepo.UpdateSlot(slot)
}

// DeleteSlot removes a delivery slot owned by the seller's store.
func (s *StoreService) DeleteSlot(sellerID, slotID string) error {
	store, err := s.storeRepo.GetBySellerID(sellerID)
	if err != nil {
		return err
	}
	if _, err := s.findSlot(store.ID, slotID); err != nil {
		return err
	}
	return s.storeRepo.DeleteSlot(slotID)
}

// AddDeliveryPerson adds a roster entry to the seller's store.
func (s *StoreService) AddDeliveryPerson(sellerID string, person *models.DeliveryPerson) error {
	store, err := s.storeRepo.GetBySellerID(sellerID)
	if err != nil {
		return err
	}
	person.StoreID = store.ID
	return s.storeRepo.AddDeliveryPerson(person)
}

// RemoveDeliveryPerson removes a roster entry from the seller's store.
// Orders already out for delivery keep their contact snapshot.
func (s *StoreService) RemoveDeliveryPerson(sellerID, personID string) error {
	store, err := s.storeRepo.GetBySellerID(sellerID)
	if err != nil {
		return err
	}
	roster, err := s.storeRepo.GetRoster(store.ID)
	if err != nil {
		return err
	}
	for i := range roster {
		if roster[i].ID == personID {
			return s.storeRepo.RemoveDeliveryPerson(personID)
		}
	}
	return fmt.Errorf("delivery person %s not on the roster of store %s", personID, store.ID)
}

func (s *StoreService) findSlot(storeID, slotID string) (*models.DeliverySlot, error) {
	slots, err := s.storeRepo.GetSlots(storeID)
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].ID == slotID {
			return &slots[i], nil
		}
	}
	return nil, fmt.Errorf("delivery slot %s not found for store %s", slotID, storeID)
}

// validateSlotWindow checks the slot's HH:MM pair and the startTime <
// endTime invariant. Slots themselves have no minimum length; only
// requested delivery windows do.
func validateSlotWindow(slot *models.DeliverySlot) error {
	start, err := time.Parse("15:04", slot.StartTime)
	if err != nil {
		return fmt.Errorf("invalid slot start time %q", slot.StartTime)
	}
	end, err := time.Parse("15:04", slot.EndTime)
	if err != nil {
		return fmt.Errorf("invalid slot end time %q", slot.EndTime)
	}
	if !start.Before(end) {
		return fmt.Errorf("slot start time must be before end time")
	}
	return nil
}
