package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"grocto/internal/engine"
	"grocto/internal/models"
)

// GORMOfferRepository is a GORM implementation of OfferRepository.
type GORMOfferRepository struct {
	db *gorm.DB
}

// NewGORMOfferRepository creates a new instance of GORMOfferRepository.
func NewGORMOfferRepository(db *gorm.DB) *GORMOfferRepository {
	return &GORMOfferRepository{
		db: db,
	}
}

// Create creates a new offer in the database.
func (r *GORMOfferRepository) Create(offer *models.Offer) error {
	if offer.ID == "" {
		offer.ID = uuid.New().String()
	}
	if err := r.db.Create(offer).Error; err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

// Update updates an existing offer in the database.
func (r *GORMOfferRepository) Update(offer *models.Offer) error {
	res := r.db.Save(offer)
	if res.Error != nil {
		return fmt.Errorf("failed to update offer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("offer with ID %s not found for update", offer.ID)
	}
	return nil
}

// Delete deletes an offer by its ID. Offers expire but are never deleted
// automatically; this is the seller's explicit action.
func (r *GORMOfferRepository) Delete(id string) error {
	res := r.db.Delete(&models.Offer{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete offer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("offer with ID %s not found for deletion", id)
	}
	return nil
}

// GetByID retrieves a single offer by its ID.
func (r *GORMOfferRepository) GetByID(id string) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.First(&offer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("offer with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get offer by ID %s: %w", id, err)
	}
	return &offer, nil
}

// GetByStore retrieves all offers posted by a store.
func (r *GORMOfferRepository) GetByStore(storeID string) ([]models.Offer, error) {
	var offers []models.Offer
	if err := r.db.Find(&offers, "store_id = ?", storeID).Error; err != nil {
		return nil, fmt.Errorf("failed to get offers for store %s: %w", storeID, err)
	}
	return offers, nil
}

// GetAll retrieves all offers.
func (r *GORMOfferRepository) GetAll() ([]models.Offer, error) {
	var offers []models.Offer
	if err := r.db.Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all offers: %w", err)
	}
	return offers, nil
}

// RecordUsage increments the offer's usage count once for the given order.
// A usage row keyed on (offer_id, order_id) makes the increment idempotent;
// the count update re-checks the cap so a concurrently exhausted offer
// fails instead of overshooting its limit.
func (r *GORMOfferRepository) RecordUsage(offerID, orderID string) (bool, error) {
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		usage := models.OfferUsage{OfferID: offerID, OrderID: orderID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&usage)
		if res.Error != nil {
			return fmt.Errorf("failed to record offer usage: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Already counted for this order.
			return nil
		}

		res = tx.Model(&models.Offer{}).
			Where("id = ? AND (offer_limit = 0 OR usage_count < offer_limit)", offerID).
			Update("usage_count", gorm.Expr("usage_count + 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to increment offer usage: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return engine.ErrOfferLimitReached
		}
		applied = true
		return nil
	})
	if err != nil {
		if errors.Is(err, engine.ErrOfferLimitReached) {
			return false, engine.ErrOfferLimitReached
		}
		return false, err
	}
	return applied, nil
}

// ReleaseUsage deletes the usage row recorded for the order and returns
// the use to the offer's budget. Deleting and decrementing run in one
// transaction; the decrement only fires when a row was actually removed,
// so releasing an unrecorded order changes nothing.
func (r *GORMOfferRepository) ReleaseUsage(offerID, orderID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.OfferUsage{}, "offer_id = ? AND order_id = ?", offerID, orderID)
		if res.Error != nil {
			return fmt.Errorf("failed to release offer usage: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		res = tx.Model(&models.Offer{}).
			Where("id = ? AND usage_count > 0", offerID).
			Update("usage_count", gorm.Expr("usage_count - 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement offer usage: %w", res.Error)
		}
		return nil
	})
}
