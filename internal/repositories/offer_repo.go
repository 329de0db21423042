package repositories

import "grocto/internal/models"

// OfferRepository defines the interface for offer data access.
type OfferRepository interface {
	Create(offer *models.Offer) error
	Update(offer *models.Offer) error
	Delete(id string) error
	GetByID(id string) (*models.Offer, error)
	GetByStore(storeID string) ([]models.Offer, error)
	GetAll() ([]models.Offer, error)
	// RecordUsage counts one use of the offer for the given order id.
	// The operation is idempotent per order: resubmitting the same order
	// returns applied=false and leaves the count unchanged. The usage cap
	// is re-checked under the same compare-and-swap; a cap that filled up
	// concurrently surfaces engine.ErrOfferLimitReached.
	RecordUsage(offerID, orderID string) (applied bool, err error)
	// ReleaseUsage undoes RecordUsage for an order that was never written,
	// returning the consumed usage to the offer's budget. Releasing an
	// order id that was never recorded is a no-op.
	ReleaseUsage(offerID, orderID string) error
}
