package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DiscountKind tags the two discount variants an offer can carry.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// OfferScopeAll is the sentinel value of ApplicableProducts meaning the
// offer covers every product of the store.
const OfferScopeAll = "all"

// Offer is a seller-defined promotional discount rule. An offer is active
// while the current IST calendar date lies inside [StartingDate, ClosingDate]
// and its usage cap is not exhausted. Expired or exhausted offers stay on
// record until the seller deletes them explicitly.
type Offer struct {
	ID          string       `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	StoreID     string       `json:"storeId" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	Title       string       `json:"title" validate:"required,min=3,max=100"`
	Description string       `json:"description" validate:"omitempty,max=500"`
	// Amount is a percentage (0..100] for DiscountPercentage or a flat
	// currency amount for DiscountFixed.
	DiscountType DiscountKind `json:"discountType" gorm:"type:varchar(20)" validate:"required,oneof=percentage fixed"`
	Amount       float64      `json:"amount" validate:"required,gt=0"`
	MinPurchase  float64      `json:"minPurchase" validate:"gte=0"`
	// ApplicableProducts is "all" or a comma-separated list of product ids.
	ApplicableProducts string    `json:"applicableProducts" gorm:"type:text"`
	OfferLimit         int       `json:"offerLimit" validate:"gte=0"` // 0 = unlimited
	UsageCount         int       `json:"usageCount" validate:"gte=0"`
	StartingDate       time.Time `json:"startingDate" validate:"required"`
	ClosingDate        time.Time `json:"closingDate" validate:"required"`
	gorm.Model
}

// OfferUsage records that an offer was applied to a placed order. The
// composite key makes the usage increment idempotent: resubmitting the same
// order id cannot count the offer twice.
type OfferUsage struct {
	OfferID   string `gorm:"primaryKey;type:varchar(36)"`
	OrderID   string `gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time
}

// AppliesToAll reports whether the offer covers the whole store catalog.
func (o *Offer) AppliesToAll() bool {
	return o.ApplicableProducts == "" || o.ApplicableProducts == OfferScopeAll
}

// ProductSet returns the explicit product-id scope of the offer. The result
// is empty when the offer applies to all products.
func (o *Offer) ProductSet() map[string]bool {
	set := make(map[string]bool)
	if o.AppliesToAll() {
		return set
	}
	for _, id := range strings.Split(o.ApplicableProducts, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
