package models

import "gorm.io/gorm"

// CartItem is one line of a student's in-progress cart. A non-empty cart
// only ever references products of a single store; adding an item from a
// different store clears the existing cart first.
type CartItem struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	StudentID string  `json:"studentId" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	StoreID   string  `json:"storeId" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	ProductID string  `json:"productId" gorm:"type:varchar(36)" validate:"required,uuid"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"` // price snapshot at add time
	gorm.Model
}

// AnnotatedCartItem is a cart line enriched by the offer resolver with the
// winning offer, if any. Monetary fields are rounded for display only.
type AnnotatedCartItem struct {
	CartItem
	ProductName     string  `json:"productName"`
	Subtotal        float64 `json:"subtotal"`
	AppliedOfferID  string  `json:"appliedOfferId,omitempty"`
	DiscountAmount  float64 `json:"discountAmount,omitempty"`
	DiscountedPrice float64 `json:"discountedPrice,omitempty"` // per-unit, after discount
}
