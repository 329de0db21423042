package models

import (
	"time"

	"gorm.io/gorm"
)

// Status is the lifecycle stage of an order. Transitions are governed by
// the engine state machine; rejected and delivered are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusRejected   Status = "rejected"
	StatusPackaging  Status = "packaging"
	StatusDelivering Status = "delivering"
	StatusDelivered  Status = "delivered"
)

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusDelivered
}

// OrderItem is an immutable snapshot of a cart line taken at placement
// time. Later price changes to the live product never affect it.
type OrderItem struct {
	ID              string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID         string  `json:"orderId" gorm:"index;type:varchar(36)"`
	ProductID       string  `json:"productId" gorm:"type:varchar(36)"`
	ProductName     string  `json:"productName"`
	ProductPrice    float64 `json:"productPrice"`
	Quantity        int     `json:"quantity"`
	Subtotal        float64 `json:"subtotal"`
	AppliedOfferID  string  `json:"appliedOfferId,omitempty" gorm:"type:varchar(36)"`
	DiscountAmount  float64 `json:"discountAmount,omitempty"`
	DiscountedPrice float64 `json:"discountedPrice,omitempty"`
}

// Order is the immutable snapshot of a cart plus fulfillment metadata.
// Students may only read it; the owning seller drives status changes.
type Order struct {
	ID                    string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	StudentID             string      `json:"studentId" gorm:"index;type:varchar(36)"`
	StoreID               string      `json:"storeId" gorm:"index;type:varchar(36)"`
	Items                 []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	DeliveryAddress       string      `json:"deliveryAddress"`
	DeliveryStartTime     string      `json:"deliveryStartTime"` // "09:00"
	DeliveryEndTime       string      `json:"deliveryEndTime"`   // "10:30"
	DeliverySlotID        string      `json:"deliverySlotId" gorm:"type:varchar(36)"`
	OriginalSubtotal      float64     `json:"originalSubtotal"`
	TotalDiscount         float64     `json:"totalDiscount"`
	Subtotal              float64     `json:"subtotal"`
	GSTAmount             float64     `json:"gstAmount"`
	DeliveryFee           float64     `json:"deliveryFee"`
	TotalAmount           float64     `json:"totalAmount"`
	Status                Status      `json:"status" gorm:"type:varchar(20);index"`
	EstimatedDeliveryTime *time.Time  `json:"estimatedDeliveryTime,omitempty"`
	// DeliveryPersonContact is a "Name (Phone)" snapshot taken when the
	// order goes out for delivery; later roster edits do not change it.
	DeliveryPersonContact string    `json:"deliveryPersonContact,omitempty"`
	OrderDate             time.Time `json:"orderDate"`
	gorm.Model            `json:"-"`
}
