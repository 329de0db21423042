package models

import "gorm.io/gorm"

// Store represents a seller's grocery store. Each store is owned by exactly
// one seller account and only that seller may mutate it.
type Store struct {
	ID              string           `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	SellerID        string           `json:"sellerId" gorm:"uniqueIndex;type:varchar(36)" validate:"required,uuid"`
	Name            string           `json:"name" validate:"required,min=2,max=100"`
	Address         string           `json:"address" validate:"required,max=200"`
	Phone           string           `json:"phone" validate:"required,max=20"`
	WorkingDays     string           `json:"workingDays" validate:"omitempty,max=100"` // e.g. "Mon,Tue,Wed,Thu,Fri"
	OpeningTime     string           `json:"openingTime" validate:"omitempty,len=5"`   // "09:00"
	ClosingTime     string           `json:"closingTime" validate:"omitempty,len=5"`   // "18:00"
	GSTPercentage   float64          `json:"gstPercentage" validate:"gte=0,lte=100"`
	DeliveryPersons []DeliveryPerson `json:"deliveryPersons" gorm:"foreignKey:StoreID"`
	DeliverySlots   []DeliverySlot   `json:"deliverySlots,omitempty" gorm:"foreignKey:StoreID"`
	gorm.Model
}

// DeliveryPerson is one entry of a store's delivery roster.
type DeliveryPerson struct {
	ID      string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	StoreID string `json:"storeId" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Phone   string `json:"phone" validate:"required,max=20"`
	gorm.Model
}

// DeliverySlot is a seller-defined delivery time window with an associated
// fee. Times are minute-resolution "HH:MM" strings on the same calendar day.
// Invariant: StartTime < EndTime.
type DeliverySlot struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	StoreID     string  `json:"storeId" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	StartTime   string  `json:"startTime" validate:"required,len=5"` // "09:00"
	EndTime     string  `json:"endTime" validate:"required,len=5"`   // "12:00"
	DeliveryFee float64 `json:"deliveryFee" validate:"gte=0"`
	gorm.Model
}
