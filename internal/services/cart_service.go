package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"grocto/internal/engine"
	"grocto/internal/models"
	"grocto/internal/repositories"
)

// ErrCartStoreConflict is returned when an item from a different store is
// added without explicitly clearing the existing cart first.
var ErrCartStoreConflict = errors.New("cart already contains items from another store")

// CartService handles business logic for the student's cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	storeRepo   repositories.StoreRepository
	offerRepo   repositories.OfferRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, storeRepo repositories.StoreRepository, offerRepo repositories.OfferRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		offerRepo:   offerRepo,
	}
}

// MoneySummary is the order-level monetary breakdown rounded for display.
type MoneySummary struct {
	OriginalSubtotal float64 `json:"originalSubtotal"`
	TotalDiscount    float64 `json:"totalDiscount"`
	Subtotal         float64 `json:"subtotal"`
	GSTAmount        float64 `json:"gstAmount"`
	DeliveryFee      float64 `json:"deliveryFee"`
	Total            float64 `json:"total"`
}

func toMoneySummary(s engine.Summary) MoneySummary {
	r := s.Rounded()
	return MoneySummary{
		OriginalSubtotal: r.OriginalSubtotal.InexactFloat64(),
		TotalDiscount:    r.TotalDiscount.InexactFloat64(),
		Subtotal:         r.Subtotal.InexactFloat64(),
		GSTAmount:        r.GSTAmount.InexactFloat64(),
		DeliveryFee:      r.DeliveryFee.InexactFloat64(),
		Total:            r.Total.InexactFloat64(),
	}
}

// CartView is the student-facing cart projection: annotated items, the
// bound store with its delivery slots, and the monetary summary. The
// delivery fee is zero until checkout matches a slot.
type CartView struct {
	Items         []models.AnnotatedCartItem `json:"items"`
	Store         *models.Store              `json:"store,omitempty"`
	DeliverySlots []models.DeliverySlot      `json:"deliverySlots,omitempty"`
	AppliedOffer  *models.Offer              `json:"appliedOffer,omitempty"`
	Summary       MoneySummary               `json:"summary"`
}

// AddItem adds a product to the student's cart with a unit-price snapshot.
// A non-empty cart is bound to one store: adding from a different store
// fails with ErrCartStoreConflict unless clearExisting is set, in which
// case the old cart is dropped and the cart rebinds to the new store.
func (s *CartService) AddItem(studentID, productID string, quantity int, clearExisting bool) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}

	boundStore, err := s.cartRepo.GetStoreID(studentID)
	if err != nil {
		return err
	}
	if boundStore != "" && boundStore != product.StoreID {
		if !clearExisting {
			return ErrCartStoreConflict
		}
		if err := s.cartRepo.Clear(studentID); err != nil {
			return err
		}
	}

	existing, err := s.cartRepo.FindByProduct(studentID, productID)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Quantity += quantity
		existing.UnitPrice = product.Price
		return s.cartRepo.Save(existing)
	}
	item := &models.CartItem{
		StudentID: studentID,
		StoreID:   product.StoreID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}
	return s.cartRepo.Save(item)
}

// UpdateQuantity sets a cart line's quantity; zero or less removes the
// line, matching the storefront's behavior.
func (s *CartService) UpdateQuantity(studentID, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.cartRepo.RemoveItem(studentID, itemID)
	}
	item, err := s.cartRepo.GetItem(studentID, itemID)
	if err != nil {
		return err
	}
	item.Quantity = quantity
	return s.cartRepo.Save(item)
}

// RemoveItem removes one line from the student's cart.
func (s *CartService) RemoveItem(studentID, itemID string) error {
	return s.cartRepo.RemoveItem(studentID, itemID)
}

// Clear empties the student's cart, unbinding it from its store.
func (s *CartService) Clear(studentID string) error {
	return s.cartRepo.Clear(studentID)
}

// ViewCart resolves offers against the cart and produces the summary. The
// delivery fee contributes zero here; it is fixed at checkout when a slot
// is matched.
func (s *CartService) ViewCart(studentID string) (*CartView, error) {
	items, err := s.cartRepo.GetItems(studentID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &CartView{Items: []models.AnnotatedCartItem{}}, nil
	}

	store, err := s.storeRepo.GetByID(items[0].StoreID)
	if err != nil {
		return nil, err
	}
	offers, err := s.offerRepo.GetByStore(store.ID)
	if err != nil {
		return nil, err
	}

	annotated, applied := engine.ResolveOffers(offers, items, time.Now())
	s.fillProductNames(annotated)
	summary := engine.ComputeSummary(annotated, store.GSTPercentage, decimal.Zero)

	return &CartView{
		Items:         annotated,
		Store:         store,
		DeliverySlots: store.DeliverySlots,
		AppliedOffer:  applied,
		Summary:       toMoneySummary(summary),
	}, nil
}

func (s *CartService) fillProductNames(items []models.AnnotatedCartItem) {
	for i := range items {
		if product, err := s.productRepo.GetByID(items[i].ProductID); err == nil {
			items[i].ProductName = product.Name
		}
	}
}
