package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"grocto/internal/engine"
	"grocto/internal/models"
	"grocto/internal/repositories"
	"grocto/pkg/rabbitmq"
)

// OrderService handles order placement and the status lifecycle. The
// engine does the computation; this service supplies it with data and
// writes the results back under compare-and-swap discipline.
type OrderService struct {
	orderRepo               repositories.OrderRepository
	cartRepo                repositories.CartRepository
	productRepo             repositories.ProductRepository
	storeRepo               repositories.StoreRepository
	offerRepo               repositories.OfferRepository
	mqClient                *rabbitmq.Client
	estimatedDeliveryOffset time.Duration
}

// NewOrderService creates a new OrderService. estimatedDeliveryOffset is
// the configured policy for stamping the estimated delivery time when an
// order is accepted.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, storeRepo repositories.StoreRepository, offerRepo repositories.OfferRepository, mqClient *rabbitmq.Client, estimatedDeliveryOffset time.Duration) *OrderService {
	return &OrderService{
		orderRepo:               orderRepo,
		cartRepo:                cartRepo,
		productRepo:             productRepo,
		storeRepo:               storeRepo,
		offerRepo:               offerRepo,
		mqClient:                mqClient,
		estimatedDeliveryOffset: estimatedDeliveryOffset,
	}
}

// PlaceOrderInput carries the checkout form fields. AppliedOfferID is the
// offer the storefront displayed on the cart screen, if any; placement
// re-validates it so a stale discount fails loudly instead of silently
// changing the total.
type PlaceOrderInput struct {
	DeliveryAddress   string `json:"deliveryAddress" validate:"required,max=200"`
	DeliveryStartTime string `json:"deliveryStartTime" validate:"required,len=5"`
	DeliveryEndTime   string `json:"deliveryEndTime" validate:"required,len=5"`
	AppliedOfferID    string `json:"appliedOfferId" validate:"omitempty"`
}

// PlaceOrder turns the student's cart into an immutable order: the
// requested delivery window is matched against the store's slots to fix
// the fee, offers are re-validated and applied, item snapshots are taken,
// and the cart is cleared. The offer usage count is recorded against the
// new order id before the order is written, so a duplicate submission of
// the same checkout can never count an offer twice; if the order write
// itself fails, the recorded usage is released so the failed checkout
// does not consume the offer's budget.
func (s *OrderService) PlaceOrder(studentID string, in PlaceOrderInput) (*models.Order, error) {
	items, err := s.cartRepo.GetItems(studentID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	store, err := s.storeRepo.GetByID(items[0].StoreID)
	if err != nil {
		return nil, err
	}

	match, err := engine.MatchDeliverySlot(store.DeliverySlots, in.DeliveryStartTime, in.DeliveryEndTime)
	if err != nil {
		return nil, err
	}

	// Offers are re-resolved against fresh rows at placement time; an
	// offer that expired or filled up since the cart was displayed
	// simply no longer wins.
	now := time.Now()
	offers, err := s.offerRepo.GetByStore(store.ID)
	if err != nil {
		return nil, err
	}
	if in.AppliedOfferID != "" {
		expected, err := s.offerRepo.GetByID(in.AppliedOfferID)
		if err != nil {
			return nil, err
		}
		if err := engine.ValidateOffer(expected, items, now); err != nil {
			return nil, err
		}
	}
	annotated, applied := engine.ResolveOffers(offers, items, now)

	orderID := uuid.New().String()
	if applied != nil {
		if _, err := s.offerRepo.RecordUsage(applied.ID, orderID); err != nil {
			return nil, fmt.Errorf("failed to apply offer %s: %w", applied.ID, err)
		}
	}

	summary := engine.ComputeSummary(annotated, store.GSTPercentage, match.Fee).Rounded()

	orderItems := make([]models.OrderItem, len(annotated))
	for i := range annotated {
		name := annotated[i].ProductName
		if name == "" {
			if product, err := s.productRepo.GetByID(annotated[i].ProductID); err == nil {
				name = product.Name
			}
		}
		orderItems[i] = models.OrderItem{
			OrderID:         orderID,
			ProductID:       annotated[i].ProductID,
			ProductName:     name,
			ProductPrice:    annotated[i].UnitPrice,
			Quantity:        annotated[i].Quantity,
			Subtotal:        annotated[i].Subtotal,
			AppliedOfferID:  annotated[i].AppliedOfferID,
			DiscountAmount:  annotated[i].DiscountAmount,
			DiscountedPrice: annotated[i].DiscountedPrice,
		}
	}

	order := &models.Order{
		ID:                orderID,
		StudentID:         studentID,
		StoreID:           store.ID,
		Items:             orderItems,
		DeliveryAddress:   in.DeliveryAddress,
		DeliveryStartTime: in.DeliveryStartTime,
		DeliveryEndTime:   in.DeliveryEndTime,
		DeliverySlotID:    match.SlotID,
		OriginalSubtotal:  summary.OriginalSubtotal.InexactFloat64(),
		TotalDiscount:     summary.TotalDiscount.InexactFloat64(),
		Subtotal:          summary.Subtotal.InexactFloat64(),
		GSTAmount:         summary.GSTAmount.InexactFloat64(),
		DeliveryFee:       summary.DeliveryFee.InexactFloat64(),
		TotalAmount:       summary.Total.InexactFloat64(),
		Status:            models.StatusPending,
		OrderDate:         now,
	}
	if err := s.orderRepo.Create(order); err != nil {
		if applied != nil {
			if relErr := s.offerRepo.ReleaseUsage(applied.ID, orderID); relErr != nil {
				log.Printf("Warning: failed to release usage of offer %s for unwritten order %s: %v", applied.ID, orderID, relErr)
			}
		}
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	if err := s.cartRepo.Clear(studentID); err != nil {
		log.Printf("Warning: failed to clear cart for student %s after order %s: %v", studentID, orderID, err)
	}

	s.publishEvent(rabbitmq.EventOrderCreated, order)
	return order, nil
}

// UpdateStatus advances an order through its lifecycle on behalf of the
// owning seller. The engine validates the transition and computes its
// side effects; the write is a compare-and-swap on the current status, so
// a concurrent duplicate request observes the already-updated status and
// fails with ErrIllegalTransition instead of re-applying side effects.
// On failure the order's current, unchanged status is returned alongside
// the error.
func (s *OrderService) UpdateStatus(sellerID, orderID string, target models.Status, deliveryPersonID string) (*models.Order, error) {
	store, err := s.storeRepo.GetBySellerID(sellerID)
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.StoreID != store.ID {
		return nil, fmt.Errorf("order %s does not belong to store %s", orderID, store.ID)
	}

	result, err := engine.ApplyTransition(order.Status, target, engine.TransitionInput{
		Now:                     time.Now(),
		EstimatedDeliveryOffset: s.estimatedDeliveryOffset,
		Roster:                  store.DeliveryPersons,
		DeliveryPersonID:        deliveryPersonID,
	})
	if err != nil {
		return order, err
	}

	applied, err := s.orderRepo.TransitionStatus(order.ID, order.Status, target, result.EstimatedDeliveryTime, result.DeliveryPersonContact)
	if err != nil {
		return order, err
	}
	if !applied {
		// Lost the race: re-read so the caller sees the status that won.
		current, readErr := s.orderRepo.GetByID(orderID)
		if readErr != nil {
			current = order
		}
		return current, fmt.Errorf("%w: order is already %s", engine.ErrIllegalTransition, current.Status)
	}

	updated, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	s.publishEvent(rabbitmq.EventOrderStatusUpdated, updated)
	return updated, nil
}

// GetStoreOrders returns all orders placed with the seller's store.
func (s *OrderService) GetStoreOrders(sellerID string) ([]models.Order, error) {
	store, err := s.storeRepo.GetBySellerID(sellerID)
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByStore(store.ID)
}

// GetStoreOrder returns a single order of the seller's store.
func (s *OrderService) GetStoreOrder(sellerID, orderID string) (*models.Order, error) {
	store, err := s.storeRepo.GetBySellerID(sellerID)
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.StoreID != store.ID {
		return nil, fmt.Errorf("order %s does not belong to store %s", orderID, store.ID)
	}
	return order, nil
}

// GetStudentOrders returns the student's order history. Students only
// read orders; they never drive transitions.
func (s *OrderService) GetStudentOrders(studentID string) ([]models.Order, error) {
	return s.orderRepo.GetByStudent(studentID)
}

// GetStudentOrder returns a single order placed by the student.
func (s *OrderService) GetStudentOrder(studentID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.StudentID != studentID {
		return nil, fmt.Errorf("order %s was not placed by student %s", orderID, studentID)
	}
	return order, nil
}

// publishEvent sends a fire-and-forget lifecycle event for the
// notification consumer. Publish failures are logged, never surfaced.
func (s *OrderService) publishEvent(kind string, order *models.Order) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}
	event := rabbitmq.OrderEvent{
		Kind:      kind,
		OrderID:   order.ID,
		StudentID: order.StudentID,
		StoreID:   order.StoreID,
		Status:    string(order.Status),
		Total:     order.TotalAmount,
		Timestamp: time.Now(),
	}
	if err := s.mqClient.PublishOrderEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", kind, order.ID, err)
	}
}
