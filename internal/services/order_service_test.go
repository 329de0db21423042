package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"grocto/internal/engine"
	"grocto/internal/models"
	"grocto/internal/repositories"
	"grocto/internal/services"
)

type orderServiceFixture struct {
	service     *services.OrderService
	orderRepo   *repositories.MockOrderRepository
	cartRepo    *repositories.MockCartRepository
	productRepo *repositories.MockProductRepository
	offerRepo   *repositories.MockOfferRepository
	storeRepo   *repositories.MockStoreRepository
	store       *models.Store
	product     *models.Product
}

// newOrderServiceFixture wires an OrderService against the in-memory
// repositories with one store (GST 5%, a 09:00-12:00 slot with fee 20 and
// a one-person roster) and one 100.00 product already in stock.
func newOrderServiceFixture(t *testing.T) *orderServiceFixture {
	t.Helper()

	orderRepo := repositories.NewMockOrderRepository()
	cartRepo := repositories.NewMockCartRepository()
	productRepo := repositories.NewMockProductRepository()
	storeRepo := repositories.NewMockStoreRepository()
	offerRepo := repositories.NewMockOfferRepository()

	store := &models.Store{SellerID: "seller-1", Name: "Campus Mart", Address: "Block A", Phone: "111", GSTPercentage: 5}
	assert.NoError(t, storeRepo.Create(store))
	assert.NoError(t, storeRepo.CreateSlot(&models.DeliverySlot{StoreID: store.ID, StartTime: "09:00", EndTime: "12:00", DeliveryFee: 20}))
	assert.NoError(t, storeRepo.AddDeliveryPerson(&models.DeliveryPerson{StoreID: store.ID, Name: "Ravi", Phone: "98765"}))

	product := &models.Product{StoreID: store.ID, Name: "Basmati Rice 5kg", Price: 100.0, Stock: 50}
	assert.NoError(t, productRepo.Create(product))

	service := services.NewOrderService(orderRepo, cartRepo, productRepo, storeRepo, offerRepo, nil, 2*time.Hour)
	return &orderServiceFixture{
		service:     service,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		offerRepo:   offerRepo,
		storeRepo:   storeRepo,
		store:       store,
		product:     product,
	}
}

// flakyOrderRepo fails a configured number of Create calls before
// delegating to the in-memory repository.
type flakyOrderRepo struct {
	*repositories.MockOrderRepository
	failures int
}

func (r *flakyOrderRepo) Create(order *models.Order) error {
	if r.failures > 0 {
		r.failures--
		return fmt.Errorf("order storage unavailable")
	}
	return r.MockOrderRepository.Create(order)
}

func (f *orderServiceFixture) fillCart(t *testing.T, quantity int) {
	t.Helper()
	err := f.cartRepo.Save(&models.CartItem{
		StudentID: "student-1",
		StoreID:   f.store.ID,
		ProductID: f.product.ID,
		Quantity:  quantity,
		UnitPrice: f.product.Price,
	})
	assert.NoError(t, err)
}

func TestOrderService_PlaceOrder(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.fillCart(t, 5)

	order, err := f.service.PlaceOrder("student-1", services.PlaceOrderInput{
		DeliveryAddress:   "Hostel 4, Room 212",
		DeliveryStartTime: "09:00",
		DeliveryEndTime:   "10:30",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, f.store.ID, order.StoreID)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "Basmati Rice 5kg", order.Items[0].ProductName)
	assert.Equal(t, 100.0, order.Items[0].ProductPrice)

	// 500 + 5% GST + fee 20 from the matched 09:00-12:00 slot.
	assert.Equal(t, 500.0, order.OriginalSubtotal)
	assert.Equal(t, 25.0, order.GSTAmount)
	assert.Equal(t, 20.0, order.DeliveryFee)
	assert.Equal(t, 545.0, order.TotalAmount)

	// The cart is consumed by a successful checkout.
	items, err := f.cartRepo.GetItems("student-1")
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	f := newOrderServiceFixture(t)

	order, err := f.service.PlaceOrder("student-1", services.PlaceOrderInput{
		DeliveryAddress:   "Hostel 4",
		DeliveryStartTime: "09:00",
		DeliveryEndTime:   "10:30",
	})
	assert.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "empty")
}

func TestOrderService_PlaceOrder_WindowErrors(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.fillCart(t, 1)

	// Shorter than the minimum window.
	_, err := f.service.PlaceOrder("student-1", services.PlaceOrderInput{
		DeliveryAddress:   "Hostel 4",
		DeliveryStartTime: "09:00",
		DeliveryEndTime:   "09:30",
	})
	assert.ErrorIs(t, err, engine.ErrInvalidWindow)

	// Valid window but outside every slot.
	_, err = f.service.PlaceOrder("student-1", services.PlaceOrderInput{
		DeliveryAddress:   "Hostel 4",
		DeliveryStartTime: "14:00",
		DeliveryEndTime:   "16:00",
	})
	assert.ErrorIs(t, err, engine.ErrNoMatchingSlot)

	// Failed checkouts leave the cart intact.
	items, err := f.cartRepo.GetItems("student-1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestOrderService_PlaceOrder_AppliesBestOffer(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.fillCart(t, 5)

	now := time.Now()
	offer := &models.Offer{
		StoreID:            f.store.ID,
		Title:              "Monsoon Sale",
		DiscountType:       models.DiscountPercentage,
		Amount:             10,
		ApplicableProducts: models.OfferScopeAll,
		StartingDate:       now.Add(-24 * time.Hour),
		ClosingDate:        now.Add(24 * time.Hour),
	}
	assert.NoError(t, f.offerRepo.Create(offer))

	order, err := f.service.PlaceOrder("student-1", services.PlaceOrderInput{
		DeliveryAddress:   "Hostel 4",
		DeliveryStartTime: "09:00",
		DeliveryEndTime:   "10:30",
	})
	assert.NoError(t, err)

	// 500 - 10% = 450, + 5% GST (22.50) + fee 20.
	assert.Equal(t, 500.0, order.OriginalSubtotal)
	assert.Equal(t, 50.0, order.TotalDiscount)
	assert.Equal(t, 450.0, order.Subtotal)
	assert.Equal(t, 22.5, order.GSTAmount)
	assert.Equal(t, 492.5, order.TotalAmount)
	assert.Equal(t, offer.ID, order.Items[0].AppliedOfferID)

	stored, err := f.offerRepo.GetByID(offer.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, stored.UsageCount)
}

func TestOrderService_PlaceOrder_SkipsExhaustedOffer(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.fillCart(t, 5)

	now := time.Now()
	offer := &models.Offer{
		StoreID:            f.store.ID,
		Title:              "First 1 Only",
		DiscountType:       models.DiscountPercentage,
		Amount:             10,
		ApplicableProducts: models.OfferScopeAll,
		OfferLimit:         1,
		UsageCount:         1,
		StartingDate:       now.Add(-24 * time.Hour),
		ClosingDate:        now.Add(24 * time.Hour),
	}
	assert.NoError(t, f.offerRepo.Create(offer))

	order, err := f.service.PlaceOrder("student-1", services.PlaceOrderInput{
		DeliveryAddress:   "Hostel 4",
		DeliveryStartTime: "09:00",
		DeliveryEndTime:   "10:30",
	})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, order.TotalDiscount)
	assert.Empty(t, order.Items[0].AppliedOfferID)

	stored, err := f.offerRepo.GetByID(offer.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, stored.UsageCount)
}

func TestOrderService_PlaceOrder_RevalidatesDisplayedOffer(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.fillCart(t, 5)

	now := time.Now()
	stale := &models.Offer{
		StoreID:            f.store.ID,
		Title:              "Last Week's Sale",
		DiscountType:       models.DiscountPercentage,
		Amount:             10,
		ApplicableProducts: models.OfferScopeAll,
		StartingDate:       now.Add(-10 * 24 * time.Hour),
		ClosingDate:        now.Add(-3 * 24 * time.Hour),
	}
	assert.NoError(t, f.offerRepo.Create(stale))

	// The cart screen showed the offer before it expired; checkout must
	// refuse rather than silently charge more.
	_, err := f.service.PlaceOrder("student-1", services.PlaceOrderInput{
		DeliveryAddress:   "Hostel 4",
		DeliveryStartTime: "09:00",
		DeliveryEndTime:   "10:30",
		AppliedOfferID:    stale.ID,
	})
	assert.ErrorIs(t, err, engine.ErrOfferExpired)

	items, err := f.cartRepo.GetItems("student-1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestOrderService_PlaceOrder_FailedWriteReleasesOfferUsage(t *testing.T) {
	f := newOrderServiceFixture(t)
	f.fillCart(t, 5)

	now := time.Now()
	offer := &models.Offer{
		StoreID:            f.store.ID,
		Title:              "Single Use",
		DiscountType:       models.DiscountPercentage,
		Amount:             10,
		ApplicableProducts: models.OfferScopeAll,
		OfferLimit:         1,
		StartingDate:       now.Add(-24 * time.Hour),
		ClosingDate:        now.Add(24 * time.Hour),
	}
	assert.NoError(t, f.offerRepo.Create(offer))

	flaky := &flakyOrderRepo{MockOrderRepository: f.orderRepo, failures: 1}
	service := services.NewOrderService(flaky, f.cartRepo, f.productRepo, f.storeRepo, f.offerRepo, nil, 2*time.Hour)

	input := services.PlaceOrderInput{
		DeliveryAddress:   "Hostel 4",
		DeliveryStartTime: "09:00",
		DeliveryEndTime:   "10:30",
	}
	_, err := service.PlaceOrder("student-1", input)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create order")

	// The failed write returns the use to the offer's budget.
	stored, err := f.offerRepo.GetByID(offer.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, stored.UsageCount)

	// The cart survives, so the retry still gets the single-use offer.
	order, err := service.PlaceOrder("student-1", input)
	assert.NoError(t, err)
	assert.Equal(t, 50.0, order.TotalDiscount)
	assert.Equal(t, offer.ID, order.Items[0].AppliedOfferID)

	stored, err = f.offerRepo.GetByID(offer.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, stored.UsageCount)
}

func placeTestOrder(t *testing.T, f *orderServiceFixture) *models.Order {
	t.Helper()
	f.fillCart(t, 2)
	order, err := f.service.PlaceOrder("student-1", services.PlaceOrderInput{
		DeliveryAddress:   "Hostel 4",
		DeliveryStartTime: "09:00",
		DeliveryEndTime:   "10:30",
	})
	assert.NoError(t, err)
	return order
}

func TestOrderService_UpdateStatus_FullLifecycle(t *testing.T) {
	f := newOrderServiceFixture(t)
	order := placeTestOrder(t, f)

	accepted, err := f.service.UpdateStatus("seller-1", order.ID, models.StatusAccepted, "")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, accepted.Status)
	if assert.NotNil(t, accepted.EstimatedDeliveryTime) {
		assert.WithinDuration(t, time.Now().Add(2*time.Hour), *accepted.EstimatedDeliveryTime, 5*time.Second)
	}

	packaging, err := f.service.UpdateStatus("seller-1", order.ID, models.StatusPackaging, "")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPackaging, packaging.Status)

	delivering, err := f.service.UpdateStatus("seller-1", order.ID, models.StatusDelivering, "")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDelivering, delivering.Status)
	assert.Equal(t, "Ravi (98765)", delivering.DeliveryPersonContact)

	delivered, err := f.service.UpdateStatus("seller-1", order.ID, models.StatusDelivered, "")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.Status)
	// The contact snapshot survives the final transition.
	assert.Equal(t, "Ravi (98765)", delivered.DeliveryPersonContact)
}

func TestOrderService_UpdateStatus_IllegalTransition(t *testing.T) {
	f := newOrderServiceFixture(t)
	order := placeTestOrder(t, f)

	current, err := f.service.UpdateStatus("seller-1", order.ID, models.StatusDelivering, "")
	assert.ErrorIs(t, err, engine.ErrIllegalTransition)
	assert.Equal(t, models.StatusPending, current.Status)
}

func TestOrderService_UpdateStatus_DuplicateRequest(t *testing.T) {
	f := newOrderServiceFixture(t)
	order := placeTestOrder(t, f)

	_, err := f.service.UpdateStatus("seller-1", order.ID, models.StatusAccepted, "")
	assert.NoError(t, err)

	// The same accept submitted again loses the compare-and-swap and
	// reports the status that already won.
	current, err := f.service.UpdateStatus("seller-1", order.ID, models.StatusAccepted, "")
	assert.ErrorIs(t, err, engine.ErrIllegalTransition)
	assert.Equal(t, models.StatusAccepted, current.Status)
}

func TestOrderService_UpdateStatus_EmptyRoster(t *testing.T) {
	f := newOrderServiceFixture(t)
	order := placeTestOrder(t, f)

	roster, err := f.storeRepo.GetRoster(f.store.ID)
	assert.NoError(t, err)
	for _, person := range roster {
		assert.NoError(t, f.storeRepo.RemoveDeliveryPerson(person.ID))
	}

	_, err = f.service.UpdateStatus("seller-1", order.ID, models.StatusAccepted, "")
	assert.NoError(t, err)
	_, err = f.service.UpdateStatus("seller-1", order.ID, models.StatusPackaging, "")
	assert.NoError(t, err)

	current, err := f.service.UpdateStatus("seller-1", order.ID, models.StatusDelivering, "")
	assert.ErrorIs(t, err, engine.ErrNoDeliveryPersonAvailable)
	assert.Equal(t, models.StatusPackaging, current.Status)
}

func TestOrderService_UpdateStatus_WrongSeller(t *testing.T) {
	f := newOrderServiceFixture(t)
	order := placeTestOrder(t, f)

	other := &models.Store{SellerID: "seller-2", Name: "Other Mart", Address: "Block B", Phone: "222"}
	assert.NoError(t, f.storeRepo.Create(other))

	_, err := f.service.UpdateStatus("seller-2", order.ID, models.StatusAccepted, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong")

	unchanged, err := f.orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, unchanged.Status)
}

func TestOrderService_StudentOrderAccess(t *testing.T) {
	f := newOrderServiceFixture(t)
	order := placeTestOrder(t, f)

	mine, err := f.service.GetStudentOrder("student-1", order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, mine.ID)

	_, err = f.service.GetStudentOrder("student-2", order.ID)
	assert.Error(t, err)

	history, err := f.service.GetStudentOrders("student-1")
	assert.NoError(t, err)
	assert.Len(t, history, 1)
}
