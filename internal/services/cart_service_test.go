package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"grocto/internal/models"
	"grocto/internal/repositories"
	"grocto/internal/services"
)

type cartServiceFixture struct {
	service     *services.CartService
	cartRepo    *repositories.MockCartRepository
	productRepo *repositories.MockProductRepository
	offerRepo   *repositories.MockOfferRepository
	storeA      *models.Store
	storeB      *models.Store
	rice        *models.Product
	milk        *models.Product
	bread       *models.Product
}

// newCartServiceFixture wires a CartService against two stores: store A
// sells rice (100.00) and milk (30.00), store B sells bread (40.00).
func newCartServiceFixture(t *testing.T) *cartServiceFixture {
	t.Helper()

	cartRepo := repositories.NewMockCartRepository()
	productRepo := repositories.NewMockProductRepository()
	storeRepo := repositories.NewMockStoreRepository()
	offerRepo := repositories.NewMockOfferRepository()

	storeA := &models.Store{SellerID: "seller-a", Name: "Campus Mart", Address: "Block A", Phone: "111", GSTPercentage: 5}
	storeB := &models.Store{SellerID: "seller-b", Name: "Hostel Store", Address: "Block B", Phone: "222", GSTPercentage: 12}
	assert.NoError(t, storeRepo.Create(storeA))
	assert.NoError(t, storeRepo.Create(storeB))

	rice := &models.Product{StoreID: storeA.ID, Name: "Basmati Rice 5kg", Price: 100.0, Stock: 50}
	milk := &models.Product{StoreID: storeA.ID, Name: "Milk 1L", Price: 30.0, Stock: 20}
	bread := &models.Product{StoreID: storeB.ID, Name: "Brown Bread", Price: 40.0, Stock: 10}
	for _, p := range []*models.Product{rice, milk, bread} {
		assert.NoError(t, productRepo.Create(p))
	}

	return &cartServiceFixture{
		service:     services.NewCartService(cartRepo, productRepo, storeRepo, offerRepo),
		cartRepo:    cartRepo,
		productRepo: productRepo,
		offerRepo:   offerRepo,
		storeA:      storeA,
		storeB:      storeB,
		rice:        rice,
		milk:        milk,
		bread:       bread,
	}
}

func TestCartService_AddItem(t *testing.T) {
	f := newCartServiceFixture(t)

	assert.NoError(t, f.service.AddItem("student-1", f.rice.ID, 2, false))
	assert.NoError(t, f.service.AddItem("student-1", f.milk.ID, 1, false))

	items, err := f.cartRepo.GetItems("student-1")
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	// Adding the same product again merges into the existing line.
	assert.NoError(t, f.service.AddItem("student-1", f.rice.ID, 3, false))
	line, err := f.cartRepo.FindByProduct("student-1", f.rice.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, line) {
		assert.Equal(t, 5, line.Quantity)
		assert.Equal(t, 100.0, line.UnitPrice)
	}
}

func TestCartService_AddItem_RejectsZeroQuantity(t *testing.T) {
	f := newCartServiceFixture(t)

	err := f.service.AddItem("student-1", f.rice.ID, 0, false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestCartService_SingleStoreBinding(t *testing.T) {
	f := newCartServiceFixture(t)

	assert.NoError(t, f.service.AddItem("student-1", f.rice.ID, 1, false))

	// A product from another store is refused until the student opts in
	// to clearing the cart.
	err := f.service.AddItem("student-1", f.bread.ID, 1, false)
	assert.ErrorIs(t, err, services.ErrCartStoreConflict)

	storeID, err := f.cartRepo.GetStoreID("student-1")
	assert.NoError(t, err)
	assert.Equal(t, f.storeA.ID, storeID)

	// With clearExisting the cart rebinds to the new store.
	assert.NoError(t, f.service.AddItem("student-1", f.bread.ID, 1, true))
	items, err := f.cartRepo.GetItems("student-1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, f.bread.ID, items[0].ProductID)
	assert.Equal(t, f.storeB.ID, items[0].StoreID)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	f := newCartServiceFixture(t)

	assert.NoError(t, f.service.AddItem("student-1", f.rice.ID, 2, false))
	line, err := f.cartRepo.FindByProduct("student-1", f.rice.ID)
	assert.NoError(t, err)

	assert.NoError(t, f.service.UpdateQuantity("student-1", line.ID, 7))
	line, err = f.cartRepo.GetItem("student-1", line.ID)
	assert.NoError(t, err)
	assert.Equal(t, 7, line.Quantity)

	// Quantity zero removes the line entirely.
	assert.NoError(t, f.service.UpdateQuantity("student-1", line.ID, 0))
	items, err := f.cartRepo.GetItems("student-1")
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartService_ViewCart(t *testing.T) {
	f := newCartServiceFixture(t)

	assert.NoError(t, f.service.AddItem("student-1", f.rice.ID, 2, false))
	assert.NoError(t, f.service.AddItem("student-1", f.milk.ID, 1, false))

	view, err := f.service.ViewCart("student-1")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, f.storeA.ID, view.Store.ID)
	assert.Nil(t, view.AppliedOffer)

	// 230 + 5% GST, no delivery fee before checkout.
	assert.Equal(t, 230.0, view.Summary.OriginalSubtotal)
	assert.Equal(t, 0.0, view.Summary.TotalDiscount)
	assert.Equal(t, 11.5, view.Summary.GSTAmount)
	assert.Equal(t, 0.0, view.Summary.DeliveryFee)
	assert.Equal(t, 241.5, view.Summary.Total)
}

func TestCartService_ViewCart_WithOffer(t *testing.T) {
	f := newCartServiceFixture(t)

	assert.NoError(t, f.service.AddItem("student-1", f.rice.ID, 2, false))

	now := time.Now()
	offer := &models.Offer{
		StoreID:            f.storeA.ID,
		Title:              "Rice Week",
		DiscountType:       models.DiscountFixed,
		Amount:             25,
		ApplicableProducts: f.rice.ID,
		StartingDate:       now.Add(-24 * time.Hour),
		ClosingDate:        now.Add(24 * time.Hour),
	}
	assert.NoError(t, f.offerRepo.Create(offer))

	view, err := f.service.ViewCart("student-1")
	assert.NoError(t, err)
	if assert.NotNil(t, view.AppliedOffer) {
		assert.Equal(t, offer.ID, view.AppliedOffer.ID)
	}

	// 200 - 25 = 175, + 5% GST (8.75).
	assert.Equal(t, 200.0, view.Summary.OriginalSubtotal)
	assert.Equal(t, 25.0, view.Summary.TotalDiscount)
	assert.Equal(t, 175.0, view.Summary.Subtotal)
	assert.Equal(t, 8.75, view.Summary.GSTAmount)
	assert.Equal(t, 183.75, view.Summary.Total)
	assert.Equal(t, "Basmati Rice 5kg", view.Items[0].ProductName)
}

func TestCartService_ViewCart_Empty(t *testing.T) {
	f := newCartServiceFixture(t)

	view, err := f.service.ViewCart("student-1")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Nil(t, view.Store)
	assert.Equal(t, 0.0, view.Summary.Total)
}
