package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"grocto/internal/engine"
	"grocto/internal/models"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, engine.IST)

func percentOffer(id string, amount float64) models.Offer {
	return models.Offer{
		ID:                 id,
		StoreID:            "store-1",
		Title:              "Percent off",
		DiscountType:       models.DiscountPercentage,
		Amount:             amount,
		ApplicableProducts: models.OfferScopeAll,
		StartingDate:       testNow.AddDate(0, 0, -5),
		ClosingDate:        testNow.AddDate(0, 0, 5),
	}
}

func fixedOffer(id string, amount float64) models.Offer {
	o := percentOffer(id, amount)
	o.Title = "Flat off"
	o.DiscountType = models.DiscountFixed
	return o
}

func cartItem(productID string, price float64, qty int) models.CartItem {
	return models.CartItem{
		ID:        "item-" + productID,
		StudentID: "student-1",
		StoreID:   "store-1",
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: price,
	}
}

func TestOfferActive_DateWindow(t *testing.T) {
	o := percentOffer("offer-1", 10)

	assert.NoError(t, engine.OfferActive(&o, testNow))

	// Boundary days count as active.
	assert.NoError(t, engine.OfferActive(&o, o.StartingDate))
	assert.NoError(t, engine.OfferActive(&o, o.ClosingDate))

	assert.ErrorIs(t, engine.OfferActive(&o, o.StartingDate.AddDate(0, 0, -1)), engine.ErrOfferExpired)
	assert.ErrorIs(t, engine.OfferActive(&o, o.ClosingDate.AddDate(0, 0, 1)), engine.ErrOfferExpired)
}

func TestOfferActive_ISTCalendarDate(t *testing.T) {
	// 20:00 UTC on the closing date is already the next calendar day in
	// IST, so the offer has expired even though the UTC instant has not
	// passed midnight.
	o := percentOffer("offer-1", 10)
	o.StartingDate = time.Date(2025, 6, 10, 0, 0, 0, 0, engine.IST)
	o.ClosingDate = time.Date(2025, 6, 14, 0, 0, 0, 0, engine.IST)

	lateUTC := time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, engine.OfferActive(&o, lateUTC), engine.ErrOfferExpired)

	sameDayUTC := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	assert.NoError(t, engine.OfferActive(&o, sameDayUTC))
}

func TestOfferActive_UsageLimit(t *testing.T) {
	o := percentOffer("offer-1", 10)

	o.OfferLimit = 0
	o.UsageCount = 1000
	assert.NoError(t, engine.OfferActive(&o, testNow), "zero limit means unlimited")

	o.OfferLimit = 5
	o.UsageCount = 4
	assert.NoError(t, engine.OfferActive(&o, testNow))

	o.UsageCount = 5
	assert.ErrorIs(t, engine.OfferActive(&o, testNow), engine.ErrOfferLimitReached)
}

func TestResolveOffers_NoActiveOffers(t *testing.T) {
	expired := percentOffer("offer-1", 10)
	expired.ClosingDate = testNow.AddDate(0, 0, -1)

	items := []models.CartItem{cartItem("prod-1", 100, 2)}
	annotated, applied := engine.ResolveOffers([]models.Offer{expired}, items, testNow)

	assert.Nil(t, applied)
	assert.Len(t, annotated, 1)
	assert.Equal(t, 200.0, annotated[0].Subtotal)
	assert.Empty(t, annotated[0].AppliedOfferID)
	assert.Zero(t, annotated[0].DiscountAmount)
}

func TestResolveOffers_PercentageDiscount(t *testing.T) {
	items := []models.CartItem{
		cartItem("prod-1", 100, 2), // 200
		cartItem("prod-2", 50, 2),  // 100
	}
	offers := []models.Offer{percentOffer("offer-1", 10)}

	annotated, applied := engine.ResolveOffers(offers, items, testNow)

	assert.NotNil(t, applied)
	assert.Equal(t, "offer-1", applied.ID)
	assert.Equal(t, 20.0, annotated[0].DiscountAmount)
	assert.Equal(t, 10.0, annotated[1].DiscountAmount)
	assert.Equal(t, 90.0, annotated[0].DiscountedPrice)
	assert.Equal(t, 45.0, annotated[1].DiscountedPrice)
}

func TestResolveOffers_FixedDiscountProportionalSplit(t *testing.T) {
	items := []models.CartItem{
		cartItem("prod-1", 100, 2), // 200, 2/3 of eligible subtotal
		cartItem("prod-2", 100, 1), // 100, 1/3
	}
	offers := []models.Offer{fixedOffer("offer-1", 50)}

	annotated, applied := engine.ResolveOffers(offers, items, testNow)

	assert.NotNil(t, applied)
	assert.InDelta(t, 33.33, annotated[0].DiscountAmount, 0.001)
	assert.InDelta(t, 16.67, annotated[1].DiscountAmount, 0.001)
	// Per-item amounts sum exactly to the total discount.
	assert.InDelta(t, 50.0, annotated[0].DiscountAmount+annotated[1].DiscountAmount, 0.0001)
}

func TestResolveOffers_FixedDiscountCappedAtSubtotal(t *testing.T) {
	items := []models.CartItem{cartItem("prod-1", 10, 1)}
	offers := []models.Offer{fixedOffer("offer-1", 500)}

	annotated, applied := engine.ResolveOffers(offers, items, testNow)

	assert.NotNil(t, applied)
	assert.Equal(t, 10.0, annotated[0].DiscountAmount)
	assert.Equal(t, 0.0, annotated[0].DiscountedPrice, "discounted price never goes below zero")
}

func TestResolveOffers_ScopedToProducts(t *testing.T) {
	items := []models.CartItem{
		cartItem("prod-1", 100, 1),
		cartItem("prod-2", 100, 1),
	}
	o := percentOffer("offer-1", 20)
	o.ApplicableProducts = "prod-2"

	annotated, applied := engine.ResolveOffers([]models.Offer{o}, items, testNow)

	assert.NotNil(t, applied)
	assert.Empty(t, annotated[0].AppliedOfferID)
	assert.Equal(t, "offer-1", annotated[1].AppliedOfferID)
	assert.Equal(t, 20.0, annotated[1].DiscountAmount)
}

func TestResolveOffers_MinPurchaseOnEligibleScope(t *testing.T) {
	items := []models.CartItem{
		cartItem("prod-1", 100, 1), // out of scope
		cartItem("prod-2", 50, 1),  // in scope, below min purchase
	}
	o := percentOffer("offer-1", 20)
	o.ApplicableProducts = "prod-2"
	o.MinPurchase = 100 // eligible subtotal is only 50

	_, applied := engine.ResolveOffers([]models.Offer{o}, items, testNow)
	assert.Nil(t, applied, "min purchase compares against the eligible scope, not the whole cart")
}

func TestResolveOffers_GreatestDiscountWins(t *testing.T) {
	items := []models.CartItem{cartItem("prod-1", 100, 5)} // 500

	// 10% of 500 = 50 beats flat 30.
	offers := []models.Offer{fixedOffer("offer-flat", 30), percentOffer("offer-pct", 10)}
	_, applied := engine.ResolveOffers(offers, items, testNow)
	assert.Equal(t, "offer-pct", applied.ID)

	// Flat 80 beats 10% of 500 = 50.
	offers = []models.Offer{fixedOffer("offer-flat", 80), percentOffer("offer-pct", 10)}
	_, applied = engine.ResolveOffers(offers, items, testNow)
	assert.Equal(t, "offer-flat", applied.ID)
}

func TestResolveOffers_TieBreaks(t *testing.T) {
	items := []models.CartItem{cartItem("prod-1", 100, 5)} // 500

	// Equal discounts: earliest starting date wins.
	older := fixedOffer("offer-b", 50)
	older.StartingDate = testNow.AddDate(0, 0, -10)
	newer := fixedOffer("offer-a", 50)
	_, applied := engine.ResolveOffers([]models.Offer{newer, older}, items, testNow)
	assert.Equal(t, "offer-b", applied.ID)

	// Same starting date too: lowest id wins.
	twin := fixedOffer("offer-a", 50)
	twin.StartingDate = older.StartingDate
	_, applied = engine.ResolveOffers([]models.Offer{older, twin}, items, testNow)
	assert.Equal(t, "offer-a", applied.ID)
}

func TestValidateOffer(t *testing.T) {
	items := []models.CartItem{cartItem("prod-1", 100, 2)}

	expired := percentOffer("offer-1", 10)
	expired.ClosingDate = testNow.AddDate(0, 0, -1)
	assert.ErrorIs(t, engine.ValidateOffer(&expired, items, testNow), engine.ErrOfferExpired)

	exhausted := percentOffer("offer-2", 10)
	exhausted.OfferLimit = 1
	exhausted.UsageCount = 1
	assert.ErrorIs(t, engine.ValidateOffer(&exhausted, items, testNow), engine.ErrOfferLimitReached)

	outOfScope := percentOffer("offer-3", 10)
	outOfScope.ApplicableProducts = "prod-99"
	assert.ErrorIs(t, engine.ValidateOffer(&outOfScope, items, testNow), engine.ErrInvalidOfferScope)

	belowMin := percentOffer("offer-4", 10)
	belowMin.MinPurchase = 1000
	assert.ErrorIs(t, engine.ValidateOffer(&belowMin, items, testNow), engine.ErrInvalidOfferScope)

	valid := percentOffer("offer-5", 10)
	assert.NoError(t, engine.ValidateOffer(&valid, items, testNow))
}
