package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"grocto/internal/engine"
	"grocto/internal/models"
)

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func TestComputeSummary_WorkedExample(t *testing.T) {
	// Store GST 5%, subtotal 500, 10% offer applied, slot fee 30:
	// discount 50, subtotal 450, gst 22.50, total 502.50.
	items := []models.CartItem{cartItem("prod-1", 100, 5)}
	offers := []models.Offer{percentOffer("offer-1", 10)}

	annotated, applied := engine.ResolveOffers(offers, items, testNow)
	assert.NotNil(t, applied)

	summary := engine.ComputeSummary(annotated, 5, decimalFromFloat(30)).Rounded()
	assert.Equal(t, "500", summary.OriginalSubtotal.String())
	assert.Equal(t, "50", summary.TotalDiscount.String())
	assert.Equal(t, "450", summary.Subtotal.String())
	assert.Equal(t, "22.5", summary.GSTAmount.String())
	assert.Equal(t, "30", summary.DeliveryFee.String())
	assert.Equal(t, "502.5", summary.Total.String())
}

func TestComputeSummary_DefaultsContributeZero(t *testing.T) {
	// No offer, no GST, no slot matched yet: total equals subtotal.
	items := []models.CartItem{cartItem("prod-1", 49.99, 2)}
	annotated, _ := engine.ResolveOffers(nil, items, testNow)

	summary := engine.ComputeSummary(annotated, 0, decimal.Zero).Rounded()
	assert.Equal(t, "99.98", summary.OriginalSubtotal.String())
	assert.True(t, summary.TotalDiscount.IsZero())
	assert.True(t, summary.GSTAmount.IsZero())
	assert.True(t, summary.DeliveryFee.IsZero())
	assert.Equal(t, "99.98", summary.Total.String())
}

func TestComputeSummary_Idempotent(t *testing.T) {
	items := []models.CartItem{
		cartItem("prod-1", 33.33, 3),
		cartItem("prod-2", 10.5, 2),
	}
	annotated, _ := engine.ResolveOffers([]models.Offer{fixedOffer("offer-1", 25)}, items, testNow)

	first := engine.ComputeSummary(annotated, 12, decimalFromFloat(15))
	second := engine.ComputeSummary(annotated, 12, decimalFromFloat(15))

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.GSTAmount.Equal(second.GSTAmount))
	assert.True(t, first.TotalDiscount.Equal(second.TotalDiscount))
}

func TestComputeSummary_NoCompoundingRoundingError(t *testing.T) {
	// GST is computed on the full-precision subtotal; rounding happens
	// once at the boundary, so subtotal + gst + fee == total exactly.
	items := []models.CartItem{cartItem("prod-1", 7.77, 7)}
	annotated, _ := engine.ResolveOffers(nil, items, testNow)

	summary := engine.ComputeSummary(annotated, 18, decimalFromFloat(12.5))
	assert.True(t, summary.Total.Equal(summary.Subtotal.Add(summary.GSTAmount).Add(summary.DeliveryFee)))
}
