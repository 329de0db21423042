package engine

import (
	"github.com/shopspring/decimal"

	"grocto/internal/models"
)

// Summary is the order-level monetary breakdown. Values carry full
// precision; round only at the display/persistence boundary via Rounded.
type Summary struct {
	OriginalSubtotal decimal.Decimal
	TotalDiscount    decimal.Decimal
	Subtotal         decimal.Decimal
	GSTAmount        decimal.Decimal
	DeliveryFee      decimal.Decimal
	Total            decimal.Decimal
}

// Rounded returns a copy with every value rounded to 2 decimal places.
func (s Summary) Rounded() Summary {
	return Summary{
		OriginalSubtotal: s.OriginalSubtotal.Round(2),
		TotalDiscount:    s.TotalDiscount.Round(2),
		Subtotal:         s.Subtotal.Round(2),
		GSTAmount:        s.GSTAmount.Round(2),
		DeliveryFee:      s.DeliveryFee.Round(2),
		Total:            s.Total.Round(2),
	}
}

// ComputeSummary produces the monetary summary for a set of annotated cart
// items and the store's GST percentage. The delivery fee is zero until a
// slot has been matched; pass the matched slot's fee afterwards. Never
// fails on valid input and mutates nothing, so repeated calls on the same
// items yield identical output.
func ComputeSummary(items []models.AnnotatedCartItem, gstPercentage float64, deliveryFee decimal.Decimal) Summary {
	original := decimal.Zero
	discount := decimal.Zero
	for i := range items {
		original = original.Add(itemSubtotal(&items[i].CartItem))
		discount = discount.Add(decimal.NewFromFloat(items[i].DiscountAmount))
	}
	subtotal := original.Sub(discount)
	gst := decimal.Zero
	if gstPercentage > 0 {
		gst = subtotal.Mul(decimal.NewFromFloat(gstPercentage)).Div(hundred)
	}
	return Summary{
		OriginalSubtotal: original,
		TotalDiscount:    discount,
		Subtotal:         subtotal,
		GSTAmount:        gst,
		DeliveryFee:      deliveryFee,
		Total:            subtotal.Add(gst).Add(deliveryFee),
	}
}
