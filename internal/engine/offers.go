package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"grocto/internal/models"
)

var hundred = decimal.NewFromInt(100)

// OfferActive checks the offer's lifecycle constraints at the given
// instant: the current IST calendar date must fall inside the offer's date
// window and the usage cap, if any, must not be exhausted.
func OfferActive(o *models.Offer, now time.Time) error {
	today := DateIST(now)
	if today.Before(DateIST(o.StartingDate)) || today.After(DateIST(o.ClosingDate)) {
		return ErrOfferExpired
	}
	if o.OfferLimit > 0 && o.UsageCount >= o.OfferLimit {
		return ErrOfferLimitReached
	}
	return nil
}

// offerEval is the outcome of evaluating one offer against a cart.
type offerEval struct {
	eligible         []int // indices into the cart items
	eligibleSubtotal decimal.Decimal
	discount         decimal.Decimal
}

func itemSubtotal(item *models.CartItem) decimal.Decimal {
	return decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// evaluateOffer computes the absolute discount the offer would yield on the
// cart's eligible scope. It does not check the offer's date window or usage
// cap; that is OfferActive's job.
func evaluateOffer(o *models.Offer, items []models.CartItem) (*offerEval, error) {
	all := o.AppliesToAll()
	scope := o.ProductSet()

	eval := &offerEval{eligibleSubtotal: decimal.Zero}
	for i := range items {
		if !all && !scope[items[i].ProductID] {
			continue
		}
		eval.eligible = append(eval.eligible, i)
		eval.eligibleSubtotal = eval.eligibleSubtotal.Add(itemSubtotal(&items[i]))
	}
	if len(eval.eligible) == 0 {
		return nil, ErrInvalidOfferScope
	}
	if eval.eligibleSubtotal.LessThan(decimal.NewFromFloat(o.MinPurchase)) {
		return nil, fmt.Errorf("%w: minimum purchase of %.2f not met", ErrInvalidOfferScope, o.MinPurchase)
	}

	amount := decimal.NewFromFloat(o.Amount)
	switch o.DiscountType {
	case models.DiscountPercentage:
		eval.discount = eval.eligibleSubtotal.Mul(amount).Div(hundred)
	case models.DiscountFixed:
		eval.discount = amount
	default:
		return nil, fmt.Errorf("%w: unknown discount type %q", ErrInvalidOfferScope, o.DiscountType)
	}
	// The discount can never exceed the eligible subtotal, so discounted
	// per-unit prices stay non-negative.
	if eval.discount.GreaterThan(eval.eligibleSubtotal) {
		eval.discount = eval.eligibleSubtotal
	}
	return eval, nil
}

// ValidateOffer re-checks a previously displayed offer at order-placement
// time. An offer that was eligible at display time may have expired or hit
// its usage cap in the meantime.
func ValidateOffer(o *models.Offer, items []models.CartItem, now time.Time) error {
	if err := OfferActive(o, now); err != nil {
		return err
	}
	_, err := evaluateOffer(o, items)
	return err
}

// ResolveOffers annotates the cart with at most one applied offer: the
// active, eligible offer yielding the greatest absolute discount on its
// eligible scope. Ties break by earliest starting date, then lowest offer
// id. The fixed-amount discount is distributed proportionally across
// eligible items by subtotal share; the rounded per-item amounts always sum
// to the rounded total discount. Returns the annotated items together with
// the winning offer, if any. Pure function over its inputs.
func ResolveOffers(offers []models.Offer, items []models.CartItem, now time.Time) ([]models.AnnotatedCartItem, *models.Offer) {
	annotated := make([]models.AnnotatedCartItem, len(items))
	for i := range items {
		annotated[i] = models.AnnotatedCartItem{
			CartItem: items[i],
			Subtotal: itemSubtotal(&items[i]).Round(2).InexactFloat64(),
		}
	}

	var best *models.Offer
	var bestEval *offerEval
	for i := range offers {
		o := &offers[i]
		if OfferActive(o, now) != nil {
			continue
		}
		eval, err := evaluateOffer(o, items)
		if err != nil {
			continue
		}
		if best == nil || betterOffer(eval, o, bestEval, best) {
			best, bestEval = o, eval
		}
	}
	if best == nil {
		return annotated, nil
	}

	// Distribute the winning discount across eligible items. The last
	// eligible item absorbs the rounding remainder so the per-item
	// amounts sum exactly to the rounded total.
	total := bestEval.discount.Round(2)
	allocated := decimal.Zero
	for n, idx := range bestEval.eligible {
		sub := itemSubtotal(&items[idx])
		var share decimal.Decimal
		if n == len(bestEval.eligible)-1 {
			share = total.Sub(allocated)
		} else {
			share = bestEval.discount.Mul(sub).Div(bestEval.eligibleSubtotal).Round(2)
			allocated = allocated.Add(share)
		}
		perUnit := sub.Sub(share).Div(decimal.NewFromInt(int64(items[idx].Quantity)))
		if perUnit.IsNegative() {
			perUnit = decimal.Zero
		}
		annotated[idx].AppliedOfferID = best.ID
		annotated[idx].DiscountAmount = share.InexactFloat64()
		annotated[idx].DiscountedPrice = perUnit.Round(2).InexactFloat64()
	}
	return annotated, best
}

// betterOffer reports whether candidate (eval, o) beats the current best:
// greatest absolute discount wins, then earliest starting date, then lowest
// offer id.
func betterOffer(eval *offerEval, o *models.Offer, bestEval *offerEval, best *models.Offer) bool {
	if !eval.discount.Equal(bestEval.discount) {
		return eval.discount.GreaterThan(bestEval.discount)
	}
	if !o.StartingDate.Equal(best.StartingDate) {
		return o.StartingDate.Before(best.StartingDate)
	}
	return o.ID < best.ID
}
