package engine

import "errors"

// Engine error taxonomy. All of these are user-facing and recoverable; the
// caller re-prompts. They are detected before any state mutation.
var (
	// ErrInvalidWindow means the requested delivery interval is shorter
	// than one hour or not a valid HH:MM pair.
	ErrInvalidWindow = errors.New("delivery time interval must be at least 1 hour")

	// ErrNoMatchingSlot means no configured slot fully contains the
	// requested delivery window.
	ErrNoMatchingSlot = errors.New("selected time does not match any available delivery slots")

	// ErrIllegalTransition means the requested status change is not in
	// the allowed transition table.
	ErrIllegalTransition = errors.New("illegal order status transition")

	// ErrNoDeliveryPersonAvailable blocks packaging->delivering while the
	// store's delivery roster is empty.
	ErrNoDeliveryPersonAvailable = errors.New("no delivery person available for this store")

	// ErrOfferExpired means the offer's date window no longer contains
	// the current IST date at apply time.
	ErrOfferExpired = errors.New("offer is no longer active")

	// ErrOfferLimitReached means the offer's usage cap is exhausted.
	ErrOfferLimitReached = errors.New("offer usage limit reached")

	// ErrInvalidOfferScope means the cart's items are not covered by the
	// offer, or the eligible subtotal is below the minimum purchase.
	ErrInvalidOfferScope = errors.New("offer does not apply to the selected products")
)
