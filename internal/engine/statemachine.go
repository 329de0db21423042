package engine

import (
	"fmt"
	"time"

	"grocto/internal/models"
)

// transitions is the exhaustive table of legal status changes. Every edge
// not listed here is rejected with ErrIllegalTransition.
var transitions = map[models.Status]map[models.Status]bool{
	models.StatusPending:    {models.StatusAccepted: true, models.StatusRejected: true},
	models.StatusAccepted:   {models.StatusPackaging: true},
	models.StatusPackaging:  {models.StatusDelivering: true},
	models.StatusDelivering: {models.StatusDelivered: true},
}

// CanTransition reports whether from -> to is in the allowed table.
func CanTransition(from, to models.Status) bool {
	return transitions[from][to]
}

// TransitionInput supplies the data a transition may need beyond the status
// pair: the clock, the configured estimated-delivery offset, and the
// store's delivery roster with an optional explicit person choice.
type TransitionInput struct {
	Now                     time.Time
	EstimatedDeliveryOffset time.Duration
	Roster                  []models.DeliveryPerson
	DeliveryPersonID        string
}

// TransitionResult carries the side effects a legal transition produces.
// Unset fields mean no change to the corresponding order field.
type TransitionResult struct {
	EstimatedDeliveryTime *time.Time
	DeliveryPersonContact string
}

// ApplyTransition validates a requested status change and computes its side
// effects without mutating anything. The caller persists the result with a
// compare-and-swap on the order's current status so a concurrent duplicate
// request observes the already-updated status and fails instead of
// re-applying side effects.
//
//   - pending -> accepted stamps the estimated delivery time (now + offset).
//   - pending -> rejected is terminal.
//   - packaging -> delivering requires a non-empty roster and records a
//     "Name (Phone)" snapshot of the assigned delivery person.
//   - delivering -> delivered is terminal.
func ApplyTransition(current, target models.Status, in TransitionInput) (*TransitionResult, error) {
	if !CanTransition(current, target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, target)
	}

	result := &TransitionResult{}
	switch target {
	case models.StatusAccepted:
		estimated := in.Now.Add(in.EstimatedDeliveryOffset)
		result.EstimatedDeliveryTime = &estimated
	case models.StatusDelivering:
		person, err := pickDeliveryPerson(in.Roster, in.DeliveryPersonID)
		if err != nil {
			return nil, err
		}
		result.DeliveryPersonContact = fmt.Sprintf("%s (%s)", person.Name, person.Phone)
	}
	return result, nil
}

// pickDeliveryPerson resolves the roster entry to assign: the explicitly
// requested one if present, otherwise the first entry.
func pickDeliveryPerson(roster []models.DeliveryPerson, personID string) (*models.DeliveryPerson, error) {
	if len(roster) == 0 {
		return nil, ErrNoDeliveryPersonAvailable
	}
	if personID != "" {
		for i := range roster {
			if roster[i].ID == personID {
				return &roster[i], nil
			}
		}
		return nil, fmt.Errorf("%w: person %s not on roster", ErrNoDeliveryPersonAvailable, personID)
	}
	return &roster[0], nil
}
