package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"grocto/internal/models"
)

// MinWindowMinutes is the minimum delivery booking granularity.
const MinWindowMinutes = 60

// SlotMatch is the result of matching a requested delivery window against a
// store's configured slots.
type SlotMatch struct {
	SlotID string
	Fee    decimal.Decimal
}

// parseClock converts a minute-resolution "HH:MM" string to minutes since
// midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return hour*60 + minute, nil
}

// MatchDeliverySlot finds the slot whose interval fully contains the
// requested [startTime, endTime] window and resolves its fee. Slots are
// scanned in ascending (startTime, id) order so that fee resolution stays
// deterministic even when slots overlap. Pure function over its inputs.
func MatchDeliverySlot(slots []models.DeliverySlot, startTime, endTime string) (*SlotMatch, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	end, err := parseClock(endTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}
	if end-start < MinWindowMinutes {
		return nil, ErrInvalidWindow
	}

	type candidate struct {
		slot  models.DeliverySlot
		start int
		end   int
	}
	candidates := make([]candidate, 0, len(slots))
	for _, slot := range slots {
		slotStart, err := parseClock(slot.StartTime)
		if err != nil {
			continue // skip malformed slot rows
		}
		slotEnd, err := parseClock(slot.EndTime)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{slot: slot, start: slotStart, end: slotEnd})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return candidates[i].slot.ID < candidates[j].slot.ID
	})

	for _, c := range candidates {
		if c.start <= start && end <= c.end {
			return &SlotMatch{
				SlotID: c.slot.ID,
				Fee:    decimal.NewFromFloat(c.slot.DeliveryFee),
			}, nil
		}
	}
	return nil, ErrNoMatchingSlot
}
