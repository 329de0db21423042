package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grocto/internal/engine"
	"grocto/internal/models"
)

func slot(id, start, end string, fee float64) models.DeliverySlot {
	return models.DeliverySlot{ID: id, StoreID: "store-1", StartTime: start, EndTime: end, DeliveryFee: fee}
}

func TestMatchDeliverySlot_WindowTooShort(t *testing.T) {
	slots := []models.DeliverySlot{slot("slot-1", "09:00", "12:00", 20)}

	// Any window shorter than an hour is rejected regardless of slots.
	cases := [][2]string{
		{"09:15", "09:45"},
		{"09:00", "09:59"},
		{"09:00", "09:00"}, // zero-length window
		{"10:00", "09:00"}, // reversed window
	}
	for _, c := range cases {
		match, err := engine.MatchDeliverySlot(slots, c[0], c[1])
		assert.ErrorIs(t, err, engine.ErrInvalidWindow, "window %s-%s", c[0], c[1])
		assert.Nil(t, match)
	}
}

func TestMatchDeliverySlot_MalformedTimes(t *testing.T) {
	slots := []models.DeliverySlot{slot("slot-1", "09:00", "12:00", 20)}

	for _, bad := range []string{"", "9am", "25:00", "09:75", "xx:yy"} {
		_, err := engine.MatchDeliverySlot(slots, bad, "12:00")
		assert.ErrorIs(t, err, engine.ErrInvalidWindow, "start %q", bad)
	}
}

func TestMatchDeliverySlot_NoSlotsConfigured(t *testing.T) {
	match, err := engine.MatchDeliverySlot(nil, "09:00", "10:30")
	assert.ErrorIs(t, err, engine.ErrNoMatchingSlot)
	assert.Nil(t, match)
}

func TestMatchDeliverySlot_Containment(t *testing.T) {
	slots := []models.DeliverySlot{slot("slot-1", "09:00", "12:00", 20)}

	// Fully contained window matches.
	match, err := engine.MatchDeliverySlot(slots, "09:30", "11:00")
	assert.NoError(t, err)
	assert.Equal(t, "slot-1", match.SlotID)
	assert.True(t, match.Fee.Equal(decimalFromFloat(20)))

	// Window boundary equal to the slot boundary still matches.
	match, err = engine.MatchDeliverySlot(slots, "09:00", "12:00")
	assert.NoError(t, err)
	assert.Equal(t, "slot-1", match.SlotID)

	// Window sticking out of the slot does not.
	_, err = engine.MatchDeliverySlot(slots, "11:30", "12:30")
	assert.ErrorIs(t, err, engine.ErrNoMatchingSlot)
}

func TestMatchDeliverySlot_EarliestStartWins(t *testing.T) {
	// Overlapping slots: the one with the earliest start time wins, even
	// when listed later.
	slots := []models.DeliverySlot{
		slot("slot-1", "09:00", "12:00", 20),
		slot("slot-2", "08:00", "11:00", 15),
	}

	match, err := engine.MatchDeliverySlot(slots, "09:00", "10:30")
	assert.NoError(t, err)
	assert.Equal(t, "slot-2", match.SlotID)
	assert.True(t, match.Fee.Equal(decimalFromFloat(15)))
}

func TestMatchDeliverySlot_TieBreaksByID(t *testing.T) {
	slots := []models.DeliverySlot{
		slot("slot-b", "09:00", "13:00", 25),
		slot("slot-a", "09:00", "12:00", 20),
	}

	match, err := engine.MatchDeliverySlot(slots, "09:00", "10:30")
	assert.NoError(t, err)
	assert.Equal(t, "slot-a", match.SlotID)
}

func TestMatchDeliverySlot_SkipsMalformedSlotRows(t *testing.T) {
	slots := []models.DeliverySlot{
		slot("slot-bad", "garbage", "12:00", 5),
		slot("slot-ok", "08:00", "12:00", 10),
	}

	match, err := engine.MatchDeliverySlot(slots, "09:00", "10:30")
	assert.NoError(t, err)
	assert.Equal(t, "slot-ok", match.SlotID)
}
