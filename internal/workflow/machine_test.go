package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

func testSlots() []domain.Slot {
	base := time.Date(2026, time.September, 2, 11, 0, 0, 0, time.UTC)
	return []domain.Slot{
		{Start: base, End: base.Add(time.Hour), FullDuration: true},
		{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour), FullDuration: true},
	}
}

func TestAdvance_HappyPath(t *testing.T) {
	s := NewSession(100)

	s, effects := Advance(s, Started{ActiveDays: []domain.Weekday{domain.Wednesday, domain.Friday}})
	require.Len(t, effects, 1)
	offer, ok := effects[0].(OfferDays)
	require.True(t, ok)
	assert.Equal(t, []domain.Weekday{domain.Wednesday, domain.Friday}, offer.Days)
	assert.Equal(t, StateChoosingDay, s.State)

	s, effects = Advance(s, DaySelected{Day: domain.Wednesday})
	assert.Equal(t, StateCollectingName, s.State)
	require.Len(t, effects, 1)
	assert.IsType(t, SendMessage{}, effects[0])

	s, effects = Advance(s, TextEntered{Text: " Alice "})
	assert.Equal(t, StateCollectingContact, s.State)
	assert.Equal(t, "Alice", s.Name)
	require.Len(t, effects, 1)

	s, effects = Advance(s, TextEntered{Text: "+1 555 0100"})
	assert.Equal(t, StateChoosingSlot, s.State)
	require.Len(t, effects, 1)
	load, ok := effects[0].(LoadSlots)
	require.True(t, ok)
	assert.Equal(t, domain.Wednesday, load.Day)

	s, effects = Advance(s, SlotsLoaded{Date: "Wednesday, September 2", Slots: testSlots()})
	assert.Equal(t, StateChoosingSlot, s.State)
	require.Len(t, effects, 1)
	offerSlots, ok := effects[0].(OfferSlots)
	require.True(t, ok)
	assert.Len(t, offerSlots.Slots, 2)

	s, effects = Advance(s, SlotSelected{Index: 1})
	assert.Equal(t, StateAwaitingApproval, s.State)
	assert.True(t, s.State.Terminal())
	require.Len(t, effects, 1)
	submit, ok := effects[0].(SubmitBooking)
	require.True(t, ok)
	assert.Equal(t, int64(100), submit.UserID)
	assert.Equal(t, domain.Wednesday, submit.Weekday)
	assert.Equal(t, "Alice", submit.Name)
	assert.Equal(t, testSlots()[1], submit.Slot)
}

func TestAdvance_NoActiveDays(t *testing.T) {
	s := NewSession(100)

	s, effects := Advance(s, Started{})
	assert.Equal(t, StateCancelled, s.State)
	require.Len(t, effects, 1)
	msg, ok := effects[0].(SendMessage)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "no days")
}

func TestAdvance_NoSlotsEndsFlow(t *testing.T) {
	s := Session{UserID: 100, State: StateChoosingSlot, Weekday: domain.Friday, Name: "Bob", Contact: "@bob"}

	s, effects := Advance(s, SlotsLoaded{Date: "Friday, September 4"})
	assert.Equal(t, StateCancelled, s.State)
	require.Len(t, effects, 1)
	msg, ok := effects[0].(SendMessage)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Friday, September 4")
}

func TestAdvance_CancelFromAnyState(t *testing.T) {
	states := []Session{
		NewSession(1),
		{UserID: 1, State: StateCollectingName, Weekday: domain.Friday},
		{UserID: 1, State: StateCollectingContact, Weekday: domain.Friday, Name: "A"},
		{UserID: 1, State: StateChoosingSlot, Weekday: domain.Friday, Name: "A", Contact: "B"},
	}

	for _, s := range states {
		next, effects := Advance(s, Cancelled{})
		assert.Equal(t, StateCancelled, next.State)
		require.Len(t, effects, 1)
		assert.IsType(t, SendMessage{}, effects[0])
	}
}

func TestAdvance_InvalidInputsReprompt(t *testing.T) {
	t.Run("unknown weekday", func(t *testing.T) {
		s := NewSession(1)
		next, effects := Advance(s, DaySelected{Day: "someday"})
		assert.Equal(t, StateChoosingDay, next.State)
		require.Len(t, effects, 1)
		assert.IsType(t, SendMessage{}, effects[0])
	})

	t.Run("blank name", func(t *testing.T) {
		s := Session{UserID: 1, State: StateCollectingName, Weekday: domain.Friday}
		next, effects := Advance(s, TextEntered{Text: "   "})
		assert.Equal(t, StateCollectingName, next.State)
		assert.Empty(t, next.Name)
		require.Len(t, effects, 1)
	})

	t.Run("slot index out of range", func(t *testing.T) {
		s := Session{UserID: 1, State: StateChoosingSlot, Weekday: domain.Friday,
			Name: "A", Contact: "B", Slots: testSlots()}
		next, effects := Advance(s, SlotSelected{Index: 5})
		assert.Equal(t, StateChoosingSlot, next.State)
		require.Len(t, effects, 1)
		assert.IsType(t, SendMessage{}, effects[0])
	})

	t.Run("text while choosing day", func(t *testing.T) {
		s := NewSession(1)
		next, effects := Advance(s, TextEntered{Text: "wednesday please"})
		assert.Equal(t, StateChoosingDay, next.State)
		require.Len(t, effects, 1)
	})
}

func TestAdvance_TerminalStatesIgnoreInput(t *testing.T) {
	for _, state := range []State{StateAwaitingApproval, StateCancelled} {
		s := Session{UserID: 1, State: state}
		next, effects := Advance(s, TextEntered{Text: "hello"})
		assert.Equal(t, state, next.State)
		assert.Empty(t, effects)
	}
}
