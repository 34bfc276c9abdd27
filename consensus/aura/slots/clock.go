// Package slots converts between wall-clock time and discrete slot numbers.
// The clock is the single source of truth for "what slot is it now", shared
// by the production and verification paths so that the two always agree.
package slots

import (
	"context"
	"time"

	model "github.com/aurachain/aura/model/aura"
)

// Clock maps wall-clock time to slot numbers for a chain with a fixed
// genesis time and slot duration. All methods are pure arithmetic and safe
// for concurrent use.
type Clock struct {
	genesis      time.Time
	slotDuration time.Duration
}

// NewClock creates a slot clock. A non-positive slot duration is a fatal
// configuration error.
func NewClock(genesis time.Time, slotDuration time.Duration) (*Clock, error) {
	if slotDuration <= 0 {
		return nil, model.NewConfigurationErrorf("slot duration must be positive, got %s", slotDuration)
	}
	c := &Clock{
		genesis:      genesis,
		slotDuration: slotDuration,
	}
	return c, nil
}

// SlotDuration returns the duration of one slot.
func (c *Clock) SlotDuration() time.Duration {
	return c.slotDuration
}

// SlotAt returns the slot containing the given time. Times before genesis
// are clamped to slot 0, so the result is monotonic for monotonic inputs.
func (c *Clock) SlotAt(t time.Time) model.Slot {
	elapsed := t.Sub(c.genesis)
	if elapsed < 0 {
		return 0
	}
	return model.Slot(elapsed / c.slotDuration)
}

// CurrentSlot returns the slot containing the current wall-clock time.
func (c *Clock) CurrentSlot() model.Slot {
	return c.SlotAt(time.Now())
}

// SlotStartTime returns the time at which the given slot begins.
func (c *Clock) SlotStartTime(slot model.Slot) time.Time {
	return c.genesis.Add(time.Duration(slot) * c.slotDuration)
}

// SlotEndTime returns the time at which the given slot ends, which is the
// start time of the following slot.
func (c *Clock) SlotEndTime(slot model.Slot) time.Time {
	return c.SlotStartTime(slot + 1)
}

// TimeUntilNextSlot returns how long after the given time the next slot
// boundary occurs.
func (c *Clock) TimeUntilNextSlot(now time.Time) time.Duration {
	return c.SlotStartTime(c.SlotAt(now) + 1).Sub(now)
}

// WaitForSlot suspends the calling goroutine until the given slot has begun,
// or until the context is cancelled. It returns immediately if the slot has
// already begun.
func (c *Clock) WaitForSlot(ctx context.Context, slot model.Slot) error {
	wait := time.Until(c.SlotStartTime(slot))
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
