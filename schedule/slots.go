package schedule

import (
	"errors"
	"fmt"

	"github.com/salonworks/salon-api/models"
)

type SlotStatus string

const (
	SlotFree  SlotStatus = "free"
	SlotBreak SlotStatus = "break"
	SlotBusy  SlotStatus = "busy"
)

// DefaultSlotWidth is the slot width in minutes when none is configured.
const DefaultSlotWidth = 30

// ErrNotConfigured signals that a staff member has no working hours set up.
// Callers can distinguish this from a day off (empty slots, nil error) and
// show a setup prompt instead of "fully booked".
var ErrNotConfigured = errors.New("schedule: working hours not configured")

// TimeSlot is one fixed-width subdivision of a working day. Generated on
// demand for display and conflict marking, never persisted.
type TimeSlot struct {
	Start          string         `json:"start"` // "HH:MM"
	Status         SlotStatus     `json:"status"`
	CommitmentID   uint           `json:"commitment_id,omitempty"`
	CommitmentKind CommitmentKind `json:"commitment_kind,omitempty"`
}

// GenerateSlots produces the ordered slot sequence for one staff member on
// one calendar date. A non-working weekday yields an empty sequence. Slots
// whose start falls inside the break window come out pre-classified Break;
// busy marking happens in ClassifySlots. The trailing partial step shorter
// than the slot width is dropped, only full slots are offered.
func GenerateSlots(avail models.WeeklyAvailability, date string, slotWidthMinutes int) ([]TimeSlot, error) {
	if slotWidthMinutes <= 0 {
		slotWidthMinutes = DefaultSlotWidth
	}

	if !avail.IsConfigured() {
		return nil, ErrNotConfigured
	}

	weekday, err := Weekday(date)
	if err != nil {
		return nil, err
	}
	if !avail.WorksOn(weekday) {
		return nil, nil // day off
	}

	start, err := ToMinutes(avail.StartTime)
	if err != nil {
		return nil, fmt.Errorf("working hours start: %w", err)
	}
	end, err := ToMinutes(avail.EndTime)
	if err != nil {
		return nil, fmt.Errorf("working hours end: %w", err)
	}

	// An unparsable break window must fail loudly. Treating it as "no
	// break" would silently offer slots the staff member cannot take.
	breakStart, breakEnd := -1, -1
	if avail.BreakStart != nil && avail.BreakEnd != nil {
		breakStart, err = ToMinutes(*avail.BreakStart)
		if err != nil {
			return nil, fmt.Errorf("break start: %w", err)
		}
		breakEnd, err = ToMinutes(*avail.BreakEnd)
		if err != nil {
			return nil, fmt.Errorf("break end: %w", err)
		}
	}

	var slots []TimeSlot
	for cursor := start; cursor+slotWidthMinutes <= end; cursor += slotWidthMinutes {
		status := SlotFree
		if breakStart >= 0 && cursor >= breakStart && cursor < breakEnd {
			status = SlotBreak
		}
		slots = append(slots, TimeSlot{
			Start:  FromMinutes(cursor),
			Status: status,
		})
	}

	return slots, nil
}
