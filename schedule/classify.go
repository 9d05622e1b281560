package schedule

import (
	"fmt"
)

type VerdictReason string

const (
	ReasonFree    VerdictReason = "free"
	ReasonBusy    VerdictReason = "busy"
	ReasonBlocked VerdictReason = "blocked"
)

// Verdict is the result of classifying one staff member against one
// candidate appointment time.
type Verdict struct {
	Available    bool          `json:"available"`
	Reason       VerdictReason `json:"reason"`
	CommitmentID uint          `json:"commitment_id,omitempty"`
}

// ClassifySlots overlays commitments onto a generated slot sequence for one
// date. Each occupying commitment marks ceil(duration/slotWidth) consecutive
// slots Busy starting from the slot containing its start time, carrying the
// commitment reference. Commitments are matched to the date by DateKey
// equality, never by timezone-sensitive comparison. Break slots stay Break.
func ClassifySlots(slots []TimeSlot, slotWidthMinutes int, date string, commitments []Commitment) ([]TimeSlot, error) {
	if slotWidthMinutes <= 0 {
		slotWidthMinutes = DefaultSlotWidth
	}

	day, err := DateKey(date)
	if err != nil {
		return nil, err
	}

	out := make([]TimeSlot, len(slots))
	copy(out, slots)

	for _, c := range commitments {
		if !c.Occupies() {
			continue
		}

		cDay, err := DateKey(c.Date)
		if err != nil {
			return nil, fmt.Errorf("commitment %d date: %w", c.ID, err)
		}
		if cDay != day {
			continue
		}

		cStart, err := ToMinutes(c.Time)
		if err != nil {
			return nil, fmt.Errorf("commitment %d time: %w", c.ID, err)
		}

		spanned := (c.DurationMinutes + slotWidthMinutes - 1) / slotWidthMinutes
		if spanned < 1 {
			spanned = 1
		}

		for i := range out {
			slotStart, err := ToMinutes(out[i].Start)
			if err != nil {
				return nil, err
			}
			if cStart < slotStart || cStart >= slotStart+slotWidthMinutes {
				continue
			}
			// Found the slot containing the commitment start; mark the span.
			for j := i; j < i+spanned && j < len(out); j++ {
				if out[j].Status == SlotBreak {
					continue
				}
				out[j].Status = SlotBusy
				out[j].CommitmentID = c.ID
				out[j].CommitmentKind = c.Kind
			}
			break
		}
	}

	return out, nil
}

// ClassifyInstant tests a single candidate time against a staff member's
// commitments using true half-open interval overlap. It is a pure read:
// calling it twice with unchanged commitments returns the same verdict.
func ClassifyInstant(commitments []Commitment, date, clock string, durationMinutes int) (Verdict, error) {
	day, err := DateKey(date)
	if err != nil {
		return Verdict{}, err
	}

	start, err := ToMinutes(clock)
	if err != nil {
		return Verdict{}, err
	}
	if durationMinutes <= 0 {
		durationMinutes = DefaultSlotWidth
	}
	end := start + durationMinutes

	for _, c := range commitments {
		if !c.Occupies() {
			continue
		}

		cDay, err := DateKey(c.Date)
		if err != nil {
			return Verdict{}, fmt.Errorf("commitment %d date: %w", c.ID, err)
		}
		if cDay != day {
			continue
		}

		cStart, err := ToMinutes(c.Time)
		if err != nil {
			return Verdict{}, fmt.Errorf("commitment %d time: %w", c.ID, err)
		}
		cEnd := cStart + c.DurationMinutes

		if IntervalsOverlap(start, end, cStart, cEnd) {
			reason := ReasonBusy
			if c.Kind == KindBlock {
				reason = ReasonBlocked
			}
			return Verdict{Available: false, Reason: reason, CommitmentID: c.ID}, nil
		}
	}

	return Verdict{Available: true, Reason: ReasonFree}, nil
}
