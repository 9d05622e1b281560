package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonworks/salon-api/models"
)

func strPtr(s string) *string { return &s }

func weekdayAvailability() models.WeeklyAvailability {
	return models.WeeklyAvailability{
		WorkingDays: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		StartTime:   "09:00",
		EndTime:     "18:00",
		BreakStart:  strPtr("13:00"),
		BreakEnd:    strPtr("14:00"),
	}
}

// 2025-03-10 is a Monday, 2025-03-09 a Sunday.
const (
	monday = "2025-03-10"
	sunday = "2025-03-09"
)

func TestGenerateSlotsWorkingDay(t *testing.T) {
	slots, err := GenerateSlots(weekdayAvailability(), monday, 30)
	require.NoError(t, err)

	// 09:00-18:00 at 30 minutes is 18 slots; the 13:00-14:00 break makes
	// two of them Break, leaving 16 bookable.
	require.Len(t, slots, 18)

	var free, brk []string
	for _, s := range slots {
		switch s.Status {
		case SlotFree:
			free = append(free, s.Start)
		case SlotBreak:
			brk = append(brk, s.Start)
		}
	}

	assert.Len(t, free, 16)
	assert.Equal(t, []string{"13:00", "13:30"}, brk)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "17:30", slots[len(slots)-1].Start)
	assert.Contains(t, free, "12:30")
	assert.Contains(t, free, "14:00")
	assert.NotContains(t, free, "13:00")
}

func TestGenerateSlotsNonWorkingDay(t *testing.T) {
	slots, err := GenerateSlots(weekdayAvailability(), sunday, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsNotConfigured(t *testing.T) {
	_, err := GenerateSlots(models.WeeklyAvailability{}, monday, 30)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateSlotsDropsPartialTrailingSlot(t *testing.T) {
	avail := models.WeeklyAvailability{
		WorkingDays: []string{"Monday"},
		StartTime:   "09:00",
		EndTime:     "17:45",
	}

	slots, err := GenerateSlots(avail, monday, 30)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	// 17:15-17:45 is the last full slot; 17:45 would be a partial step.
	assert.Equal(t, "17:15", slots[len(slots)-1].Start)
}

func TestGenerateSlotsDefaultWidth(t *testing.T) {
	slots, err := GenerateSlots(weekdayAvailability(), monday, 0)
	require.NoError(t, err)
	assert.Len(t, slots, 18)
}

func TestGenerateSlotsCustomWidth(t *testing.T) {
	slots, err := GenerateSlots(weekdayAvailability(), monday, 60)
	require.NoError(t, err)
	// 9 hours at 60 minutes, one of them the break hour.
	require.Len(t, slots, 9)
	assert.Equal(t, SlotBreak, slots[4].Status) // 13:00
}

// An unparsable break window must fail, never degrade to "no break".
func TestGenerateSlotsBadBreakFailsLoudly(t *testing.T) {
	avail := weekdayAvailability()
	avail.BreakStart = strPtr("lunchtime")

	_, err := GenerateSlots(avail, monday, 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestGenerateSlotsBadWorkingHours(t *testing.T) {
	avail := weekdayAvailability()
	avail.EndTime = "6pm"

	_, err := GenerateSlots(avail, monday, 30)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestGenerateSlotsBadDate(t *testing.T) {
	_, err := GenerateSlots(weekdayAvailability(), "03/10/2025", 30)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
