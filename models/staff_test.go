package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestWeeklyAvailabilityValidate(t *testing.T) {
	tests := []struct {
		name    string
		avail   WeeklyAvailability
		wantErr bool
	}{
		{
			name: "valid with break",
			avail: WeeklyAvailability{
				WorkingDays: []string{"Monday", "Friday"},
				StartTime:   "09:00",
				EndTime:     "18:00",
				BreakStart:  strPtr("13:00"),
				BreakEnd:    strPtr("14:00"),
			},
		},
		{
			name: "valid without break",
			avail: WeeklyAvailability{
				WorkingDays: []string{"Saturday"},
				StartTime:   "10:00",
				EndTime:     "16:00",
			},
		},
		{
			name:  "unconfigured passes",
			avail: WeeklyAvailability{},
		},
		{
			name: "start after end",
			avail: WeeklyAvailability{
				WorkingDays: []string{"Monday"},
				StartTime:   "18:00",
				EndTime:     "09:00",
			},
			wantErr: true,
		},
		{
			name: "break outside working hours",
			avail: WeeklyAvailability{
				WorkingDays: []string{"Monday"},
				StartTime:   "09:00",
				EndTime:     "18:00",
				BreakStart:  strPtr("08:00"),
				BreakEnd:    strPtr("09:30"),
			},
			wantErr: true,
		},
		{
			name: "break start without end",
			avail: WeeklyAvailability{
				WorkingDays: []string{"Monday"},
				StartTime:   "09:00",
				EndTime:     "18:00",
				BreakStart:  strPtr("13:00"),
			},
			wantErr: true,
		},
		{
			name: "break reversed",
			avail: WeeklyAvailability{
				WorkingDays: []string{"Monday"},
				StartTime:   "09:00",
				EndTime:     "18:00",
				BreakStart:  strPtr("14:00"),
				BreakEnd:    strPtr("13:00"),
			},
			wantErr: true,
		},
		{
			name: "bogus weekday",
			avail: WeeklyAvailability{
				WorkingDays: []string{"Funday"},
				StartTime:   "09:00",
				EndTime:     "18:00",
			},
			wantErr: true,
		},
		{
			name: "malformed start time",
			avail: WeeklyAvailability{
				WorkingDays: []string{"Monday"},
				StartTime:   "nine",
				EndTime:     "18:00",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.avail.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWeeklyAvailabilityJSONRoundTrip(t *testing.T) {
	avail := WeeklyAvailability{
		WorkingDays: []string{"Monday", "Wednesday"},
		StartTime:   "09:00",
		EndTime:     "18:00",
		BreakStart:  strPtr("13:00"),
		BreakEnd:    strPtr("14:00"),
	}

	value, err := avail.Value()
	require.NoError(t, err)

	var scanned WeeklyAvailability
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, avail, scanned)
}

func TestWorksOn(t *testing.T) {
	avail := WeeklyAvailability{WorkingDays: []string{"Monday", "Tuesday"}}
	assert.True(t, avail.WorksOn("Monday"))
	assert.False(t, avail.WorksOn("Sunday"))
}
