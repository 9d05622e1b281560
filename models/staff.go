package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// WeeklyAvailability describes when a staff member can take appointments.
// Stored as a JSONB column on the staff row.
type WeeklyAvailability struct {
	WorkingDays []string `json:"working_days"` // weekday names, e.g. "Monday"
	StartTime   string   `json:"start_time"`   // Format "HH:MM" in 24h
	EndTime     string   `json:"end_time"`     // Format "HH:MM" in 24h
	BreakStart  *string  `json:"break_start,omitempty"` // Optional break start time
	BreakEnd    *string  `json:"break_end,omitempty"`   // Optional break end time
}

// Value implements the driver.Valuer interface
func (w WeeklyAvailability) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (w *WeeklyAvailability) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal WeeklyAvailability: unsupported type %T", value)
	}

	return json.Unmarshal(data, w)
}

// IsConfigured reports whether working hours have been set up at all.
// An unconfigured staff member is not the same thing as a day off.
func (w WeeklyAvailability) IsConfigured() bool {
	return w.StartTime != "" && w.EndTime != ""
}

// WorksOn reports whether the given weekday name is a working day.
func (w WeeklyAvailability) WorksOn(weekday string) bool {
	for _, day := range w.WorkingDays {
		if day == weekday {
			return true
		}
	}
	return false
}

// Validate checks the working window and break invariants:
// start < end for both, and the break must sit inside the working window.
func (w WeeklyAvailability) Validate() error {
	if !w.IsConfigured() {
		return nil
	}

	layout := "15:04"
	start, err := time.Parse(layout, w.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time format: %s", w.StartTime)
	}
	end, err := time.Parse(layout, w.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time format: %s", w.EndTime)
	}
	if !start.Before(end) {
		return fmt.Errorf("working hours start %s must be before end %s", w.StartTime, w.EndTime)
	}

	for _, day := range w.WorkingDays {
		if !validWeekdays[day] {
			return fmt.Errorf("invalid working day: %s", day)
		}
	}

	if w.BreakStart == nil && w.BreakEnd == nil {
		return nil
	}
	if w.BreakStart == nil || w.BreakEnd == nil {
		return fmt.Errorf("break start and end must be set together")
	}

	breakStart, err := time.Parse(layout, *w.BreakStart)
	if err != nil {
		return fmt.Errorf("invalid break start time format: %s", *w.BreakStart)
	}
	breakEnd, err := time.Parse(layout, *w.BreakEnd)
	if err != nil {
		return fmt.Errorf("invalid break end time format: %s", *w.BreakEnd)
	}
	if !breakStart.Before(breakEnd) {
		return fmt.Errorf("break start %s must be before end %s", *w.BreakStart, *w.BreakEnd)
	}
	if breakStart.Before(start) || breakEnd.After(end) {
		return fmt.Errorf("break must fall within working hours")
	}

	return nil
}

var validWeekdays = map[string]bool{
	"Sunday":    true,
	"Monday":    true,
	"Tuesday":   true,
	"Wednesday": true,
	"Thursday":  true,
	"Friday":    true,
	"Saturday":  true,
}

// Staff is a salon employee that appointments can be assigned to.
type Staff struct {
	gorm.Model
	Name         string             `json:"name"`
	Position     string             `json:"position"`
	Email        string             `json:"email"`
	Availability WeeklyAvailability `json:"availability" gorm:"type:jsonb"`
}

func (s *Staff) BeforeSave(tx *gorm.DB) error {
	return s.Availability.Validate()
}
