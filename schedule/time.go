package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned for malformed clock or date strings. These
// are caller bugs and must never be downgraded to a default classification.
var ErrInvalidFormat = errors.New("schedule: invalid time or date format")

// ToMinutes parses a 24h "HH:MM" wall-clock string into minutes since
// midnight. Slot math works entirely on these integers so that nothing
// here depends on the runtime's local clock or timezone.
func ToMinutes(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, clock)
	}

	return hour*60 + minute, nil
}

// FromMinutes formats minutes since midnight back into "HH:MM".
func FromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// DateKey normalizes a date value to its canonical "YYYY-MM-DD" identity.
// It accepts a plain date or a combined date-time string ("2025-03-10",
// "2025-03-10T23:30", "2025-03-10 23:30:00Z") and always keeps the literal
// calendar day. The day portion is taken textually, never routed through
// a timezone conversion, so a commitment stored as "2025-03-10T23:30"
// matches day "2025-03-10" regardless of where the server runs.
func DateKey(value string) (string, error) {
	day := value
	if idx := strings.IndexAny(value, "T "); idx >= 0 {
		day = value[:idx]
	}

	if _, err := time.ParseInLocation("2006-01-02", day, time.UTC); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}

	return day, nil
}

// Weekday returns the weekday name ("Monday") of a "YYYY-MM-DD" date.
func Weekday(date string) (string, error) {
	day, err := DateKey(date)
	if err != nil {
		return "", err
	}
	t, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, date)
	}
	return t.Weekday().String(), nil
}

// DaysBetween lists the canonical date keys from one date to another,
// inclusive on both ends. Returns an empty list when to precedes from.
func DaysBetween(from, to string) ([]string, error) {
	fromKey, err := DateKey(from)
	if err != nil {
		return nil, err
	}
	toKey, err := DateKey(to)
	if err != nil {
		return nil, err
	}

	start, _ := time.ParseInLocation("2006-01-02", fromKey, time.UTC)
	end, _ := time.ParseInLocation("2006-01-02", toKey, time.UTC)

	var days []string
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		days = append(days, cursor.Format("2006-01-02"))
	}
	return days, nil
}

// IntervalsOverlap reports whether two half-open intervals [aStart, aEnd)
// and [bStart, bEnd) intersect. Touching endpoints do not overlap, so
// back-to-back appointments with no gap are both bookable.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}
