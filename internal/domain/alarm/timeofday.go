package alarm

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock alarm time on a 24-hour dial. The zero value is
// midnight.
type TimeOfDay struct {
	// Hour is in the range 0-23.
	Hour int
	// Minute is in the range 0-59.
	Minute int
}

// ParseTimeOfDay parses "HH:MM" in 24-hour format. Leading zeroes are
// optional ("7:05" and "07:05" are the same value). Anything outside
// 00:00-23:59 yields a ValidationError.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return TimeOfDay{}, NewValidationError("time", "expected HH:MM in 24-hour format, got %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, NewValidationError("time", "hour must be a number between 0 and 23, got %q", parts[0])
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, NewValidationError("time", "minute must be a number between 0 and 59, got %q", parts[1])
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// Validate checks the field ranges. Values built through ParseTimeOfDay are
// always valid; this guards directly constructed ones.
func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return NewValidationError("time", "hour must be between 0 and 23, got %d", t.Hour)
	}

	if t.Minute < 0 || t.Minute > 59 {
		return NewValidationError("time", "minute must be between 0 and 59, got %d", t.Minute)
	}

	return nil
}

// String renders the value as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Matches reports whether now falls inside this value's minute.
func (t TimeOfDay) Matches(now time.Time) bool {
	return now.Hour() == t.Hour && now.Minute() == t.Minute
}
