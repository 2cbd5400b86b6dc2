package alarm

import (
	"fmt"
	"time"
)

const (
	// MinSnoozeMinutes is the smallest accepted snooze duration.
	MinSnoozeMinutes = 1
	// MaxSnoozeMinutes is the largest accepted snooze duration.
	MaxSnoozeMinutes = 60
	// DefaultSnoozeMinutes is the snooze duration offered first.
	DefaultSnoozeMinutes = 5
)

// SnoozePresets are the snooze durations offered as quick choices when an
// alarm is created.
//
//nolint:gochecknoglobals // Shared read-only preset list.
var SnoozePresets = []int{5, 10, 15}

// Alarm is one scheduled wake-up. Alarms recur daily at their TimeOfDay for
// as long as they are enabled; snoozing never changes the stored time.
type Alarm struct {
	// ID is the stable identifier assigned by the store at insertion.
	// IDs reflect insertion order and are never reused after deletion.
	ID uint64
	// Time is the wall-clock time of day at which the alarm fires.
	Time TimeOfDay
	// Label is a free-text description shown when the alarm rings.
	Label string
	// Tone is a built-in tone name or a path to a user audio file.
	Tone string
	// Enabled indicates whether the alarm may fire; disabled alarms are
	// retained but never ring.
	Enabled bool
	// SnoozeMinutes is the deferral applied when this alarm is snoozed.
	SnoozeMinutes int
	// CreatedAt is when the alarm was added to the store.
	CreatedAt time.Time
}

// Clone returns a copy of the alarm to avoid leaking internal references.
func (a *Alarm) Clone() *Alarm {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// ValidateSnoozeMinutes checks the snooze duration bounds.
func ValidateSnoozeMinutes(minutes int) error {
	if minutes < MinSnoozeMinutes || minutes > MaxSnoozeMinutes {
		return NewValidationError(
			"snooze",
			"snooze duration must be between %d and %d minutes, got %d",
			MinSnoozeMinutes, MaxSnoozeMinutes, minutes,
		)
	}

	return nil
}

// DefaultLabel is the label substituted when the user leaves it empty.
func DefaultLabel(t TimeOfDay) string {
	return fmt.Sprintf("Alarm at %s", t)
}
