// Package alarm contains core domain types for the alarm clock.
//
// It defines TimeOfDay (a validated 24-hour wall-clock value), Alarm (one
// scheduled wake-up with label, tone and snooze settings) with a Clone helper
// to avoid leaking internal references, and ValidationError for rejected
// user input.
package alarm
