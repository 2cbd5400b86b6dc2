// Package monitor implements the background polling loop that fires alarms.
//
// The monitor owns all transient firing state. Stored alarm records never
// change because of a firing: ringing flags, snooze deadlines, and snooze
// counts live in an in-memory state machine keyed by alarm id, so a snoozed
// 07:00 alarm still reads 07:00 in the store and returns to its daily
// schedule once dismissed. The foreground menu observes firings through the
// Events channel and steers them with Snooze and Dismiss.
package monitor
