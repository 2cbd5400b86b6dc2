package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// ErrNotRinging is returned when Snooze or Dismiss names an alarm that is
// neither ringing nor snoozed.
var ErrNotRinging = errors.New("alarm is not ringing")

// State identifies where an alarm is in its runtime firing lifecycle.
type State int

const (
	// StateIdle means the alarm is waiting for its scheduled time.
	StateIdle State = iota
	// StateRinging means the alarm is sounding, awaiting dismiss or snooze.
	StateRinging
	// StateSnoozed means the alarm was deferred and will ring again.
	StateSnoozed
)

// String returns a short lowercase name for the state.
func (s State) String() string {
	switch s {
	case StateRinging:
		return "ringing"
	case StateSnoozed:
		return "snoozed"
	default:
		return "idle"
	}
}

// Status is the transient runtime view of one alarm.
type Status struct {
	// ID is the alarm's store identifier.
	ID uint64
	// State is the current lifecycle state.
	State State
	// FiredAt is when the current ringing episode started, zero unless
	// ringing.
	FiredAt time.Time
	// SnoozeUntil is the pending re-fire deadline, zero unless snoozed.
	SnoozeUntil time.Time
	// SnoozeCount is how many times this episode has been deferred, manually
	// or automatically. Reset on dismiss.
	SnoozeCount int
}

// Snooze defers a ringing alarm by its configured snooze duration and
// returns the moment it will ring again. The stored record is untouched; the
// deferral lives only in the monitor's runtime state.
func (m *Monitor) Snooze(ctx context.Context, id uint64) (time.Time, error) {
	a, err := m.store.Get(id)
	if err != nil {
		return time.Time{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rs := m.active[id]
	if rs == nil || rs.state != StateRinging {
		return time.Time{}, fmt.Errorf("alarm %d: %w", id, ErrNotRinging)
	}

	rs.state = StateSnoozed
	rs.firedAt = time.Time{}
	rs.snoozeUntil = m.now().Add(time.Duration(a.SnoozeMinutes) * time.Minute)
	rs.snoozeCount++

	logger.InfoKV(ctx, "Alarm snoozed",
		"alarm_id", id,
		"minutes", a.SnoozeMinutes,
		"until", rs.snoozeUntil.Format("15:04:05"),
		"count", rs.snoozeCount)

	return rs.snoozeUntil, nil
}

// Dismiss stops a ringing or snoozed alarm until its next scheduled day and
// clears its snooze count.
func (m *Monitor) Dismiss(ctx context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active[id] == nil {
		return fmt.Errorf("alarm %d: %w", id, ErrNotRinging)
	}

	delete(m.active, id)

	logger.InfoKV(ctx, "Alarm dismissed", "alarm_id", id)

	return nil
}

// Status returns the runtime view of one alarm. The second return value is
// false when the alarm is idle or unknown.
func (m *Monitor) Status(id uint64) (Status, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rs := m.active[id]
	if rs == nil {
		return Status{ID: id, State: StateIdle}, false
	}

	return statusOf(id, rs), true
}

// StatusAll returns the runtime view of every non-idle alarm, keyed by id.
func (m *Monitor) StatusAll() map[uint64]Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make(map[uint64]Status, len(m.active))
	for id, rs := range m.active {
		result[id] = statusOf(id, rs)
	}

	return result
}

// statusOf converts internal runtime state into the exported view.
func statusOf(id uint64, rs *runtimeState) Status {
	return Status{
		ID:          id,
		State:       rs.state,
		FiredAt:     rs.firedAt,
		SnoozeUntil: rs.snoozeUntil,
		SnoozeCount: rs.snoozeCount,
	}
}
