package monitor

import (
	"context"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// EventKind distinguishes the notifications the monitor emits.
type EventKind int

const (
	// EventFired signals an alarm started ringing.
	EventFired EventKind = iota
	// EventAutoSnoozed signals a ringing alarm stayed unanswered past the
	// auto-snooze window and was deferred automatically.
	EventAutoSnoozed
)

// Event is a single firing notification delivered to the foreground loop.
type Event struct {
	// Kind tells what happened.
	Kind EventKind
	// Alarm is a snapshot of the record at the moment of the transition.
	Alarm *domain.Alarm
	// At is the wall-clock moment of the transition.
	At time.Time
	// Until is the re-fire deadline, set only for EventAutoSnoozed.
	Until time.Time
}

// emit queues ev without blocking the polling loop. When the foreground is
// too far behind and the buffer is full, the notification is dropped with a
// warning; the alarm itself keeps ringing and can still be handled from the
// menu.
func (m *Monitor) emit(ctx context.Context, ev Event) {
	select {
	case m.events <- ev:
	default:
		logger.WarnKV(ctx, "Event buffer full, dropping notification", "alarm_id", ev.Alarm.ID)
	}
}
