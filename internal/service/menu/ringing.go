package menu

import (
	"context"
	"errors"
	"strings"

	"github.com/oshokin/alarm-clock/internal/service/monitor"
)

// handleEvent presents a monitor notification that arrived while the menu
// was waiting at the main prompt.
func (m *Menu) handleEvent(ctx context.Context, ev monitor.Event) {
	switch ev.Kind {
	case monitor.EventFired:
		m.presentRinging(ctx, ev)
	case monitor.EventAutoSnoozed:
		// Skip stale notifications: the alarm may have been dismissed from
		// its own banner while this one waited in the queue.
		st, ok := m.monitor.Status(ev.Alarm.ID)
		if !ok || st.State != monitor.StateSnoozed {
			return
		}

		m.println()
		m.warnf("Alarm %q got no response and was snoozed until %s.",
			ev.Alarm.Label, ev.Until.Format("15:04"))
	}
}

// presentRinging shows the ringing banner and collects the dismiss or
// snooze decision. An empty line is a quick snooze. Notifications for other
// alarms queue up until this one is answered.
func (m *Menu) presentRinging(ctx context.Context, ev monitor.Event) {
	id := ev.Alarm.ID

	// The firing may have resolved while the notification sat in the queue:
	// auto-snoozed, disabled, or deleted.
	st, ok := m.monitor.Status(id)
	if !ok {
		return
	}

	if st.State == monitor.StateSnoozed {
		m.println()
		m.warnf("Alarm %q rang while you were busy and was snoozed until %s.",
			ev.Alarm.Label, st.SnoozeUntil.Format("15:04"))

		return
	}

	m.println()
	ringingColor.Fprintf(m.out, "ALARM RINGING: %s (%s)\n", ev.Alarm.Label, ev.Alarm.Time)
	m.println("1. Dismiss")
	m.printf("2. Snooze (%d minutes)\n", ev.Alarm.SnoozeMinutes)

	for {
		m.printf("Enter your choice (1-2) or press Enter to snooze: ")

		line, ok := m.readLine(ctx)
		if !ok {
			return
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "1", "dismiss", "d":
			if err := m.monitor.Dismiss(ctx, id); err != nil {
				m.warnf("Alarm already handled.")
				return
			}

			m.successf("Alarm dismissed.")

			return
		case "", "2", "snooze", "s":
			until, err := m.monitor.Snooze(ctx, id)
			if err != nil {
				if errors.Is(err, monitor.ErrNotRinging) {
					m.warnf("Alarm was already snoozed automatically.")
				} else {
					m.errorf("Could not snooze the alarm: %v", err)
				}

				return
			}

			st, _ = m.monitor.Status(id)
			m.successf("Snoozed for %d minutes (rings again at %s). Snooze count: %d.",
				ev.Alarm.SnoozeMinutes, until.Format("15:04"), st.SnoozeCount)

			return
		default:
			m.errorf("Invalid choice. Enter 1 or 2.")
		}
	}
}
