package menu

import (
	"context"
	"errors"
	"strconv"
	"strings"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/store"
	"github.com/oshokin/alarm-clock/internal/tones"
)

// addAlarm walks the user through creating an alarm: time, tone, snooze
// duration, and an optional label. Every step re-prompts on bad input.
func (m *Menu) addAlarm(ctx context.Context) {
	m.title("SET NEW ALARM")

	t, ok := m.promptTime(ctx)
	if !ok {
		return
	}

	tone, ok := m.promptTone(ctx)
	if !ok {
		return
	}

	snooze, ok := m.promptSnooze(ctx)
	if !ok {
		return
	}

	m.printf("Enter alarm label (optional): ")

	label, ok := m.readLine(ctx)
	if !ok {
		return
	}

	id, err := m.store.Add(&domain.Alarm{
		Time:          t,
		Label:         strings.TrimSpace(label),
		Tone:          tone,
		Enabled:       true,
		SnoozeMinutes: snooze,
	})
	if err != nil {
		m.errorf("Could not save the alarm: %v", err)
		return
	}

	// Read it back so the confirmation shows the defaulted label.
	a, err := m.store.Get(id)
	if err != nil {
		m.errorf("Could not read back the alarm: %v", err)
		return
	}

	m.println()
	m.successf("Alarm %d set.", id)
	m.printf("  Time:   %s\n", a.Time)
	m.printf("  Tone:   %s\n", displayTone(a.Tone))
	m.printf("  Snooze: %d minutes\n", a.SnoozeMinutes)
	m.printf("  Label:  %s\n", a.Label)
}

// promptTime asks for a wall-clock time until the input parses.
func (m *Menu) promptTime(ctx context.Context) (domain.TimeOfDay, bool) {
	for {
		m.printf("Enter alarm time (HH:MM in 24-hour format): ")

		line, ok := m.readLine(ctx)
		if !ok {
			return domain.TimeOfDay{}, false
		}

		t, err := domain.ParseTimeOfDay(line)
		if err != nil {
			m.errorf("Invalid time. Please use HH:MM (e.g. 14:30).")
			continue
		}

		return t, true
	}
}

// promptTone asks the user to pick a built-in tone or enter a custom file.
func (m *Menu) promptTone(ctx context.Context) (string, bool) {
	builtins := tones.Builtins()
	customChoice := len(builtins) + 1

	m.println()
	m.println("Select alarm tone:")

	for i, name := range builtins {
		m.printf("%d. %s\n", i+1, titleCase(name))
	}

	m.printf("%d. Custom audio file\n", customChoice)

	for {
		m.printf("Enter your choice (1-%d): ", customChoice)

		line, ok := m.readLine(ctx)
		if !ok {
			return "", false
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || choice < 1 || choice > customChoice {
			m.errorf("Invalid choice. Please select 1-%d.", customChoice)
			continue
		}

		if choice <= len(builtins) {
			return builtins[choice-1], true
		}

		return m.promptCustomTone(ctx)
	}
}

// promptCustomTone asks for a path to an audio file. When the path does not
// resolve, the user may fall back to the default tone instead of retrying.
func (m *Menu) promptCustomTone(ctx context.Context) (string, bool) {
	for {
		m.printf("Enter path to a custom audio file (%s): ",
			strings.Join(tones.SupportedExtensions(), ", "))

		line, ok := m.readLine(ctx)
		if !ok {
			return "", false
		}

		ref := strings.TrimSpace(line)

		if _, err := tones.Resolve(m.tonesDir, ref); err != nil {
			m.errorf("%v", err)
			m.printf("Use the default tone instead? (y/n): ")

			answer, ok := m.readLine(ctx)
			if !ok {
				return "", false
			}

			if strings.EqualFold(strings.TrimSpace(answer), "y") {
				return tones.Beep, true
			}

			continue
		}

		m.successf("Custom tone selected: %s", ref)

		return ref, true
	}
}

// promptSnooze asks the user to pick a snooze preset or enter a custom
// duration. Empty input picks the configured default.
func (m *Menu) promptSnooze(ctx context.Context) (int, bool) {
	customChoice := len(domain.SnoozePresets) + 1

	m.println()
	m.println("Select snooze duration:")

	for i, preset := range domain.SnoozePresets {
		m.printf("%d. %d minutes\n", i+1, preset)
	}

	m.printf("%d. Custom duration\n", customChoice)

	for {
		m.printf("Enter your choice (1-%d) or press Enter for %d minutes: ",
			customChoice, m.defaultSnooze)

		line, ok := m.readLine(ctx)
		if !ok {
			return 0, false
		}

		if strings.TrimSpace(line) == "" {
			return m.defaultSnooze, true
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || choice < 1 || choice > customChoice {
			m.errorf("Invalid choice. Please select 1-%d.", customChoice)
			continue
		}

		if choice <= len(domain.SnoozePresets) {
			return domain.SnoozePresets[choice-1], true
		}

		minutes, ok := m.promptCustomSnooze(ctx)
		if !ok {
			return 0, false
		}

		return minutes, true
	}
}

// promptCustomSnooze asks for a snooze duration until it is a number within
// bounds.
func (m *Menu) promptCustomSnooze(ctx context.Context) (int, bool) {
	for {
		m.printf("Enter custom snooze duration (%d-%d minutes): ",
			domain.MinSnoozeMinutes, domain.MaxSnoozeMinutes)

		line, ok := m.readLine(ctx)
		if !ok {
			return 0, false
		}

		minutes, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			m.errorf("Please enter a valid number.")
			continue
		}

		if err := domain.ValidateSnoozeMinutes(minutes); err != nil {
			m.errorf("Please enter a value between %d and %d minutes.",
				domain.MinSnoozeMinutes, domain.MaxSnoozeMinutes)
			continue
		}

		return minutes, true
	}
}

// toggleAlarm flips the enabled flag of an alarm picked by id.
func (m *Menu) toggleAlarm(ctx context.Context) {
	if m.store.Len() == 0 {
		m.println("No alarms to manage. Set an alarm first.")
		return
	}

	m.listAlarms()

	for {
		id, ok := m.promptID(ctx, "Enter alarm id to enable or disable (or press Enter to cancel): ")
		if !ok {
			return
		}

		updated, err := m.store.Toggle(id)
		if errors.Is(err, store.ErrNotFound) {
			m.errorf("No alarm with id %d.", id)
			continue
		}

		if err != nil {
			m.errorf("Could not update the alarm: %v", err)
			return
		}

		state := "disabled"
		if updated.Enabled {
			state = "enabled"
		}

		m.successf("Alarm %d %s.", id, state)

		return
	}
}

// deleteAlarm removes an alarm picked by id.
func (m *Menu) deleteAlarm(ctx context.Context) {
	if m.store.Len() == 0 {
		m.println("No alarms to delete. Set an alarm first.")
		return
	}

	m.listAlarms()

	for {
		id, ok := m.promptID(ctx, "Enter alarm id to delete (or press Enter to cancel): ")
		if !ok {
			return
		}

		a, err := m.store.Get(id)
		if errors.Is(err, store.ErrNotFound) {
			m.errorf("No alarm with id %d.", id)
			continue
		}

		if err != nil {
			m.errorf("Could not delete the alarm: %v", err)
			return
		}

		if err = m.store.Delete(id); err != nil {
			m.errorf("Could not delete the alarm: %v", err)
			return
		}

		m.successf("Alarm %q deleted.", a.Label)

		return
	}
}

// promptID reads an alarm id. An empty line cancels; the second return
// value is false on cancel, closed input, or context cancellation.
func (m *Menu) promptID(ctx context.Context, question string) (uint64, bool) {
	for {
		m.printf("%s", question)

		line, ok := m.readLine(ctx)
		if !ok {
			return 0, false
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return 0, false
		}

		id, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			m.errorf("Please enter a valid number.")
			continue
		}

		return id, true
	}
}
