package menu

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/oshokin/alarm-clock/internal/service/monitor"
	"github.com/oshokin/alarm-clock/internal/tones"
)

// lineWidth is the width of menu dividers and centered titles.
const lineWidth = 50

var divider = strings.Repeat("=", lineWidth)

var (
	headingColor  = color.New(color.FgCyan, color.Bold)
	successColor  = color.New(color.FgGreen)
	warningColor  = color.New(color.FgYellow)
	errorColor    = color.New(color.FgRed)
	enabledColor  = color.New(color.FgGreen, color.Bold)
	disabledColor = color.New(color.FgRed)
	ringingColor  = color.New(color.FgRed, color.Bold)
)

// printHeader draws the main menu with the current time and the number of
// enabled alarms.
func (m *Menu) printHeader() {
	m.println()
	m.println(divider)
	headingColor.Fprintln(m.out, centered("ALARM CLOCK MENU"))
	m.println(divider)
	m.println("1. Set new alarm")
	m.println("2. View alarms")
	m.println("3. Enable or disable an alarm")
	m.println("4. Delete an alarm")
	m.println("5. Help")
	m.println("6. Exit")
	m.println(divider)
	m.printf("Current time: %s | Active alarms: %d\n",
		m.now().Format("15:04:05"), m.store.EnabledCount())
}

// title draws a section heading between dividers.
func (m *Menu) title(text string) {
	m.println()
	m.println(divider)
	headingColor.Fprintln(m.out, centered(text))
	m.println(divider)
}

// listAlarms renders every stored alarm with its enabled flag and, when the
// monitor holds transient state for it, the ringing or snooze details.
func (m *Menu) listAlarms() {
	m.title("YOUR ALARMS")

	alarms := m.store.List()
	if len(alarms) == 0 {
		m.println("No alarms set. Use option 1 to add one.")
		return
	}

	statuses := m.monitor.StatusAll()

	for _, a := range alarms {
		status := enabledColor.Sprint("ENABLED")
		if !a.Enabled {
			status = disabledColor.Sprint("DISABLED")
		}

		extra := ""

		if st, ok := statuses[a.ID]; ok {
			switch st.State {
			case monitor.StateRinging:
				extra = " " + ringingColor.Sprint("RINGING")
			case monitor.StateSnoozed:
				extra = fmt.Sprintf(" (snoozed %dx, rings at %s)",
					st.SnoozeCount, st.SnoozeUntil.Format("15:04"))
			}
		}

		m.printf("%d. %s\n", a.ID, a.Label)
		m.printf("   Time: %s | Status: %s%s\n", a.Time, status, extra)
		m.printf("   Tone: %s | Snooze: %d minutes\n", displayTone(a.Tone), a.SnoozeMinutes)
		m.println(strings.Repeat("-", 40))
	}
}

// printHelp shows the usage notes.
func (m *Menu) printHelp() {
	m.title("ALARM CLOCK HELP")

	section := func(heading string, body ...string) {
		headingColor.Fprintln(m.out, heading)

		for _, line := range body {
			m.println("  " + line)
		}

		m.println()
	}

	section("Setting alarms:",
		"Times use the 24-hour clock (e.g. 14:30 for 2:30 PM).",
		"Pick one of the built-in tones or point at your own audio file.",
		"Snooze can be 5, 10, 15 or any number of minutes from 1 to 60.",
		"Labels are optional; unlabeled alarms are named after their time.")

	section("Tones:",
		fmt.Sprintf("Built-in tones (%s) live in %q.",
			strings.Join(tones.Builtins(), ", "), m.tonesDir),
		fmt.Sprintf("Supported custom formats: %s.",
			strings.Join(tones.SupportedExtensions(), ", ")))

	section("Snooze:",
		"Snoozing postpones a ringing alarm without changing its daily time.",
		"A ringing alarm that gets no response is snoozed automatically",
		"after a short wait. The count resets when the alarm is dismissed.")

	section("While an alarm rings:",
		"Press Enter for a quick snooze, or dismiss to stop it until the",
		"same time tomorrow. Ctrl+C exits and silences everything.")
}

// centered pads text to sit in the middle of a divider-width line.
func centered(text string) string {
	pad := (lineWidth - len(text)) / 2
	if pad < 0 {
		pad = 0
	}

	return strings.Repeat(" ", pad) + text
}

// displayTone renders a tone reference for listings: built-in names as-is,
// custom files by their base name.
func displayTone(ref string) string {
	if tones.IsBuiltin(ref) {
		return strings.ToLower(strings.TrimSpace(ref))
	}

	return filepath.Base(ref)
}

// titleCase capitalizes a tone name for selection menus.
func titleCase(name string) string {
	if name == "" {
		return name
	}

	return strings.ToUpper(name[:1]) + name[1:]
}

func (m *Menu) successf(format string, args ...any) {
	successColor.Fprintf(m.out, format+"\n", args...)
}

func (m *Menu) warnf(format string, args ...any) {
	warningColor.Fprintf(m.out, format+"\n", args...)
}

func (m *Menu) errorf(format string, args ...any) {
	errorColor.Fprintf(m.out, format+"\n", args...)
}
