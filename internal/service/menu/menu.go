package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/monitor"
	"github.com/oshokin/alarm-clock/internal/store"
)

// Config collects the dependencies of the interactive menu.
type Config struct {
	// Store is the shared alarm collection.
	Store *store.Store
	// Monitor steers firings and reports transient alarm status.
	Monitor *monitor.Monitor
	// In supplies user input, os.Stdin when nil.
	In io.Reader
	// Out receives everything the user sees, os.Stdout when nil.
	Out io.Writer
	// TonesDir locates the built-in tone files.
	TonesDir string
	// DefaultSnooze is the snooze duration in minutes offered on empty input
	// when a new alarm is created.
	DefaultSnooze int
	// Now supplies wall-clock time for the header, defaulting to time.Now.
	Now func() time.Time
}

// Menu is the foreground interactive loop. It owns the terminal: every
// prompt, listing, and ringing banner goes through its writer, while
// operational logging stays on the logger. Input lines and monitor
// notifications are multiplexed, so an alarm can interrupt the main prompt
// the moment it fires.
type Menu struct {
	store         *store.Store
	monitor       *monitor.Monitor
	in            io.Reader
	out           io.Writer
	tonesDir      string
	defaultSnooze int
	now           func() time.Time

	lines  chan string
	events <-chan monitor.Event
}

// New builds a Menu from cfg.
func New(cfg Config) *Menu {
	if cfg.In == nil {
		cfg.In = os.Stdin
	}

	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.DefaultSnooze <= 0 {
		cfg.DefaultSnooze = domain.DefaultSnoozeMinutes
	}

	return &Menu{
		store:         cfg.Store,
		monitor:       cfg.Monitor,
		in:            cfg.In,
		out:           cfg.Out,
		tonesDir:      cfg.TonesDir,
		defaultSnooze: cfg.DefaultSnooze,
		now:           cfg.Now,
		events:        cfg.Monitor.Events(),
	}
}

// Run serves the menu until the user exits, the input closes, or ctx is
// canceled. Call it once per Menu.
//
//nolint:cyclop // Dispatch is a flat switch; splitting would reduce clarity.
func (m *Menu) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "menu")

	m.lines = make(chan string)
	go m.readLines(ctx, m.lines)

	m.println("Welcome to Alarm Clock!")

	for {
		m.printHeader()

		line, ok := m.nextCommand(ctx)
		if !ok {
			logger.Info(ctx, "Input closed or context canceled, exiting")
			return nil
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "1":
			m.addAlarm(ctx)
		case "2":
			m.listAlarms()
		case "3":
			m.toggleAlarm(ctx)
		case "4":
			m.deleteAlarm(ctx)
		case "5":
			m.printHelp()
		case "6", "exit", "quit", "q":
			m.println("Goodbye! All alarms have been stopped.")
			logger.Info(ctx, "User exited")

			return nil
		case "":
			// Just redraw the header with a fresh time.
		default:
			m.errorf("Invalid choice. Please select 1-6.")
		}
	}
}

// nextCommand waits for the next input line at the main prompt, presenting
// monitor notifications as they arrive. The prompt is printed again after
// each interruption.
func (m *Menu) nextCommand(ctx context.Context) (string, bool) {
	for {
		m.printf("Enter your choice (1-6): ")

		select {
		case <-ctx.Done():
			return "", false
		case ev, ok := <-m.events:
			if !ok {
				// Monitor gone; a nil channel blocks forever so the menu
				// keeps serving store commands.
				m.events = nil
				continue
			}

			m.handleEvent(ctx, ev)
		case line, ok := <-m.lines:
			if !ok {
				return "", false
			}

			return line, true
		}
	}
}

// readLine waits for the next input line only. Flows in progress use it so
// notifications queue up instead of interleaving with half-answered prompts.
func (m *Menu) readLine(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-m.lines:
		if !ok {
			return "", false
		}

		return line, true
	}
}

// readLines pumps input lines into the channel until the reader is drained
// or ctx is canceled.
func (m *Menu) readLines(ctx context.Context, lines chan<- string) {
	scanner := bufio.NewScanner(m.in)

	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}

	close(lines)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(args ...any) {
	fmt.Fprintln(m.out, args...)
}
