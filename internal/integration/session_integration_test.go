package integration

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/service/clock"
)

// syncBuffer collects output from the session goroutine so assertions can
// read it concurrently.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// session is a running alarm clock application driven over a pipe, the way a
// user drives it over a terminal.
type session struct {
	dir   string
	out   *syncBuffer
	input *io.PipeWriter
	done  chan error
}

// startSession boots the whole application through clock.Run: settings file
// seeding, tone materialization, store, monitor, and menu wired exactly as
// the binary wires them.
func startSession(t *testing.T) *session {
	t.Helper()

	dir := t.TempDir()
	reader, writer := io.Pipe()
	out := new(syncBuffer)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- clock.Run(ctx, &clock.Options{
			ConfigPath:        filepath.Join(dir, "settings.yaml"),
			TonesDir:          filepath.Join(dir, "tones"),
			PollInterval:      50 * time.Millisecond,
			Silent:            true,
			SkipInstanceGuard: true,
			In:                reader,
			Out:               out,
		})
	}()

	t.Cleanup(func() {
		cancel()

		_ = writer.Close()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("session did not stop after cancellation")
		}
	})

	return &session{dir: dir, out: out, input: writer, done: done}
}

// send writes one input line as if the user typed it.
func (s *session) send(t *testing.T, line string) {
	t.Helper()

	_, err := io.WriteString(s.input, line+"\n")
	require.NoError(t, err)
}

// waitOutput blocks until the session has printed the given substring.
func (s *session) waitOutput(t *testing.T, substr string) {
	t.Helper()

	require.Eventuallyf(t, func() bool {
		return strings.Contains(s.out.String(), substr)
	}, 10*time.Second, 10*time.Millisecond, "expected output %q, got:\n%s", substr, s.out.String())
}

// currentMinute returns the wall-clock minute an alarm can safely target.
// Close to a minute rollover it waits for the next minute first, so the
// targeted minute cannot slip into the past between typing and saving.
func currentMinute(t *testing.T) string {
	t.Helper()

	now := time.Now()
	boundary := now.Truncate(time.Minute).Add(time.Minute)

	if remaining := boundary.Sub(now); remaining < 10*time.Second {
		time.Sleep(remaining + 200*time.Millisecond)

		now = time.Now()
	}

	return now.Format("15:04")
}

// TestSession_AlarmFiresAndIsDismissed drives the application end to end:
// create an alarm for the current minute, wait for the monitor to fire it
// through the simulated player, dismiss it from the ringing banner, and exit.
func TestSession_AlarmFiresAndIsDismissed(t *testing.T) {
	t.Parallel()

	s := startSession(t)
	s.waitOutput(t, "Enter your choice (1-6): ")

	alarmAt := currentMinute(t)

	s.send(t, "1")
	s.waitOutput(t, "Enter alarm time")
	s.send(t, alarmAt)
	s.waitOutput(t, "Select alarm tone:")
	s.send(t, "1")
	s.waitOutput(t, "Select snooze duration:")
	s.send(t, "1")
	s.waitOutput(t, "Enter alarm label")
	s.send(t, "Morning run")
	s.waitOutput(t, "Alarm 1 set.")

	// The alarm targets the current minute, so the next poll fires it.
	s.waitOutput(t, "ALARM RINGING: Morning run ("+alarmAt+")")
	s.waitOutput(t, "♪ BEEP BEEP BEEP ♪")

	s.send(t, "1")
	s.waitOutput(t, "Alarm dismissed.")

	s.send(t, "6")
	s.waitOutput(t, "Goodbye! All alarms have been stopped.")

	err := <-s.done
	require.NoError(t, err)
	s.done <- err
}

// TestSession_MaterializesSettingsAndTones checks the first-start side
// effects on disk: a settings file and the built-in tone files.
func TestSession_MaterializesSettingsAndTones(t *testing.T) {
	t.Parallel()

	s := startSession(t)
	s.waitOutput(t, "Enter your choice (1-6): ")

	// Started fresh, so defaults were written out.
	_, err := os.Stat(filepath.Join(s.dir, "settings.yaml"))
	require.NoError(t, err)

	for _, name := range []string{"beep.wav", "bell.wav", "chime.wav", "buzzer.wav"} {
		_, err = os.Stat(filepath.Join(s.dir, "tones", name))
		require.NoError(t, err, name)
	}

	s.send(t, "6")
	s.waitOutput(t, "Goodbye! All alarms have been stopped.")

	err = <-s.done
	require.NoError(t, err)
	s.done <- err
}
