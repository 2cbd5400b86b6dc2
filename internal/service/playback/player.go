package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Player produces an audible rendition of an alarm tone.
type Player interface {
	// Play renders the audio file at path and returns when playback finishes.
	// Implementations must honor context cancellation so a stuck backend can
	// never stall the caller.
	Play(ctx context.Context, path string) error
	// Name identifies the backend for logs and the degraded-mode notice.
	Name() string
}

// ErrUnavailable is returned by Detect when no audio backend is present on
// this machine. Callers substitute the simulated player and report the
// degraded mode once.
var ErrUnavailable = errors.New("no audio playback backend available")

// Simulated playback pacing: five pulses half a second apart, mirroring a
// short ringing burst.
const (
	defaultPulseCount    = 5
	defaultPulseInterval = 500 * time.Millisecond
)

// SimulatedPlayer is the degraded-mode collaborator used when no audio
// backend exists or a real playback attempt fails. It prints beep pulses to
// the terminal instead of producing sound and never fails.
type SimulatedPlayer struct {
	// out receives the beep pulses; the menu's writer in production.
	out io.Writer
	// pulses is the number of printed beep lines per firing.
	pulses int
	// interval is the pause between pulses.
	interval time.Duration
}

// NewSimulated creates a simulated player writing beep pulses to w.
func NewSimulated(w io.Writer) *SimulatedPlayer {
	return &SimulatedPlayer{
		out:      w,
		pulses:   defaultPulseCount,
		interval: defaultPulseInterval,
	}
}

// Play prints beep pulses instead of producing sound. It stops early when
// ctx is canceled.
func (p *SimulatedPlayer) Play(ctx context.Context, _ string) error {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for i := 0; i < p.pulses; i++ {
		if _, err := fmt.Fprintln(p.out, "♪ BEEP BEEP BEEP ♪"); err != nil {
			return fmt.Errorf("write simulated beep: %w", err)
		}

		if i == p.pulses-1 {
			break
		}

		timer.Reset(p.interval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return nil
}

// Name identifies the simulated backend.
func (p *SimulatedPlayer) Name() string {
	return "simulated"
}
