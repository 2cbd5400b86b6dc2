package monitor

import (
	"context"
	"sync"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/playback"
	"github.com/oshokin/alarm-clock/internal/store"
)

const (
	// DefaultInterval is the polling period between wall-clock checks.
	DefaultInterval = time.Second
	// DefaultPlaybackTimeout bounds a single tone playback invocation.
	DefaultPlaybackTimeout = 30 * time.Second

	// eventBufferSize is the capacity of the events channel. Firings are rare
	// relative to polling, so a small buffer absorbs bursts while the
	// foreground loop is busy prompting.
	eventBufferSize = 16
)

// Config collects the dependencies and tunables for a Monitor.
type Config struct {
	// Store is the shared alarm collection the monitor polls.
	Store *store.Store
	// Player performs tone playback when an alarm fires.
	Player playback.Player
	// Fallback substitutes for Player when a firing's playback fails.
	// Defaults to Player itself when nil.
	Fallback playback.Player
	// Resolve maps a stored tone reference to a playable file path.
	Resolve store.ToneResolver
	// Interval sets the polling period.
	Interval time.Duration
	// PlaybackTimeout bounds a single playback invocation.
	PlaybackTimeout time.Duration
	// AutoSnoozeAfter is how long a ringing alarm stays unanswered before it
	// is snoozed automatically. Values <= 0 disable auto-snooze.
	AutoSnoozeAfter time.Duration
	// Now supplies wall-clock time, defaulting to time.Now.
	Now func() time.Time
}

// Monitor is the background poller that compares wall-clock time against the
// stored alarms and drives each firing through its runtime lifecycle. All
// transient state (ringing flags, snooze deadlines, snooze counts) lives
// here; stored alarm records are never mutated by a firing.
type Monitor struct {
	store           *store.Store
	player          playback.Player
	fallback        playback.Player
	resolveTone     store.ToneResolver
	interval        time.Duration
	playbackTimeout time.Duration
	autoSnoozeAfter time.Duration
	now             func() time.Time

	// events carries firing notifications to the foreground loop.
	events chan Event
	// playing tracks in-flight playback goroutines for shutdown.
	playing sync.WaitGroup

	// mu guards the runtime maps below.
	mu sync.Mutex
	// active holds the runtime state of ringing and snoozed alarms.
	// Absence means idle.
	active map[uint64]*runtimeState
	// lastFired maps alarm ids to the minute they last started ringing, so
	// sub-minute polling cannot fire the same alarm twice in one minute.
	lastFired map[uint64]time.Time
}

// runtimeState tracks one alarm's transient firing lifecycle.
type runtimeState struct {
	state       State
	firedAt     time.Time
	snoozeUntil time.Time
	snoozeCount int
}

// New builds a Monitor from cfg, applying defaults for unset tunables.
func New(cfg Config) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}

	if cfg.PlaybackTimeout <= 0 {
		cfg.PlaybackTimeout = DefaultPlaybackTimeout
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.Fallback == nil {
		cfg.Fallback = cfg.Player
	}

	return &Monitor{
		store:           cfg.Store,
		player:          cfg.Player,
		fallback:        cfg.Fallback,
		resolveTone:     cfg.Resolve,
		interval:        cfg.Interval,
		playbackTimeout: cfg.PlaybackTimeout,
		autoSnoozeAfter: cfg.AutoSnoozeAfter,
		now:             cfg.Now,
		events:          make(chan Event, eventBufferSize),
		active:          make(map[uint64]*runtimeState),
		lastFired:       make(map[uint64]time.Time),
	}
}

// Events returns the channel carrying firing notifications. The channel is
// closed when Run returns.
func (m *Monitor) Events() <-chan Event {
	return m.events
}

// Run polls the store until ctx is canceled. Call it once per Monitor.
func (m *Monitor) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "monitor")

	logger.InfoKV(ctx, "Monitoring alarms",
		"interval", m.interval.String(),
		"player", m.player.Name())

	// Setup polling ticker with fixed interval.
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Main polling loop until context cancellation.
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")

			// Let in-flight playback notice the cancellation before the
			// events channel closes.
			m.playing.Wait()
			close(m.events)

			return nil
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

// tick runs one polling pass: it reconciles runtime state with the current
// store contents, promotes due snoozes and unanswered firings, and starts
// newly matching alarms.
func (m *Monitor) tick(ctx context.Context) {
	now := m.now()
	alarms := m.store.List()

	var (
		fired []*domain.Alarm
		auto  []Event
	)

	m.mu.Lock()

	m.reconcile(alarms)

	minute := now.Truncate(time.Minute)

	for _, a := range alarms {
		rs := m.active[a.ID]

		switch {
		case rs == nil:
			if !a.Enabled || !a.Time.Matches(now) {
				continue
			}

			if last, ok := m.lastFired[a.ID]; ok && last.Equal(minute) {
				continue
			}

			m.lastFired[a.ID] = minute
			m.active[a.ID] = &runtimeState{state: StateRinging, firedAt: now}
			fired = append(fired, a)

		case rs.state == StateSnoozed:
			if now.Before(rs.snoozeUntil) {
				continue
			}

			rs.state = StateRinging
			rs.firedAt = now
			rs.snoozeUntil = time.Time{}
			m.lastFired[a.ID] = minute
			fired = append(fired, a)

		case rs.state == StateRinging:
			if m.autoSnoozeAfter <= 0 || now.Sub(rs.firedAt) < m.autoSnoozeAfter {
				continue
			}

			rs.state = StateSnoozed
			rs.firedAt = time.Time{}
			rs.snoozeUntil = now.Add(time.Duration(a.SnoozeMinutes) * time.Minute)
			rs.snoozeCount++
			auto = append(auto, Event{Kind: EventAutoSnoozed, Alarm: a, At: now, Until: rs.snoozeUntil})
		}
	}

	m.mu.Unlock()

	for _, a := range fired {
		logger.InfoKV(ctx, "Alarm ringing",
			"alarm_id", a.ID,
			"label", a.Label,
			"time", a.Time.String())

		m.startPlayback(ctx, a)
		m.emit(ctx, Event{Kind: EventFired, Alarm: a, At: now})
	}

	for _, ev := range auto {
		logger.InfoKV(ctx, "Alarm snoozed automatically",
			"alarm_id", ev.Alarm.ID,
			"until", ev.Until.Format("15:04:05"))

		m.emit(ctx, ev)
	}
}

// reconcile drops runtime state for alarms that were deleted or disabled
// since the last pass. Disabling a ringing or snoozed alarm silences it.
// Callers must hold mu.
func (m *Monitor) reconcile(alarms []*domain.Alarm) {
	known := make(map[uint64]*domain.Alarm, len(alarms))
	for _, a := range alarms {
		known[a.ID] = a
	}

	for id := range m.active {
		a, ok := known[id]
		if !ok || !a.Enabled {
			delete(m.active, id)
		}
	}

	for id := range m.lastFired {
		if _, ok := known[id]; !ok {
			delete(m.lastFired, id)
		}
	}
}

// startPlayback plays the alarm's tone on a separate goroutine so a slow or
// stuck backend cannot stall the polling loop. A failed playback is logged
// and handed to the fallback player for this firing only.
func (m *Monitor) startPlayback(ctx context.Context, a *domain.Alarm) {
	m.playing.Add(1)

	go func() {
		defer m.playing.Done()

		playCtx, cancel := context.WithTimeout(ctx, m.playbackTimeout)
		defer cancel()

		path := a.Tone

		if m.resolveTone != nil {
			resolved, err := m.resolveTone(a.Tone)
			if err != nil {
				logger.WarnKV(ctx, "Tone no longer resolvable, using fallback player",
					"alarm_id", a.ID,
					"tone", a.Tone,
					"error", err)

				_ = m.fallback.Play(playCtx, a.Tone)

				return
			}

			path = resolved
		}

		err := m.player.Play(playCtx, path)
		if err == nil || playCtx.Err() != nil {
			return
		}

		logger.ErrorKV(ctx, "Playback failed",
			"alarm_id", a.ID,
			"player", m.player.Name(),
			"error", err)

		if m.fallback == m.player {
			return
		}

		if err = m.fallback.Play(playCtx, path); err != nil && playCtx.Err() == nil {
			logger.ErrorKV(ctx, "Fallback playback failed", "alarm_id", a.ID, "error", err)
		}
	}()
}
