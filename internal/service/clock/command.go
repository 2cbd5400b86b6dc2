package clock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-ps"
	"golang.org/x/sync/errgroup"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/service/menu"
	"github.com/oshokin/alarm-clock/internal/service/monitor"
	"github.com/oshokin/alarm-clock/internal/service/playback"
	"github.com/oshokin/alarm-clock/internal/store"
	"github.com/oshokin/alarm-clock/internal/tones"
)

// Options configures the alarm clock service.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// TonesDir overrides the tone folder from configuration when set.
	TonesDir string
	// PollInterval overrides the polling interval from configuration when
	// positive.
	PollInterval time.Duration
	// Silent forces simulated playback regardless of available backends.
	Silent bool
	// SkipInstanceGuard disables the duplicate-process check for tests.
	SkipInstanceGuard bool
	// In overrides the input stream for tests, os.Stdin when nil.
	In io.Reader
	// Out overrides the output stream for tests, os.Stdout when nil.
	Out io.Writer
}

// errAlreadyRunning indicates another alarm clock process owns the alarms.
var errAlreadyRunning = errors.New("another alarm-clock instance is already running")

// Run wires the store, monitor, and menu together and serves them until the
// user exits or ctx is canceled.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "alarm-clock")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	// Materialize a settings file on first start so users have something to
	// edit, before command-line overrides are applied.
	seedConfigFile(ctx, opts.ConfigPath, cfg)

	applyOverrides(cfg, opts)

	if !opts.SkipInstanceGuard {
		// Two concurrent pollers would ring every alarm twice.
		if err = ensureSingleInstance(); err != nil {
			return err
		}
	}

	if err = tones.EnsureDefaults(cfg.TonesDir); err != nil {
		return fmt.Errorf("prepare tone folder: %w", err)
	}

	resolveTone := func(ref string) (string, error) {
		return tones.Resolve(cfg.TonesDir, ref)
	}

	alarms := store.New(resolveTone)
	player, fallback := pickPlayer(ctx, cfg, opts.Out)

	mon := monitor.New(monitor.Config{
		Store:           alarms,
		Player:          player,
		Fallback:        fallback,
		Resolve:         resolveTone,
		Interval:        cfg.PollInterval,
		PlaybackTimeout: cfg.PlaybackTimeout,
		AutoSnoozeAfter: cfg.AutoSnoozeAfter,
	})

	ui := menu.New(menu.Config{
		Store:         alarms,
		Monitor:       mon,
		In:            opts.In,
		Out:           opts.Out,
		TonesDir:      cfg.TonesDir,
		DefaultSnooze: cfg.DefaultSnoozeMinutes,
	})

	logger.InfoKV(ctx, "Alarm clock starting",
		"tones_dir", cfg.TonesDir,
		"poll_interval", cfg.PollInterval.String())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, runCtx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		return mon.Run(runCtx)
	})

	g.Go(func() error {
		// The menu returning means the user exited; stop the monitor too.
		defer cancel()

		return ui.Run(runCtx)
	})

	return g.Wait()
}

// seedConfigFile writes the validated defaults to path when no settings
// file exists yet. Failure to write is an inconvenience, not a reason to
// refuse to start.
func seedConfigFile(ctx context.Context, path string, cfg *config.Config) {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if _, err := os.Stat(path); err == nil || !errors.Is(err, os.ErrNotExist) {
		return
	}

	if err := config.Save(path, cfg); err != nil {
		logger.WarnKV(ctx, "Could not write default settings file", "path", path, "error", err)
		return
	}

	logger.InfoKV(ctx, "Wrote default settings file", "path", path)
}

// applyOverrides lets command-line flags win over file settings.
func applyOverrides(cfg *config.Config, opts *Options) {
	if opts.TonesDir != "" {
		cfg.TonesDir = opts.TonesDir
	}

	if opts.PollInterval > 0 {
		cfg.PollInterval = opts.PollInterval
	}

	if opts.Silent {
		cfg.Silent = true
	}
}

// pickPlayer chooses the playback backend. Degraded or silent mode is
// reported once here, never per firing. The simulated player shares the
// menu's writer so its pulses land on the user's terminal.
func pickPlayer(ctx context.Context, cfg *config.Config, out io.Writer) (playback.Player, playback.Player) {
	if out == nil {
		out = os.Stdout
	}

	simulated := playback.NewSimulated(out)

	if cfg.Silent {
		logger.Info(ctx, "Silent mode, alarms print instead of playing audio")
		return simulated, simulated
	}

	command, err := playback.Detect()
	if err != nil {
		logger.WarnKV(ctx, "No audio backend found, playback will be simulated", "error", err)
		return simulated, simulated
	}

	logger.InfoKV(ctx, "Audio backend detected", "player", command.Name())

	return command, simulated
}

// ensureSingleInstance refuses to start when another process with the same
// executable name is already running.
func ensureSingleInstance() error {
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve own executable: %w", err)
	}

	name := filepath.Base(executable)

	processList, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == name {
			return fmt.Errorf("%w (pid %d)", errAlreadyRunning, process.Pid())
		}
	}

	return nil
}
