package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Config holds the user-tunable settings of the alarm clock.
type Config struct {
	// TonesDir is the directory where built-in tones are materialized and
	// looked up. Custom tones are absolute or relative file paths and do not
	// go through this directory.
	TonesDir string `yaml:"tones_dir"`
	// DefaultSnoozeMinutes is the snooze duration offered first when a new
	// alarm is created.
	DefaultSnoozeMinutes int `yaml:"default_snooze_minutes"`
	// PollInterval is how often the monitor compares wall-clock time against
	// enabled alarms.
	PollInterval time.Duration `yaml:"poll_interval"`
	// PlaybackTimeout bounds a single tone playback call so a stuck player
	// process cannot stall anything.
	PlaybackTimeout time.Duration `yaml:"playback_timeout"`
	// AutoSnoozeAfter is how long a ringing alarm waits for a decision before
	// it is snoozed automatically.
	AutoSnoozeAfter time.Duration `yaml:"auto_snooze_after"`
	// Silent forces the simulated playback backend even when a real audio
	// player is available.
	Silent bool `yaml:"silent"`
	// LogLevel is the minimum level for operational logs (debug/info/warn/error).
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for alarm clock settings.
	DefaultConfigFilename = "alarm-clock-settings.yaml"

	// DefaultTonesDir is the default directory for built-in tone files.
	DefaultTonesDir = "alarm_tones"

	// DefaultPollInterval is the default monitor polling interval.
	DefaultPollInterval = 1 * time.Second

	// DefaultPlaybackTimeout is the default bound on a single playback call.
	DefaultPlaybackTimeout = 30 * time.Second

	// DefaultAutoSnoozeAfter is the default unattended-firing snooze delay.
	DefaultAutoSnoozeAfter = 30 * time.Second

	// DefaultLogLevel is the default minimum level for operational logs.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// minPollInterval rejects polling intervals too short to be useful;
	// anything below this just burns CPU re-reading the same minute.
	minPollInterval = 100 * time.Millisecond
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errPollIntervalTooSmall is returned when the polling interval is below the minimum.
	errPollIntervalTooSmall = errors.New("poll interval is too small")
)

// Default returns a configuration populated with all default values.
func Default() *Config {
	return &Config{
		TonesDir:             DefaultTonesDir,
		DefaultSnoozeMinutes: domain.DefaultSnoozeMinutes,
		PollInterval:         DefaultPollInterval,
		PlaybackTimeout:      DefaultPlaybackTimeout,
		AutoSnoozeAfter:      DefaultAutoSnoozeAfter,
		LogLevel:             DefaultLogLevel,
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file is not an error: the alarm clock must start on a clean
// machine, so defaults are returned instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided configuration and fills unset fields with
// defaults. Explicitly invalid values are rejected rather than silently fixed.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.TonesDir == "" {
		cfg.TonesDir = DefaultTonesDir
	}

	if cfg.DefaultSnoozeMinutes == 0 {
		cfg.DefaultSnoozeMinutes = domain.DefaultSnoozeMinutes
	}

	if err := domain.ValidateSnoozeMinutes(cfg.DefaultSnoozeMinutes); err != nil {
		return fmt.Errorf("default snooze: %w", err)
	}

	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	if cfg.PollInterval < minPollInterval {
		return fmt.Errorf("%w: %s is below %s", errPollIntervalTooSmall, cfg.PollInterval, minPollInterval)
	}

	if cfg.PlaybackTimeout <= 0 {
		cfg.PlaybackTimeout = DefaultPlaybackTimeout
	}

	if cfg.AutoSnoozeAfter <= 0 {
		cfg.AutoSnoozeAfter = DefaultAutoSnoozeAfter
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	return nil
}
