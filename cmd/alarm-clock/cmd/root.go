package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/clock"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// tonesDir overrides the tone folder from configuration.
	tonesDir string
	// pollInterval overrides the polling interval from configuration.
	pollInterval time.Duration
	// silent forces simulated playback.
	silent bool

	// rootCmd represents the base command serving the interactive alarm clock.
	rootCmd = &cobra.Command{
		Use:   "alarm-clock",
		Short: "Interactive terminal alarm clock.",
		Long: `Terminal alarm clock with customizable tones and snooze support.

Alarms are managed through an interactive menu while a background monitor
polls the wall clock and rings matching alarms with audio playback. When no
audio backend is available the ringing is simulated on the terminal. A
ringing alarm can be dismissed or snoozed; snoozing defers it without
touching its daily schedule, and an unanswered alarm snoozes itself.

Alarms live in memory only and end with the session.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			clockOptions := &clock.Options{
				ConfigPath:   configPath,
				TonesDir:     tonesDir,
				PollInterval: pollInterval,
				Silent:       silent,
			}

			return clock.Run(ctx, clockOptions)
		},
	}
)

// Execute runs the alarm-clock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&tonesDir, "tones-dir", "", "folder with the built-in tone files")
	rootCmd.Flags().DurationVar(&pollInterval, "poll-interval", 0, "how often to compare alarms against the clock")
	rootCmd.Flags().BoolVar(&silent, "silent", false, "print alarms instead of playing audio")
}
