// Package config defines the alarm clock settings and provides helpers to
// load, validate and save them in YAML format.
//
// The Config type holds the tones directory, snooze and polling defaults,
// playback bounds and the log level. A missing settings file yields defaults
// so the program runs out of the box.
package config
