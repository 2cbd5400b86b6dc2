// Package clock assembles the alarm clock service: settings, tone folder,
// store, playback backend, background monitor, and interactive menu, run as
// one foreground and one background loop that shut down together.
package clock
