// Package tones manages the alarm tone catalog.
//
// Four built-in tones (beep, bell, chime, buzzer) are synthesized as small
// WAV files into the configured tones directory on startup; custom tones are
// user-supplied audio files validated by extension and existence at alarm
// creation time.
package tones
