// Package playback abstracts the tone playback collaborator.
//
// CommandPlayer shells out to whatever command-line audio player the machine
// has (afplay, paplay, ffplay, ...); SimulatedPlayer prints beep pulses when
// no backend exists or a playback attempt fails. Detect picks the backend at
// startup so degraded mode is reported once, never per firing.
package playback
