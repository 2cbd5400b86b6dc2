// Package menu implements the interactive terminal loop.
//
// The menu owns stdout: headers, listings, prompts, and ringing banners all
// go through its writer, which makes sessions fully scriptable in tests.
// While the loop waits at the main prompt it also watches the monitor's
// notification channel, so a firing alarm interrupts with its banner
// immediately instead of waiting for the next keystroke.
package menu
