package tones

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

const (
	// Beep is the default built-in tone.
	Beep = "beep"
	// Bell is a softly decaying built-in tone.
	Bell = "bell"
	// Chime is a repeating two-note built-in tone.
	Chime = "chime"
	// Buzzer is a harsh low-pitched built-in tone.
	Buzzer = "buzzer"
)

// builtinOrder fixes the presentation order of built-in tones.
//
//nolint:gochecknoglobals // Shared read-only catalog.
var builtinOrder = []string{Beep, Bell, Chime, Buzzer}

// supportedExtensions lists accepted audio file extensions for custom tones.
//
//nolint:gochecknoglobals // Shared read-only set.
var supportedExtensions = map[string]struct{}{
	".wav": {},
	".mp3": {},
	".ogg": {},
	".m4a": {},
}

// Builtins returns the built-in tone names in presentation order.
func Builtins() []string {
	result := make([]string, len(builtinOrder))
	copy(result, builtinOrder)

	return result
}

// IsBuiltin reports whether name refers to a built-in tone.
func IsBuiltin(name string) bool {
	_, ok := builtinSpecs[strings.ToLower(strings.TrimSpace(name))]

	return ok
}

// BuiltinPath returns the file path a built-in tone is materialized at.
func BuiltinPath(dir, name string) string {
	return filepath.Join(dir, strings.ToLower(strings.TrimSpace(name))+".wav")
}

// SupportedExtensions returns the accepted custom tone extensions, dot
// included, in stable order.
func SupportedExtensions() []string {
	return []string{".wav", ".mp3", ".ogg", ".m4a"}
}

// HasSupportedExtension reports whether path ends in an accepted audio
// extension, case-insensitively.
func HasSupportedExtension(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]

	return ok
}

// Resolve validates a tone reference and returns the playable file path.
// Built-in names resolve into dir; anything else must be an existing audio
// file with a supported extension. Failures are ValidationErrors so the menu
// can re-prompt.
func Resolve(dir, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", domain.NewValidationError("tone", "tone reference must not be empty")
	}

	if IsBuiltin(ref) {
		return BuiltinPath(dir, ref), nil
	}

	if !HasSupportedExtension(ref) {
		return "", domain.NewValidationError(
			"tone",
			"unsupported audio format %q, expected one of %s",
			filepath.Ext(ref), strings.Join(SupportedExtensions(), ", "),
		)
	}

	info, err := os.Stat(ref)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.NewValidationError("tone", "audio file %q does not exist", ref)
		}

		return "", fmt.Errorf("inspect tone file: %w", err)
	}

	if info.IsDir() {
		return "", domain.NewValidationError("tone", "%q is a directory, not an audio file", ref)
	}

	return ref, nil
}

// EnsureDefaults creates dir and materializes every missing built-in tone as
// a small synthesized WAV file. Existing files are left untouched so users
// may replace them with their own sounds.
func EnsureDefaults(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create tones directory: %w", err)
	}

	for _, name := range builtinOrder {
		path := BuiltinPath(dir, name)

		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("inspect tone %s: %w", name, err)
		}

		if err := os.WriteFile(path, wavFile(synthesize(builtinSpecs[name])), 0o644); err != nil {
			return fmt.Errorf("write tone %s: %w", name, err)
		}
	}

	return nil
}
