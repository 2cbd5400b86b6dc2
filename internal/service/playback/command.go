package playback

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// CommandPlayer plays tones by shelling out to a command-line audio player
// found on this machine. Backends differ in the formats they can decode; a
// failed playback is recovered by the monitor with a simulated beep, exactly
// like a missing backend would be.
type CommandPlayer struct {
	// binary is the resolved player executable path.
	binary string
}

// Detect probes the PATH for a known command-line audio player and returns a
// CommandPlayer using the first one found. When none exists it returns
// ErrUnavailable; the caller substitutes the simulated player.
func Detect() (*CommandPlayer, error) {
	return detectWith(exec.LookPath)
}

// detectWith is the testable core of Detect.
func detectWith(lookPath func(string) (string, error)) (*CommandPlayer, error) {
	for _, candidate := range playerCandidates() {
		resolved, err := lookPath(candidate)
		if err != nil {
			continue
		}

		return &CommandPlayer{binary: resolved}, nil
	}

	return nil, ErrUnavailable
}

// playerCandidates lists known command-line audio players for the current OS,
// most capable first.
func playerCandidates() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"afplay"}
	case "windows":
		return []string{"powershell"}
	default:
		return []string{"ffplay", "paplay", "mpg123", "aplay", "play"}
	}
}

// Play runs the player process on the given file. The context bounds the
// call: cancellation or timeout kills the process.
func (p *CommandPlayer) Play(ctx context.Context, path string) error {
	cmd := p.command(ctx, path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("play %s with %s: %w", filepath.Base(path), p.Name(), err)
	}

	return nil
}

// Name returns the player executable name.
func (p *CommandPlayer) Name() string {
	return filepath.Base(p.binary)
}

// command builds the per-backend invocation. Flags keep players quiet and
// headless where they would otherwise open windows or print banners.
func (p *CommandPlayer) command(ctx context.Context, path string) *exec.Cmd {
	switch p.Name() {
	case "ffplay":
		return exec.CommandContext(ctx, p.binary, "-nodisp", "-autoexit", "-loglevel", "quiet", path)
	case "mpg123":
		return exec.CommandContext(ctx, p.binary, "-q", path)
	case "powershell", "powershell.exe":
		script := fmt.Sprintf("(New-Object Media.SoundPlayer %s).PlaySync()", quotePowerShell(path))

		return exec.CommandContext(ctx, p.binary, "-NoProfile", "-Command", script)
	default:
		return exec.CommandContext(ctx, p.binary, path)
	}
}

// quotePowerShell single-quotes a path for use inside a PowerShell command.
func quotePowerShell(path string) string {
	return "'" + strings.ReplaceAll(path, "'", "''") + "'"
}
