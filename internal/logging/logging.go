// Package logging wires slog to a log file under the XDG state directory.
// Log records carry profile names and labels only; passwords and decrypted
// secrets are never passed to a logging call.
package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rabbithole-cli/rabbithole/internal/config"
)

// Setup installs the default slog logger writing to the state-dir log file.
// The returned close function flushes and closes the file.
func Setup(verbose bool) (func(), error) {
	if err := os.MkdirAll(config.StateDir(), 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	f, err := os.OpenFile(config.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))

	return func() { _ = f.Close() }, nil
}
