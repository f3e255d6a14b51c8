// Package clip is the clipboard collaborator. It owns the auto-clear timer;
// the vault itself never touches the clipboard or wall-clock time.
package clip

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
)

// DefaultClearAfter is how long a revealed secret stays on the clipboard.
const DefaultClearAfter = 30 * time.Second

// Copy places a secret on the system clipboard.
func Copy(secret string) error {
	if err := clipboard.WriteAll(secret); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	slog.Info("secret copied to clipboard")
	return nil
}

// CopyAndClear copies a secret, waits, then clears the clipboard. The clear
// is skipped if something else replaced the clipboard contents in the
// meantime, so it never stomps on an unrelated copy.
func CopyAndClear(secret string, after time.Duration) error {
	if err := Copy(secret); err != nil {
		return err
	}

	timer := time.NewTimer(after)
	defer timer.Stop()
	<-timer.C

	current, err := clipboard.ReadAll()
	if err == nil && current != secret {
		return nil
	}
	if err := clipboard.WriteAll(""); err != nil {
		return fmt.Errorf("failed to clear clipboard: %w", err)
	}
	slog.Info("clipboard cleared", "after", after)
	return nil
}
