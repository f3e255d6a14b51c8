package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// ConfigDir returns the XDG-compliant config directory for rabbithole
// Typically ~/.config/rabbithole/ on Linux
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "rabbithole")
}

// CatalogPath returns the full path to the profile catalog file
func CatalogPath() string {
	return filepath.Join(ConfigDir(), "profiles.json")
}

// DataDir returns the XDG-compliant data directory for rabbithole
// Typically ~/.local/share/rabbithole/ on Linux (default database location)
func DataDir() string {
	return filepath.Join(xdg.DataHome, "rabbithole")
}

// StateDir returns the XDG-compliant state directory for rabbithole
// Typically ~/.local/state/rabbithole/ on Linux (log files)
func StateDir() string {
	return filepath.Join(xdg.StateHome, "rabbithole")
}

// LogPath returns the full path to the log file
func LogPath() string {
	return filepath.Join(StateDir(), "rabbithole.log")
}
