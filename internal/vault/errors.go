package vault

import "errors"

// Sentinel errors returned by the vault. Callers match them with errors.Is;
// the CLI layer maps each one to an exit code.
var (
	// ErrInvalidInput is returned for empty passwords, malformed salts, or
	// empty labels.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExists is returned by Create when the database file already exists.
	ErrExists = errors.New("database already exists")

	// ErrNotFound is returned when a database file or a record label is absent.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateLabel is returned by Add when the label is already taken.
	// Records are never silently overwritten.
	ErrDuplicateLabel = errors.New("label already exists")

	// ErrCorrupt is returned when a file fails the magic or framing checks
	// before any decryption is attempted.
	ErrCorrupt = errors.New("not a rabbithole database or corrupted file")

	// ErrAuthentication covers both wrong-password and tampered-ciphertext
	// failures. The two cases are deliberately indistinguishable.
	ErrAuthentication = errors.New("authentication failed")

	// ErrBusy is returned when another process holds the database lock.
	ErrBusy = errors.New("database is locked by another process")

	// ErrNoSession is returned for record operations after logout or close.
	ErrNoSession = errors.New("no active session")
)
