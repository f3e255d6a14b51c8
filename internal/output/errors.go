package output


// Exit codes, one per failure family the store can surface
const (
	ExitOK       = 0  // Success
	ExitGeneral  = 1  // General error
	ExitUsage    = 2  // Invalid usage / bad arguments
	ExitAuth     = 3  // Wrong password or tampered database
	ExitNotFound = 4  // Profile, database, or label not found
	ExitConflict = 5  // Duplicate profile or label
	ExitBusy     = 6  // Database locked by another process
	ExitCorrupt  = 7  // File failed the magic/framing checks
	ExitConfig   = 10 // Catalog or configuration error
	ExitIO       = 11 // Disk or filesystem error
)

// CLIError represents a structured error with exit code and optional hint
type CLIError struct {
	ExitCode int
	Message  string
	Hint     string
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// NewCLIError creates a new CLIError
func NewCLIError(code int, msg string) *CLIError {
	return &CLIError{
		ExitCode: code,
		Message:  msg,
	}
}

// WithHint adds a user-facing hint to the error
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// ExitWithError prints the error via the formatter; the os.Exit call itself
// stays in main.go
func ExitWithError(formatter Formatter, err error) {
	if cliErr, ok := err.(*CLIError); ok {
		formatter.PrintError(err)
		if cliErr.Hint != "" {
			formatter.PrintHint(cliErr.Hint)
		}
		return
	}

	formatter.PrintError(err)
}
