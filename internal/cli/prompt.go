package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/rabbithole-cli/rabbithole/internal/output"
	"github.com/rabbithole-cli/rabbithole/internal/vault"
)

func fprintfStderr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// readPassword prompts for a password without echo. The returned buffer
// belongs to the caller, who must vault.Zero it after deriving the key.
func readPassword(globals *Globals, prompt string) ([]byte, error) {
	if globals.NoInput {
		return nil, output.NewCLIError(output.ExitUsage,
			"password prompt required but --no-input is set")
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// Piped input: read a single line, e.g. from a password manager
		line, err := bufio.NewReader(os.Stdin).ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		return bytes.TrimRight(line, "\r\n"), nil
	}

	fprintfStderr("%s", prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fprintfStderr("\n")
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// readNewPassword prompts twice and verifies both entries match, for
// database creation.
func readNewPassword(globals *Globals) ([]byte, error) {
	password, err := readPassword(globals, "Enter a password for the new database: ")
	if err != nil {
		return nil, err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return password, nil
	}
	confirm, err := readPassword(globals, "Confirm password: ")
	if err != nil {
		vault.Zero(password)
		return nil, err
	}
	if !bytes.Equal(password, confirm) {
		vault.Zero(password)
		vault.Zero(confirm)
		return nil, output.NewCLIError(output.ExitUsage, "passwords do not match")
	}
	vault.Zero(confirm)
	return password, nil
}

// readSecret reads the secret value to store: hidden prompt on a TTY,
// otherwise the whole of stdin (trailing newline stripped).
func readSecret(globals *Globals) ([]byte, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return readPassword(globals, "Enter the API key: ")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret from stdin: %w", err)
	}
	return bytes.TrimRight(data, "\r\n"), nil
}

// pickLabel lets the user choose a label when none was given on the command
// line. A single stored label is selected automatically; otherwise a numbered
// list is shown and either a number or an exact label is accepted.
func pickLabel(globals *Globals, labels []string) (string, error) {
	switch len(labels) {
	case 0:
		return "", output.NewCLIError(output.ExitNotFound, "no records stored yet").
			WithHint("Add one: rabbithole add LABEL")
	case 1:
		return labels[0], nil
	}

	if globals.NoInput || !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", output.NewCLIError(output.ExitUsage,
			"multiple records stored; pass a label argument")
	}

	for i, label := range labels {
		fprintfStderr("  %3d  %s\n", i+1, label)
	}
	fprintfStderr("Select a label (number or name): ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read selection: %w", err)
	}
	choice := strings.TrimSpace(line)
	if choice == "" {
		return "", output.NewCLIError(output.ExitUsage, "no label selected")
	}

	if n, err := strconv.Atoi(choice); err == nil {
		if n < 1 || n > len(labels) {
			return "", output.NewCLIError(output.ExitUsage,
				fmt.Sprintf("selection %d out of range 1-%d", n, len(labels)))
		}
		return labels[n-1], nil
	}

	for _, label := range labels {
		if label == choice {
			return label, nil
		}
	}
	return "", output.NewCLIError(output.ExitNotFound, fmt.Sprintf("no record labeled %q", choice))
}
