package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rabbithole-cli/rabbithole/internal/clip"
	"github.com/rabbithole-cli/rabbithole/internal/config"
	"github.com/rabbithole-cli/rabbithole/internal/output"
	"github.com/rabbithole-cli/rabbithole/internal/vault"
)

// AddCmd stores a new API key under a label
type AddCmd struct {
	Label string `arg:"" help:"Unique label for the key"`
}

// Run executes the add command
func (cmd *AddCmd) Run(catalog *config.Catalog, globals *Globals) error {
	session, err := login(catalog, globals)
	if err != nil {
		return err
	}
	defer session.Logout()

	secret, err := readSecret(globals)
	if err != nil {
		return err
	}
	defer vault.Zero(secret)

	if len(secret) == 0 {
		return output.NewCLIError(output.ExitUsage, "refusing to store an empty API key")
	}

	if err := session.Add(cmd.Label, secret); err != nil {
		return mapError(err)
	}
	globals.note("Stored %q in profile %q\n", cmd.Label, session.Profile())
	return nil
}

// GetCmd decrypts one API key and hands it to the clipboard (or stdout)
type GetCmd struct {
	Label   string        `arg:"" optional:"" help:"Label to retrieve (picker shown when omitted)"`
	Print   bool          `help:"Write the key to stdout instead of the clipboard" short:"P"`
	Timeout time.Duration `help:"Clipboard auto-clear delay" default:"30s"`
	NoClear bool          `help:"Leave the key on the clipboard (skip auto-clear)"`
}

// Run executes the get command
func (cmd *GetCmd) Run(catalog *config.Catalog, globals *Globals) error {
	session, err := login(catalog, globals)
	if err != nil {
		return err
	}
	defer session.Logout()

	label := cmd.Label
	if label == "" {
		labels, err := session.Labels()
		if err != nil {
			return mapError(err)
		}
		if label, err = pickLabel(globals, labels); err != nil {
			return err
		}
	}

	secret, err := session.Reveal(label)
	if err != nil {
		return mapError(err)
	}
	defer vault.Zero(secret)

	if cmd.Print {
		fmt.Fprintf(os.Stdout, "%s\n", secret)
		return nil
	}

	// Hand the one decrypted copy to the clipboard collaborator; the
	// session keeps nothing once this returns.
	if cmd.NoClear {
		if err := clip.Copy(string(secret)); err != nil {
			return output.NewCLIError(output.ExitIO, err.Error()).
				WithHint("Use --print when no clipboard is available")
		}
		globals.note("Copied %q to clipboard\n", label)
		return nil
	}

	globals.note("Copied %q to clipboard; clearing in %s\n", label, cmd.Timeout)
	if err := clip.CopyAndClear(string(secret), cmd.Timeout); err != nil {
		return output.NewCLIError(output.ExitIO, err.Error()).
			WithHint("Use --print when no clipboard is available")
	}
	return nil
}

// ListCmd lists stored labels
type ListCmd struct{}

// Run executes the list command
func (cmd *ListCmd) Run(catalog *config.Catalog, fp *FormatterProvider, globals *Globals) error {
	session, err := login(catalog, globals)
	if err != nil {
		return err
	}
	defer session.Logout()

	labels, err := session.Labels()
	if err != nil {
		return mapError(err)
	}
	if len(labels) == 0 {
		fprintfStderr("No records stored in profile %q\n", session.Profile())
		return nil
	}

	type labelRow struct {
		Label string
	}
	rows := make([]labelRow, len(labels))
	for i, l := range labels {
		rows[i] = labelRow{Label: l}
	}
	return fp.Formatter.PrintList(rows, []output.Column{{Name: "Label", Key: "Label"}})
}

// RemoveCmd deletes a stored API key
type RemoveCmd struct {
	Label string `arg:"" help:"Label to remove"`
}

// Run executes the remove command
func (cmd *RemoveCmd) Run(catalog *config.Catalog, globals *Globals) error {
	session, err := login(catalog, globals)
	if err != nil {
		return err
	}
	defer session.Logout()

	if err := session.Remove(cmd.Label); err != nil {
		return mapError(err)
	}
	globals.note("Removed %q from profile %q\n", cmd.Label, session.Profile())
	return nil
}
