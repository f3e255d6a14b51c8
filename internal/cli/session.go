package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rabbithole-cli/rabbithole/internal/config"
	"github.com/rabbithole-cli/rabbithole/internal/output"
	"github.com/rabbithole-cli/rabbithole/internal/vault"
)

// resolveProfile picks the profile to operate on: --profile flag first, then
// the catalog default, then the only registered profile.
func resolveProfile(catalog *config.Catalog, globals *Globals) (string, error) {
	if globals.Profile != "" {
		return globals.Profile, nil
	}
	if catalog.Default != "" {
		return catalog.Default, nil
	}
	if profiles := catalog.List(); len(profiles) == 1 {
		return profiles[0].Name, nil
	}
	return "", output.NewCLIError(output.ExitUsage, "no profile selected").
		WithHint("Pass --profile NAME or set a default: rabbithole profile default NAME")
}

// login resolves the profile, prompts for its password, and opens a session.
// The caller must Logout when done.
func login(catalog *config.Catalog, globals *Globals) (*vault.Session, error) {
	name, err := resolveProfile(catalog, globals)
	if err != nil {
		return nil, err
	}
	path, err := catalog.Resolve(name)
	if err != nil {
		return nil, mapError(err)
	}

	password, err := readPassword(globals, fmt.Sprintf("Password for profile %q: ", name))
	if err != nil {
		return nil, err
	}
	defer vault.Zero(password)

	session, err := vault.Login(context.Background(), name, path, password)
	if err != nil {
		return nil, mapError(err)
	}
	return session, nil
}

// mapError translates store errors into CLIErrors with exit codes and hints.
// Already-mapped CLIErrors pass through untouched.
func mapError(err error) error {
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	switch {
	case errors.Is(err, vault.ErrAuthentication):
		return output.NewCLIError(output.ExitAuth, "authentication failed: wrong password or tampered database")
	case errors.Is(err, vault.ErrCorrupt):
		return output.NewCLIError(output.ExitCorrupt, err.Error())
	case errors.Is(err, vault.ErrBusy):
		return output.NewCLIError(output.ExitBusy, err.Error()).
			WithHint("Another rabbithole process has this database open")
	case errors.Is(err, vault.ErrDuplicateLabel):
		return output.NewCLIError(output.ExitConflict, err.Error()).
			WithHint("Labels are never overwritten; remove the old record first")
	case errors.Is(err, vault.ErrExists):
		return output.NewCLIError(output.ExitConflict, err.Error())
	case errors.Is(err, config.ErrDuplicateProfile):
		return output.NewCLIError(output.ExitConflict, err.Error())
	case errors.Is(err, vault.ErrNotFound):
		return output.NewCLIError(output.ExitNotFound, err.Error())
	case errors.Is(err, config.ErrProfileNotFound):
		return output.NewCLIError(output.ExitNotFound, err.Error()).
			WithHint("List profiles: rabbithole profile list")
	case errors.Is(err, vault.ErrInvalidInput):
		return output.NewCLIError(output.ExitUsage, err.Error())
	case errors.Is(err, vault.ErrNoSession):
		return output.NewCLIError(output.ExitGeneral, err.Error())
	default:
		return output.NewCLIError(output.ExitIO, err.Error())
	}
}
