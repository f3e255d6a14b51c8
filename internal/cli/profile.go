package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rabbithole-cli/rabbithole/internal/config"
	"github.com/rabbithole-cli/rabbithole/internal/output"
	"github.com/rabbithole-cli/rabbithole/internal/vault"
)

// ProfileAddCmd registers a new profile and creates its encrypted database
type ProfileAddCmd struct {
	Name     string `arg:"" help:"Unique profile name"`
	Database string `arg:"" optional:"" help:"Database file path (default: data dir)" type:"path"`
	Default  bool   `help:"Make this the default profile" short:"d"`
}

// Run executes the profile add command
func (cmd *ProfileAddCmd) Run(catalog *config.Catalog, fp *FormatterProvider, globals *Globals) error {
	dbPath := cmd.Database
	if dbPath == "" {
		dbPath = filepath.Join(config.DataDir(), cmd.Name+".db")
	}

	// Reject the duplicate before asking for a password
	if _, err := catalog.Resolve(cmd.Name); err == nil {
		return mapError(fmt.Errorf("%w: %q", config.ErrDuplicateProfile, cmd.Name))
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return output.NewCLIError(output.ExitIO,
			fmt.Sprintf("failed to create database directory: %v", err))
	}

	password, err := readNewPassword(globals)
	if err != nil {
		return err
	}
	defer vault.Zero(password)

	db, err := vault.Create(context.Background(), dbPath, password, vault.DefaultParams())
	if err != nil {
		return mapError(err)
	}
	defer db.Close()

	if err := catalog.Register(cmd.Name, dbPath); err != nil {
		// Creation succeeded but registration failed; keep the file, the
		// user can re-register it manually.
		return mapError(err)
	}
	if cmd.Default || len(catalog.List()) == 1 {
		if err := catalog.SetDefault(cmd.Name); err != nil {
			return mapError(err)
		}
	}

	globals.note("Profile %q created with database %s\n", cmd.Name, dbPath)
	return nil
}

// ProfileListCmd lists registered profiles
type ProfileListCmd struct{}

// Run executes the profile list command
func (cmd *ProfileListCmd) Run(catalog *config.Catalog, fp *FormatterProvider) error {
	type profileRow struct {
		Name     string
		Database string
		Default  string
	}

	profiles := catalog.List()
	if len(profiles) == 0 {
		fprintfStderr("No profiles registered\n")
		fprintfStderr("Create one: rabbithole profile add NAME\n")
		return nil
	}

	rows := make([]profileRow, 0, len(profiles))
	for _, p := range profiles {
		marker := ""
		if p.Name == catalog.Default {
			marker = "*"
		}
		rows = append(rows, profileRow{Name: p.Name, Database: p.DatabasePath, Default: marker})
	}

	cols := []output.Column{
		{Name: "Name", Key: "Name"},
		{Name: "Database", Key: "Database"},
		{Name: "Default", Key: "Default"},
	}
	return fp.Formatter.PrintList(rows, cols)
}

// ProfileRemoveCmd drops a profile from the catalog
type ProfileRemoveCmd struct {
	Name string `arg:"" help:"Profile name to remove"`
}

// Run executes the profile remove command
func (cmd *ProfileRemoveCmd) Run(catalog *config.Catalog, globals *Globals) error {
	path, err := catalog.Resolve(cmd.Name)
	if err != nil {
		return mapError(err)
	}
	if err := catalog.Remove(cmd.Name); err != nil {
		return mapError(err)
	}
	globals.note("Profile %q removed from catalog; database %s was not deleted\n", cmd.Name, path)
	return nil
}

// ProfileDefaultCmd sets the default profile
type ProfileDefaultCmd struct {
	Name string `arg:"" help:"Profile name to use by default"`
}

// Run executes the profile default command
func (cmd *ProfileDefaultCmd) Run(catalog *config.Catalog, globals *Globals) error {
	if err := catalog.SetDefault(cmd.Name); err != nil {
		return mapError(err)
	}
	globals.note("Default profile set to %q\n", cmd.Name)
	return nil
}

// ProfilePathCmd shows the catalog file path
type ProfilePathCmd struct{}

// Run executes the profile path command
func (cmd *ProfilePathCmd) Run() error {
	fmt.Println(config.CatalogPath())
	return nil
}
