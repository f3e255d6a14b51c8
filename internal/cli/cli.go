package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/rabbithole-cli/rabbithole/internal/config"
	"github.com/rabbithole-cli/rabbithole/internal/logging"
	"github.com/rabbithole-cli/rabbithole/internal/output"
)

// FormatterProvider wraps the formatter interface for Kong binding
type FormatterProvider struct {
	Formatter output.Formatter
}

// CLI is the root command structure
type CLI struct {
	Globals

	Profile ProfileCmd `cmd:"" help:"Manage profiles and their database files"`
	Add     AddCmd     `cmd:"" help:"Store a new API key under a label"`
	Get     GetCmd     `cmd:"" help:"Decrypt one API key and copy it to the clipboard"`
	List    ListCmd    `cmd:"" help:"List stored labels"`
	Remove  RemoveCmd  `cmd:"" help:"Remove a stored API key"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// BeforeApply hook runs before any command execution
// It sets up logging, loads the profile catalog, and binds dependencies
func (c *CLI) BeforeApply(ctx *kong.Context) error {
	if _, err := logging.Setup(c.Verbose); err != nil {
		return err
	}

	catalog, err := config.LoadCatalog()
	if err != nil {
		return err
	}

	formatter := &FormatterProvider{
		Formatter: output.New(c.ResolvedOutput()),
	}

	ctx.Bind(catalog)
	ctx.Bind(formatter)
	ctx.Bind(&c.Globals)

	return nil
}

// ProfileCmd holds profile subcommands
type ProfileCmd struct {
	Add     ProfileAddCmd     `cmd:"" help:"Create a new profile with its own encrypted database"`
	List    ProfileListCmd    `cmd:"" help:"List registered profiles"`
	Remove  ProfileRemoveCmd  `cmd:"" help:"Remove a profile from the catalog (database file is kept)"`
	Default ProfileDefaultCmd `cmd:"" help:"Set the default profile"`
	Path    ProfilePathCmd    `cmd:"" help:"Show the catalog file path"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context) error {
	version := ctx.Model.Vars()["version"]
	fmt.Println("rabbithole version " + version)
	return nil
}
