package cli

import (
	"os"

	"golang.org/x/term"
)

// Globals holds global flags available to all commands
type Globals struct {
	Profile string `help:"Profile to operate on (falls back to the catalog default)" short:"p" env:"RABBITHOLE_PROFILE"`
	Output  string `help:"Output format" default:"auto" enum:"json,plain,rich,auto" short:"o" env:"RABBITHOLE_OUTPUT"`
	Verbose bool   `help:"Verbose logging" short:"v" env:"RABBITHOLE_VERBOSE"`
	NoInput bool   `help:"Disable interactive prompts (fail instead)" env:"RABBITHOLE_NO_INPUT"`
	Quiet   bool   `help:"Suppress informational messages" short:"q" env:"RABBITHOLE_QUIET"`
}

// ResolvedOutput returns the effective output mode
// "auto" detects TTY: if stdout is TTY -> rich, else -> plain
func (g *Globals) ResolvedOutput() string {
	if g.Output != "auto" {
		return g.Output
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "rich"
	}

	return "plain"
}

// note prints an informational message to stderr unless --quiet is set
func (g *Globals) note(format string, args ...any) {
	if g.Quiet {
		return
	}
	fprintfStderr(format, args...)
}
