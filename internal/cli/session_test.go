package cli

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabbithole-cli/rabbithole/internal/config"
	"github.com/rabbithole-cli/rabbithole/internal/output"
	"github.com/rabbithole-cli/rabbithole/internal/vault"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"authentication", vault.ErrAuthentication, output.ExitAuth},
		{"corrupt", vault.ErrCorrupt, output.ExitCorrupt},
		{"busy", vault.ErrBusy, output.ExitBusy},
		{"duplicate label", vault.ErrDuplicateLabel, output.ExitConflict},
		{"database exists", vault.ErrExists, output.ExitConflict},
		{"duplicate profile", config.ErrDuplicateProfile, output.ExitConflict},
		{"record not found", vault.ErrNotFound, output.ExitNotFound},
		{"profile not found", config.ErrProfileNotFound, output.ExitNotFound},
		{"invalid input", vault.ErrInvalidInput, output.ExitUsage},
		{"no session", vault.ErrNoSession, output.ExitGeneral},
		{"unclassified io failure", fmt.Errorf("disk on fire"), output.ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(tt.err)
			cliErr, ok := mapped.(*output.CLIError)
			require.True(t, ok)
			assert.Equal(t, tt.code, cliErr.ExitCode)
		})
	}

	t.Run("wrapped errors are classified", func(t *testing.T) {
		wrapped := fmt.Errorf("open database: %w", vault.ErrAuthentication)
		cliErr, ok := mapError(wrapped).(*output.CLIError)
		require.True(t, ok)
		assert.Equal(t, output.ExitAuth, cliErr.ExitCode)
	})

	t.Run("CLIError passes through unchanged", func(t *testing.T) {
		original := output.NewCLIError(output.ExitUsage, "bad flag")
		assert.Same(t, original, mapError(original))
	})
}

func TestResolveProfile(t *testing.T) {
	newCatalog := func(t *testing.T) *config.Catalog {
		c, err := config.LoadCatalogFrom(filepath.Join(t.TempDir(), "profiles.json"))
		require.NoError(t, err)
		return c
	}

	t.Run("flag wins over default", func(t *testing.T) {
		c := newCatalog(t)
		require.NoError(t, c.Register("work", "/tmp/work.db"))
		require.NoError(t, c.Register("personal", "/tmp/personal.db"))
		require.NoError(t, c.SetDefault("work"))

		name, err := resolveProfile(c, &Globals{Profile: "personal"})
		require.NoError(t, err)
		assert.Equal(t, "personal", name)
	})

	t.Run("falls back to catalog default", func(t *testing.T) {
		c := newCatalog(t)
		require.NoError(t, c.Register("work", "/tmp/work.db"))
		require.NoError(t, c.Register("personal", "/tmp/personal.db"))
		require.NoError(t, c.SetDefault("work"))

		name, err := resolveProfile(c, &Globals{})
		require.NoError(t, err)
		assert.Equal(t, "work", name)
	})

	t.Run("single registered profile is implied", func(t *testing.T) {
		c := newCatalog(t)
		require.NoError(t, c.Register("only", "/tmp/only.db"))

		name, err := resolveProfile(c, &Globals{})
		require.NoError(t, err)
		assert.Equal(t, "only", name)
	})

	t.Run("ambiguous selection fails with usage error", func(t *testing.T) {
		c := newCatalog(t)
		require.NoError(t, c.Register("a", "/tmp/a.db"))
		require.NoError(t, c.Register("b", "/tmp/b.db"))

		_, err := resolveProfile(c, &Globals{})
		cliErr, ok := err.(*output.CLIError)
		require.True(t, ok)
		assert.Equal(t, output.ExitUsage, cliErr.ExitCode)
	})
}
