package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalogFrom(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, err)
	return c
}

func TestLoadCatalogMissingFile(t *testing.T) {
	c := testCatalog(t)
	assert.Empty(t, c.List())
	assert.Empty(t, c.Default)
}

func TestRegisterAndResolve(t *testing.T) {
	c := testCatalog(t)

	require.NoError(t, c.Register("work", "/tmp/work.db"))
	require.NoError(t, c.Register("personal", "/tmp/personal.db"))

	path, err := c.Resolve("work")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/work.db", path)

	_, err = c.Resolve("missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestRegisterDuplicate(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.Register("work", "/tmp/a.db"))

	err := c.Register("work", "/tmp/b.db")
	assert.ErrorIs(t, err, ErrDuplicateProfile)

	// Original entry untouched
	path, err := c.Resolve("work")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a.db", path)
}

func TestRegisterValidation(t *testing.T) {
	c := testCatalog(t)
	assert.Error(t, c.Register("", "/tmp/a.db"))
	assert.Error(t, c.Register("work", ""))
}

func TestListRegistrationOrder(t *testing.T) {
	c := testCatalog(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, c.Register(name, "/tmp/"+name+".db"))
	}

	var names []string
	for _, p := range c.List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestRemoveProfile(t *testing.T) {
	c := testCatalog(t)
	require.NoError(t, c.Register("work", "/tmp/work.db"))
	require.NoError(t, c.SetDefault("work"))

	require.NoError(t, c.Remove("work"))
	_, err := c.Resolve("work")
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Empty(t, c.Default, "removing the default profile clears the default")

	err = c.Remove("work")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestSetDefaultRequiresRegisteredProfile(t *testing.T) {
	c := testCatalog(t)
	assert.ErrorIs(t, c.SetDefault("ghost"), ErrProfileNotFound)
}

func TestCatalogPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")

	c, err := LoadCatalogFrom(path)
	require.NoError(t, err)
	require.NoError(t, c.Register("work", "/tmp/work.db"))
	require.NoError(t, c.SetDefault("work"))

	reloaded, err := LoadCatalogFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "work", reloaded.Default)

	got, err := reloaded.Resolve("work")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/work.db", got)

	// Catalog file is not world readable
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
