package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// ErrDuplicateProfile is returned when registering a name already in use.
var ErrDuplicateProfile = errors.New("profile already exists")

// ErrProfileNotFound is returned when a profile name is not in the catalog.
var ErrProfileNotFound = errors.New("profile not found")

// Profile maps a name to its encrypted database file. Names and paths are
// not secrets; the catalog is stored unencrypted, separate from any database.
type Profile struct {
	Name         string `json:"name"`
	DatabasePath string `json:"database_path"`
}

// Catalog is the persisted list of known profiles, one per installation.
// Profiles are kept in registration order.
type Catalog struct {
	Default  string    `json:"default,omitempty"`
	Profiles []Profile `json:"profiles"`

	path string
}

// LoadCatalog reads the catalog from the XDG config path, returning an empty
// catalog if the file doesn't exist yet.
func LoadCatalog() (*Catalog, error) {
	return LoadCatalogFrom(CatalogPath())
}

// LoadCatalogFrom reads a catalog from an explicit path.
func LoadCatalogFrom(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{path: path}, nil
		}
		return nil, fmt.Errorf("failed to read profile catalog: %w", err)
	}

	var c Catalog
	if err := json5.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse profile catalog: %w", err)
	}
	c.path = path
	return &c, nil
}

// Save writes the catalog back to disk with restrictive permissions.
func (c *Catalog) Save() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile catalog: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write profile catalog: %w", err)
	}
	return nil
}

// Register adds a new profile and saves the catalog. Names are unique;
// re-registering an existing name fails without touching the catalog.
func (c *Catalog) Register(name, databasePath string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if databasePath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if _, err := c.Resolve(name); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicateProfile, name)
	}
	c.Profiles = append(c.Profiles, Profile{Name: name, DatabasePath: databasePath})
	return c.Save()
}

// Resolve returns the database path for a profile name.
func (c *Catalog) Resolve(name string) (string, error) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p.DatabasePath, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrProfileNotFound, name)
}

// Remove drops a profile from the catalog and saves. The database file itself
// is left untouched.
func (c *Catalog) Remove(name string) error {
	for i, p := range c.Profiles {
		if p.Name == name {
			c.Profiles = append(c.Profiles[:i], c.Profiles[i+1:]...)
			if c.Default == name {
				c.Default = ""
			}
			return c.Save()
		}
	}
	return fmt.Errorf("%w: %q", ErrProfileNotFound, name)
}

// SetDefault marks a registered profile as the one used when --profile is
// omitted.
func (c *Catalog) SetDefault(name string) error {
	if _, err := c.Resolve(name); err != nil {
		return err
	}
	c.Default = name
	return c.Save()
}

// List returns profiles in registration order.
func (c *Catalog) List() []Profile {
	out := make([]Profile, len(c.Profiles))
	copy(out, c.Profiles)
	return out
}
