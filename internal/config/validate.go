package config

import (
	"errors"
	"fmt"
	"os"
)

// Validate ensures the configuration is usable. Missing optional library
// directories are not an error here; the runner prunes them with a warning.
func (c *Config) Validate() error {
	if err := c.validateProcessDir(); err != nil {
		return err
	}
	if err := c.validateUniquePaths(); err != nil {
		return err
	}
	if err := c.validateService(); err != nil {
		return err
	}
	if c.FailedDir == "" {
		return errors.New("failed directory must be set")
	}
	if c.BackupEnabled() && c.BackupDir == "" {
		return errors.New("backup directory must be set when backups are enabled")
	}
	return nil
}

func (c *Config) validateProcessDir() error {
	if c.ProcessDir == "" {
		return errors.New("process directory must be set")
	}
	info, err := os.Stat(c.ProcessDir)
	if err != nil {
		return fmt.Errorf("process directory %q not found", c.ProcessDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("process path %q is not a directory", c.ProcessDir)
	}
	return nil
}

// validateUniquePaths rejects configurations where two roles share a path; a
// process dir doubling as a library would make the pass eat its own output.
func (c *Config) validateUniquePaths() error {
	seen := make(map[string]string, 4)
	for role, path := range map[string]string{
		"process":     c.ProcessDir,
		"movies":      c.MoviesDir,
		"shows":       c.ShowsDir,
		"collections": c.CollectionsDir,
	} {
		if path == "" {
			continue
		}
		if other, ok := seen[path]; ok {
			return fmt.Errorf("directory paths must be unique: %s and %s both use %q", other, role, path)
		}
		seen[path] = role
	}
	return nil
}

func (c *Config) validateService() error {
	switch c.Service {
	case "", ServicePlex, ServiceKometa, ServiceKodi:
		return nil
	default:
		return fmt.Errorf("service must be one of plex, kometa, kodi (got %q)", c.Service)
	}
}
