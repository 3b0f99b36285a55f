package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sample_config.yml
var sampleConfig string

// Service names understood by the organizer.
const (
	ServicePlex   = "plex"
	ServiceKometa = "kometa"
	ServiceKodi   = "kodi"
)

// Config encapsulates all configuration values for assetassist. The YAML
// keys are flat, matching the config.yml layout the tool has always shipped.
type Config struct {
	ProcessDir     string `yaml:"process"`
	MoviesDir      string `yaml:"movies"`
	ShowsDir       string `yaml:"shows"`
	CollectionsDir string `yaml:"collections"`
	FailedDir      string `yaml:"failed"`
	BackupDir      string `yaml:"backup"`
	LogDir         string `yaml:"logs"`

	Service string `yaml:"service"`
	// PlexSpecials selects where Plex specials posters land: true routes them
	// to "Specials", false to "Season 00". Nil means unset, which fails any
	// specials asset at placement time.
	PlexSpecials *bool `yaml:"plex_specials"`

	BackupSource      bool  `yaml:"enable_backup_source"`
	BackupDestination bool  `yaml:"enable_backup_destination"`
	LegacyBackup      *bool `yaml:"enable_backup"`

	CompressImages bool `yaml:"compress_images"`
	ImageQuality   int  `yaml:"image_quality"`

	DiscordWebhook string `yaml:"discord_webhook"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	Debug     bool   `yaml:"debug"`
}

// Load locates, parses, and validates a configuration file. When no file is
// found at the explicit path or either default location, the configuration
// falls back entirely to environment variables. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	} else {
		cfg.applyEnvironment()
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	for _, candidate := range []string{
		filepath.Join("config", "config.yml"),
		"config.yml",
	} {
		absolute, err := filepath.Abs(candidate)
		if err != nil {
			return "", false, err
		}
		if info, err := os.Stat(absolute); err == nil && !info.IsDir() {
			return absolute, true, nil
		}
	}

	fallback, err := filepath.Abs(filepath.Join("config", "config.yml"))
	if err != nil {
		return "", false, err
	}
	return fallback, false, nil
}

// EnsureDirectories creates the directories the run writes into. Library
// directories are deliberately not created: a missing library is pruned with
// a warning instead.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.FailedDir}
	if c.LogDir != "" {
		dirs = append(dirs, c.LogDir)
	}
	if c.BackupEnabled() && c.BackupDir != "" {
		dirs = append(dirs, c.BackupDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// BackupEnabled reports whether either backup mode is on.
func (c *Config) BackupEnabled() bool {
	return c.BackupSource || c.BackupDestination
}

// SupportsCollections reports whether the configured service convention has a
// place for collection artwork.
func (c *Config) SupportsCollections() bool {
	return c.Service == ServiceKometa || c.Service == ServiceKodi
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
