package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// applyEnvironment fills the configuration from environment variables. Used
// only when no config file was found; the variable names predate this
// rewrite and stay as-is.
func (c *Config) applyEnvironment() {
	setEnvString(&c.ProcessDir, "PROCESSDIR")
	setEnvString(&c.ShowsDir, "SHOWSDIR")
	setEnvString(&c.MoviesDir, "MOVIESDIR")
	setEnvString(&c.CollectionsDir, "COLLECTIONSDIR")
	setEnvString(&c.FailedDir, "FAILEDDIR")
	setEnvString(&c.BackupDir, "BACKUPDIR")
	setEnvString(&c.LogDir, "LOGSDIR")
	setEnvString(&c.Service, "SERVICE")
	setEnvString(&c.DiscordWebhook, "DISCORD_WEBHOOK")
	setEnvString(&c.LogLevel, "LOG_LEVEL")
	setEnvString(&c.LogFormat, "LOG_FORMAT")

	c.BackupSource = envBool("ENABLE_BACKUP_SOURCE", c.BackupSource)
	c.BackupDestination = envBool("ENABLE_BACKUP_DESTINATION", c.BackupDestination)
	if value, ok := os.LookupEnv("ENABLE_BACKUP"); ok {
		legacy := parseBool(value)
		c.LegacyBackup = &legacy
	}
	c.CompressImages = envBool("COMPRESS_IMAGES", c.CompressImages)
	c.Debug = envBool("DEBUG", c.Debug)

	if value, ok := os.LookupEnv("PLEX_SPECIALS"); ok && strings.TrimSpace(value) != "" {
		specials := parseBool(value)
		c.PlexSpecials = &specials
	}
	if value, ok := os.LookupEnv("IMAGE_QUALITY"); ok {
		if quality, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			c.ImageQuality = quality
		}
	}
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeService()
	c.normalizeBackup()
	c.normalizeImages()
	c.normalizeLogging()

	// Webhook URLs are secrets; the env var wins over the file.
	if value, ok := os.LookupEnv("DISCORD_WEBHOOK"); ok && strings.TrimSpace(value) != "" {
		c.DiscordWebhook = strings.TrimSpace(value)
	}
	c.DiscordWebhook = strings.TrimSpace(c.DiscordWebhook)
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		name  string
		value *string
	}{
		{"process", &c.ProcessDir},
		{"movies", &c.MoviesDir},
		{"shows", &c.ShowsDir},
		{"collections", &c.CollectionsDir},
		{"failed", &c.FailedDir},
		{"backup", &c.BackupDir},
		{"logs", &c.LogDir},
	}
	for _, field := range fields {
		trimmed := strings.TrimSpace(*field.value)
		if trimmed == "" {
			*field.value = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeService() {
	c.Service = strings.ToLower(strings.TrimSpace(c.Service))
}

// normalizeBackup maps the legacy enable_backup key onto the split
// source/destination settings when those are not set explicitly.
func (c *Config) normalizeBackup() {
	if c.LegacyBackup == nil {
		return
	}
	if !c.BackupSource && !c.BackupDestination {
		c.BackupSource = *c.LegacyBackup
		c.BackupDestination = *c.LegacyBackup
	}
}

func (c *Config) normalizeImages() {
	if c.ImageQuality <= 0 || c.ImageQuality > 100 {
		c.ImageQuality = defaultImageQuality
	}
}

func (c *Config) normalizeLogging() {
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "", "console":
		c.LogFormat = "console"
	case "json":
	default:
		c.LogFormat = "console"
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Debug {
		c.LogLevel = "debug"
	}
}

func setEnvString(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func envBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return parseBool(value)
}

func parseBool(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}
