package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"assetassist/internal/config"
)

func writeConfig(t *testing.T, dir string, cfg map[string]any) string {
	t.Helper()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	process := filepath.Join(dir, "process")
	if err := os.MkdirAll(process, 0o755); err != nil {
		t.Fatal(err)
	}

	path := writeConfig(t, dir, map[string]any{
		"process": process,
		"movies":  filepath.Join(dir, "movies"),
		"failed":  filepath.Join(dir, "failed"),
		"service": "Plex",
	})

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, path)
	}
	if cfg.ProcessDir != process {
		t.Fatalf("unexpected process dir: %q", cfg.ProcessDir)
	}
	if cfg.Service != config.ServicePlex {
		t.Fatalf("expected service normalized to plex, got %q", cfg.Service)
	}
	if cfg.ImageQuality != 85 {
		t.Fatalf("expected default image quality, got %d", cfg.ImageQuality)
	}
}

func TestLoadExpandsTilde(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	if err := os.MkdirAll(filepath.Join(tempHome, "process"), 0o755); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"process": "~/process",
		"failed":  "~/failed",
	})

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ProcessDir != filepath.Join(tempHome, "process") {
		t.Fatalf("expected tilde expansion, got %q", cfg.ProcessDir)
	}
}

func TestLoadFallsBackToEnvironment(t *testing.T) {
	dir := t.TempDir()
	process := filepath.Join(dir, "process")
	if err := os.MkdirAll(process, 0o755); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("PROCESSDIR", process)
	t.Setenv("FAILEDDIR", filepath.Join(dir, "failed"))
	t.Setenv("SERVICE", "kometa")
	t.Setenv("ENABLE_BACKUP", "true")
	t.Setenv("PLEX_SPECIALS", "false")

	cfg, _, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected no config file")
	}
	if cfg.ProcessDir != process {
		t.Fatalf("unexpected process dir: %q", cfg.ProcessDir)
	}
	if cfg.Service != config.ServiceKometa {
		t.Fatalf("unexpected service: %q", cfg.Service)
	}
	if !cfg.BackupSource || !cfg.BackupDestination {
		t.Fatal("expected legacy ENABLE_BACKUP to enable both backup modes")
	}
	if cfg.PlexSpecials == nil || *cfg.PlexSpecials {
		t.Fatalf("expected plex_specials false, got %v", cfg.PlexSpecials)
	}
}

func TestLegacyBackupDoesNotOverrideSplitSettings(t *testing.T) {
	dir := t.TempDir()
	process := filepath.Join(dir, "process")
	if err := os.MkdirAll(process, 0o755); err != nil {
		t.Fatal(err)
	}

	path := writeConfig(t, dir, map[string]any{
		"process":              process,
		"failed":               filepath.Join(dir, "failed"),
		"backup":               filepath.Join(dir, "backup"),
		"enable_backup":        false,
		"enable_backup_source": true,
	})

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.BackupSource {
		t.Fatal("explicit enable_backup_source should survive legacy key")
	}
	if cfg.BackupDestination {
		t.Fatal("enable_backup_destination should stay off")
	}
}

func TestWebhookEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	process := filepath.Join(dir, "process")
	if err := os.MkdirAll(process, 0o755); err != nil {
		t.Fatal(err)
	}

	path := writeConfig(t, dir, map[string]any{
		"process":         process,
		"failed":          filepath.Join(dir, "failed"),
		"discord_webhook": "https://example.com/file-hook",
	})
	t.Setenv("DISCORD_WEBHOOK", "https://example.com/env-hook")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DiscordWebhook != "https://example.com/env-hook" {
		t.Fatalf("expected env webhook to win, got %q", cfg.DiscordWebhook)
	}
}

func TestValidateRejectsMissingProcessDir(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"process": filepath.Join(dir, "missing"),
		"failed":  filepath.Join(dir, "failed"),
	})

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for missing process directory")
	}
}

func TestValidateRejectsDuplicatePaths(t *testing.T) {
	dir := t.TempDir()
	process := filepath.Join(dir, "process")
	if err := os.MkdirAll(process, 0o755); err != nil {
		t.Fatal(err)
	}

	path := writeConfig(t, dir, map[string]any{
		"process": process,
		"movies":  process,
		"failed":  filepath.Join(dir, "failed"),
	})

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "unique") {
		t.Fatalf("expected duplicate-path error, got %v", err)
	}
}

func TestValidateRejectsUnknownService(t *testing.T) {
	dir := t.TempDir()
	process := filepath.Join(dir, "process")
	if err := os.MkdirAll(process, 0o755); err != nil {
		t.Fatal(err)
	}

	path := writeConfig(t, dir, map[string]any{
		"process": process,
		"failed":  filepath.Join(dir, "failed"),
		"service": "emby",
	})

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unsupported service")
	}
}

func TestDebugForcesDebugLevel(t *testing.T) {
	dir := t.TempDir()
	process := filepath.Join(dir, "process")
	if err := os.MkdirAll(process, 0o755); err != nil {
		t.Fatal(err)
	}

	path := writeConfig(t, dir, map[string]any{
		"process":   process,
		"failed":    filepath.Join(dir, "failed"),
		"log_level": "warn",
		"debug":     true,
	})

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected debug to force level, got %q", cfg.LogLevel)
	}
}

func TestSupportsCollections(t *testing.T) {
	cases := map[string]bool{
		config.ServicePlex:   false,
		config.ServiceKometa: true,
		config.ServiceKodi:   true,
		"":                   false,
	}
	for service, want := range cases {
		cfg := config.Config{Service: service}
		if got := cfg.SupportsCollections(); got != want {
			t.Errorf("SupportsCollections with service %q = %v, want %v", service, got, want)
		}
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	process := filepath.Join(dir, "process")
	if err := os.MkdirAll(process, 0o755); err != nil {
		t.Fatal(err)
	}

	path := writeConfig(t, dir, map[string]any{
		"process":       process,
		"failed":        filepath.Join(dir, "failed"),
		"backup":        filepath.Join(dir, "backup"),
		"logs":          filepath.Join(dir, "logs"),
		"enable_backup": true,
	})

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, created := range []string{cfg.FailedDir, cfg.BackupDir, cfg.LogDir} {
		info, err := os.Stat(created)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", created, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", created)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "process:") {
		t.Fatalf("sample config missing process key: %s", contents)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
}
