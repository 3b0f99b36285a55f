package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTestConfig(t *testing.T) (configPath string, processDir, moviesDir string) {
	t.Helper()
	base := t.TempDir()
	processDir = filepath.Join(base, "process")
	moviesDir = filepath.Join(base, "movies")
	for _, dir := range []string{processDir, moviesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	configPath = filepath.Join(base, "config.yml")
	content := fmt.Sprintf(`process: %s
movies: %s
failed: %s
logs: %s
service: kometa
log_level: error
`, processDir, moviesDir, filepath.Join(base, "failed"), filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath, processDir, moviesDir
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "assetassist v") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appVersion) {
		t.Fatalf("unexpected --version output: %q", out)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.yml")
	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite must refuse.
	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
}

func TestConfigShowCommand(t *testing.T) {
	configPath, processDir, _ := writeTestConfig(t)
	out, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, processDir) {
		t.Fatalf("expected resolved process dir in output:\n%s", out)
	}
	if !strings.Contains(out, "kometa") {
		t.Fatalf("expected service in output:\n%s", out)
	}
}

func TestRootDryRunReportsSummary(t *testing.T) {
	configPath, processDir, moviesDir := writeTestConfig(t)
	if err := os.MkdirAll(filepath.Join(moviesDir, "Alien (1979)"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(processDir, "Alien (1979).jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "--config", configPath, "--dry-run")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Movie assets") {
		t.Fatalf("expected summary table in output:\n%s", out)
	}
	// Dry run leaves the source untouched.
	if _, err := os.Stat(filepath.Join(processDir, "Alien (1979).jpg")); err != nil {
		t.Fatalf("expected asset to remain in process dir: %v", err)
	}
}

func TestRootRejectsMissingProcessDir(t *testing.T) {
	base := t.TempDir()
	configPath := filepath.Join(base, "config.yml")
	content := fmt.Sprintf("process: %s\nfailed: %s\n", filepath.Join(base, "missing"), filepath.Join(base, "failed"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "--config", configPath, "--dry-run"); err == nil {
		t.Fatal("expected config validation error")
	}
}
