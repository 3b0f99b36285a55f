package logging_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"assetassist/internal/logging"
)

func TestConsoleHandlerHoistsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logging.WithComponent(logger, "organizer")
	logger.Info("placed asset", logging.String("file", "poster.jpg"))

	line := buf.String()
	if !strings.Contains(line, "INFO organizer: placed asset") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "file=poster.jpg") {
		t.Fatalf("missing attribute in line: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be hoisted, not rendered as attr: %q", line)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("suppressed")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Fatalf("info line should be suppressed at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestJSONHandlerEmitsLowercaseLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writers: []io.Writer{&buf}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("probe", logging.Int("count", 3))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if record["level"] != "debug" {
		t.Fatalf("unexpected level field: %v", record["level"])
	}
	if record["msg"] != "probe" {
		t.Fatalf("unexpected msg field: %v", record["msg"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestOpenLogFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "assetassist.log")
	file, err := logging.OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile returned error: %v", err)
	}
	defer file.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}
