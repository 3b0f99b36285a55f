package services_test

import (
	"errors"
	"strings"
	"testing"

	"assetassist/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("disk full")
	err := services.Wrap(services.ErrTransient, "placing", "copy file", "Failed to copy asset", base)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatal("expected transient marker")
	}
	if !errors.Is(err, base) {
		t.Fatal("expected wrapped cause to survive")
	}
	if !strings.Contains(err.Error(), "placing: copy file: Failed to copy asset") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatal("expected nil marker to default to transient")
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestIsFatal(t *testing.T) {
	if services.IsFatal(services.Wrap(services.ErrNotFound, "matching", "resolve show", "", nil)) {
		t.Fatal("not-found should fail the file, not the run")
	}
	if !services.IsFatal(services.Wrap(services.ErrConfiguration, "startup", "check dirs", "", nil)) {
		t.Fatal("configuration errors should abort the run")
	}
}
