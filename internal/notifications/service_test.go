package notifications_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"assetassist/internal/config"
	"assetassist/internal/notifications"
)

func TestNewServiceReturnsNoopWhenWebhookMissing(t *testing.T) {
	cfg := &config.Config{}
	svc := notifications.NewService(cfg, "1.0")
	if err := svc.NotifyRunCompleted(context.Background(), "summary"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestDiscordServicePostsEmbed(t *testing.T) {
	var captured struct {
		Embeds []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Thumbnail   struct {
				URL string `json:"url"`
			} `json:"thumbnail"`
			Footer struct {
				Text string `json:"text"`
			} `json:"footer"`
			Color int `json:"color"`
		} `json:"embeds"`
	}
	var contentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cfg := &config.Config{DiscordWebhook: server.URL}
	svc := notifications.NewService(cfg, "2.1")
	if err := svc.NotifyRunCompleted(context.Background(), "**Movie Assets:**\n 3"); err != nil {
		t.Fatal(err)
	}

	if contentType != "application/json" {
		t.Fatalf("unexpected content type %q", contentType)
	}
	if len(captured.Embeds) != 1 {
		t.Fatalf("expected one embed, got %d", len(captured.Embeds))
	}
	got := captured.Embeds[0]
	if got.Title != "Asset Assistant" {
		t.Errorf("unexpected title %q", got.Title)
	}
	if got.Description != "**Movie Assets:**\n 3" {
		t.Errorf("unexpected description %q", got.Description)
	}
	if got.Thumbnail.URL == "" {
		t.Error("expected thumbnail URL")
	}
	if !strings.Contains(got.Footer.Text, "[v2.1]") {
		t.Errorf("footer missing version: %q", got.Footer.Text)
	}
	if got.Color != 0x9E9E9E {
		t.Errorf("unexpected color %#x", got.Color)
	}
}

func TestDiscordServiceReportsHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such webhook", http.StatusNotFound)
	}))
	defer server.Close()

	cfg := &config.Config{DiscordWebhook: server.URL}
	svc := notifications.NewService(cfg, "1.0")
	err := svc.TestNotification(context.Background())
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}
}
