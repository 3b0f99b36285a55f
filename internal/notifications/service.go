package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"assetassist/internal/config"
)

const (
	userAgent    = "AssetAssistant-Go/1.0"
	thumbnailURL = "https://raw.githubusercontent.com/mikenobbs/AssetAssistant/main/logo/logomark.png"
	embedColor   = 0x9E9E9E
)

// Service defines the notification surface exposed to the runner.
type Service interface {
	NotifyRunCompleted(ctx context.Context, description string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by a Discord webhook when
// configured. When no webhook is configured, a noop implementation is
// returned.
func NewService(cfg *config.Config, version string) Service {
	webhook := strings.TrimSpace(cfg.DiscordWebhook)
	if webhook == "" {
		return noopService{}
	}
	return &discordService{
		webhook: webhook,
		version: version,
		client:  &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
	}
}

type discordService struct {
	webhook string
	version string
	client  *http.Client
	now     func() time.Time
}

type embed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Thumbnail   embedThumbnail `json:"thumbnail"`
	Footer      embedFooter    `json:"footer"`
	Color       int            `json:"color"`
}

type embedThumbnail struct {
	URL string `json:"url"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

func (d *discordService) NotifyRunCompleted(ctx context.Context, description string) error {
	return d.send(ctx, description)
}

func (d *discordService) TestNotification(ctx context.Context) error {
	return d.send(ctx, "Notification system test")
}

func (d *discordService) send(ctx context.Context, description string) error {
	if d == nil || d.client == nil {
		return nil
	}

	footer := fmt.Sprintf("Asset Assistant [v%s] | %s", d.version, d.now().Format("02/01/2006 15:04"))
	payload := webhookPayload{Embeds: []embed{{
		Title:       "Asset Assistant",
		Description: description,
		Thumbnail:   embedThumbnail{URL: thumbnailURL},
		Footer:      embedFooter{Text: footer},
		Color:       embedColor,
	}}}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build discord request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send discord notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunCompleted(context.Context, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
