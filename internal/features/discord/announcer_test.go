package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-spear/internal/config"
	"go-spear/internal/features/notification"

	"go.uber.org/zap"
)

func TestAnnounceSendsEmbed(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	announcer := NewAnnouncer(&config.Config{DiscordWebhookURL: server.URL}, zap.NewNop())
	if announcer == nil {
		t.Fatal("expected a live announcer")
	}

	announcer.Announce(context.Background(), notification.Notification{
		Topic:    "device",
		Title:    "kiosk-1 went offline",
		Message:  "Device kiosk-1 lost its connection.",
		Kind:     notification.KindAlert,
		Priority: notification.PriorityHigh,
	})

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if len(payload.Embeds) != 1 {
		t.Fatalf("expected one embed, got %d", len(payload.Embeds))
	}
	embed := payload.Embeds[0]
	if embed.Title != "kiosk-1 went offline" {
		t.Errorf("title = %q", embed.Title)
	}
	if embed.Color != colorAlert {
		t.Errorf("color = %#x, want %#x", embed.Color, colorAlert)
	}
	if embed.Footer.Text != "device · high priority" {
		t.Errorf("footer = %q", embed.Footer.Text)
	}
}

func TestAnnouncerDisabledWithoutWebhook(t *testing.T) {
	announcer := NewAnnouncer(&config.Config{}, zap.NewNop())
	if announcer != nil {
		t.Fatal("expected a nil announcer when no webhook URL is configured")
	}
}

func TestColorForKind(t *testing.T) {
	tests := []struct {
		kind notification.Kind
		want int
	}{
		{notification.KindAlert, colorAlert},
		{notification.KindWarning, colorWarning},
		{notification.KindSuccess, colorSuccess},
		{notification.KindInfo, colorInfo},
		{"unknown", colorInfo},
	}

	for _, tt := range tests {
		if got := colorForKind(tt.kind); got != tt.want {
			t.Errorf("colorForKind(%q) = %#x, want %#x", tt.kind, got, tt.want)
		}
	}
}
