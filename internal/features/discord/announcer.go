package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-spear/internal/config"
	"go-spear/internal/features/notification"

	"go.uber.org/zap"
)

// Embed colors per notification kind.
const (
	colorAlert   = 0xE74C3C
	colorWarning = 0xF39C12
	colorSuccess = 0x2ECC71
	colorInfo    = 0x3498DB
)

type webhookEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Footer      struct {
		Text string `json:"text"`
	} `json:"footer"`
}

type webhookPayload struct {
	Embeds []webhookEmbed `json:"embeds"`
}

// Announcer mirrors high priority notifications to a Discord channel.
type Announcer struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewAnnouncer(cfg *config.Config, logger *zap.Logger) notification.Announcer {
	if cfg.DiscordWebhookURL == "" {
		logger.Info("discord announcer disabled, DISCORD_WEBHOOK_URL not set")
		return nil
	}
	return &Announcer{
		webhookURL: cfg.DiscordWebhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

func (a *Announcer) Announce(ctx context.Context, n notification.Notification) {
	embed := webhookEmbed{
		Title:       n.Title,
		Description: n.Message,
		Color:       colorForKind(n.Kind),
	}
	embed.Footer.Text = fmt.Sprintf("%s · %s priority", n.Topic, n.Priority)

	payload, err := json.Marshal(webhookPayload{Embeds: []webhookEmbed{embed}})
	if err != nil {
		a.logger.Warn("discord payload marshal failed", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.webhookURL, bytes.NewReader(payload))
	if err != nil {
		a.logger.Warn("discord request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Warn("discord announce failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		a.logger.Warn("discord announce rejected", zap.Int("status", resp.StatusCode))
	}
}

func colorForKind(kind notification.Kind) int {
	switch kind {
	case notification.KindAlert:
		return colorAlert
	case notification.KindWarning:
		return colorWarning
	case notification.KindSuccess:
		return colorSuccess
	default:
		return colorInfo
	}
}
