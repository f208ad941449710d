package rules

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/features/notification"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"
)

// ActionExecutor runs a rule's actions against a triggering event.
type ActionExecutor interface {
	ExecuteActions(ctx context.Context, actions []RuleAction, event common_models.AppEvent) error
	ExecuteAction(ctx context.Context, action RuleAction, event common_models.AppEvent) error
}

type ActionExecutorImpl struct {
	notifications notification.NotificationService
	httpClient    *http.Client
	logger        *zap.Logger
}

func NewActionExecutor(notifications notification.NotificationService, logger *zap.Logger) ActionExecutor {
	return &ActionExecutorImpl{
		notifications: notifications,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		logger:        logger,
	}
}

func (e *ActionExecutorImpl) ExecuteActions(ctx context.Context, actions []RuleAction, event common_models.AppEvent) error {
	for i, action := range actions {
		if err := e.ExecuteAction(ctx, action, event); err != nil {
			e.logger.Warn("rule action failed",
				zap.Int("action", i),
				zap.String("type", string(action.Type)),
				zap.Error(err))
		}
	}
	return nil
}

func (e *ActionExecutorImpl) ExecuteAction(ctx context.Context, action RuleAction, event common_models.AppEvent) error {
	switch action.Type {
	case ActionNotify:
		return e.executeNotify(ctx, action.Config, event)

	case ActionWebhook:
		return e.executeWebhook(ctx, action.Config, event)

	case ActionRunScript:
		return e.executeRunScript(ctx, action.Config, event)

	default:
		return fmt.Errorf("unsupported action type: %s", action.Type)
	}
}

func (e *ActionExecutorImpl) executeNotify(ctx context.Context, config map[string]interface{}, event common_models.AppEvent) error {
	title, _ := config["title"].(string)
	message, _ := config["message"].(string)
	if title == "" {
		return fmt.Errorf("notification title is required")
	}

	topic, _ := config["category"].(string)
	if topic == "" {
		topic = "system"
	}
	kind, _ := config["kind"].(string)
	priority, _ := config["priority"].(string)
	audience, _ := config["audience"].(string)

	in := notification.Input{
		Audience: notification.AudienceClient,
		Topic:    topic,
		Title:    e.replacePlaceholders(title, event.Payload),
		Message:  e.replacePlaceholders(message, event.Payload),
		Kind:     notification.Kind(kind),
	}
	if audience == string(notification.AudienceAdmin) {
		in.Audience = notification.AudienceAdmin
	}
	if priority != "" {
		in = in.WithPriority(notification.Priority(priority))
	}

	return e.notifications.Publish(ctx, in)
}

func (e *ActionExecutorImpl) executeWebhook(ctx context.Context, config map[string]interface{}, event common_models.AppEvent) error {
	url, _ := config["url"].(string)
	if url == "" {
		return fmt.Errorf("webhook URL is required")
	}

	method, _ := config["method"].(string)
	if method == "" {
		method = http.MethodPost
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if headers, ok := config["headers"].(map[string]interface{}); ok {
		for key, value := range headers {
			req.Header.Set(key, fmt.Sprintf("%v", value))
		}
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned error status: %d", resp.StatusCode)
	}
	return nil
}

// executeRunScript compiles and runs a tengo script with the event bound in.
// If the script assigns a "notify" map, its fields are published as a
// notification, which lets scripts decide dynamically whether to alert.
func (e *ActionExecutorImpl) executeRunScript(ctx context.Context, config map[string]interface{}, event common_models.AppEvent) error {
	scriptContent, _ := config["script"].(string)
	if scriptContent == "" {
		return fmt.Errorf("script content is required")
	}

	script := tengo.NewScript([]byte(scriptContent))
	script.SetImports(stdlib.GetModuleMap("text", "math", "times", "fmt"))

	script.Add("event", event.Event)
	script.Add("payload", event.Payload)
	script.Add("notify", nil)

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to run script: %w", err)
	}

	out := compiled.Get("notify").Map()
	if out == nil {
		return nil
	}
	return e.executeNotify(ctx, out, event)
}

func (e *ActionExecutorImpl) replacePlaceholders(text string, payload map[string]interface{}) string {
	for key, value := range payload {
		placeholder := fmt.Sprintf("{{%s}}", key)
		text = strings.ReplaceAll(text, placeholder, fmt.Sprintf("%v", value))
	}
	return text
}
