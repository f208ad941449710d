package rules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/features/notification"

	"go.uber.org/zap"
)

// capturingNotifier records published inputs; everything else is inert.
type capturingNotifier struct {
	published []notification.Input
}

func (c *capturingNotifier) Feed(ctx context.Context, sessionID string, role common_models.Role) *notification.Store {
	return nil
}

func (c *capturingNotifier) List(ctx context.Context, sessionID string, role common_models.Role, filter notification.Filter) ([]notification.Notification, int) {
	return nil, 0
}

func (c *capturingNotifier) UnreadCount(ctx context.Context, sessionID string, role common_models.Role) int {
	return 0
}

func (c *capturingNotifier) AddForSession(ctx context.Context, sessionID string, role common_models.Role, in notification.Input) (*notification.Notification, error) {
	return nil, nil
}

func (c *capturingNotifier) MarkAsRead(ctx context.Context, sessionID string, role common_models.Role, id string) {
}

func (c *capturingNotifier) MarkAllAsRead(ctx context.Context, sessionID string, role common_models.Role) {
}

func (c *capturingNotifier) Remove(ctx context.Context, sessionID string, role common_models.Role, id string) {
}

func (c *capturingNotifier) InvokeAction(ctx context.Context, sessionID string, role common_models.Role, id string, kind notification.ActionKind) (notification.ActionResult, error) {
	return notification.ActionResult{}, nil
}

func (c *capturingNotifier) Publish(ctx context.Context, in notification.Input) error {
	c.published = append(c.published, in)
	return nil
}

func (c *capturingNotifier) EndSession(ctx context.Context, sessionID string) {}

func (c *capturingNotifier) Subscribe(sessionID string) (<-chan notification.Event, func()) {
	ch := make(chan notification.Event)
	return ch, func() {}
}

func newExecutorFixture() (*capturingNotifier, ActionExecutor) {
	notifier := &capturingNotifier{}
	return notifier, NewActionExecutor(notifier, zap.NewNop())
}

func TestNotifyActionInterpolatesPayload(t *testing.T) {
	notifier, exec := newExecutorFixture()

	err := exec.ExecuteAction(context.Background(), RuleAction{
		Type: ActionNotify,
		Config: map[string]interface{}{
			"audience": "admin",
			"category": "device",
			"title":    "{{alias}} is down",
			"message":  "Device {{alias}} reported {{state}}",
			"kind":     "alert",
			"priority": "high",
		},
	}, deviceOfflineEvent("kiosk-1"))
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}

	if len(notifier.published) != 1 {
		t.Fatalf("expected one published notification, got %d", len(notifier.published))
	}
	got := notifier.published[0]
	if got.Title != "kiosk-1 is down" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Message != "Device kiosk-1 reported Offline" {
		t.Errorf("message = %q", got.Message)
	}
	if got.Audience != notification.AudienceAdmin {
		t.Errorf("audience = %q", got.Audience)
	}
	if got.Priority != notification.PriorityHigh {
		t.Errorf("priority = %q", got.Priority)
	}
}

func TestNotifyActionRequiresTitle(t *testing.T) {
	_, exec := newExecutorFixture()

	err := exec.ExecuteAction(context.Background(), RuleAction{
		Type:   ActionNotify,
		Config: map[string]interface{}{"message": "no title"},
	}, deviceOfflineEvent("kiosk-1"))
	if err == nil {
		t.Fatal("expected an error for a notify action without a title")
	}
}

func TestScriptActionPublishesNotifyMap(t *testing.T) {
	notifier, exec := newExecutorFixture()

	script := `
alias := payload["alias"]
if alias == "kiosk-1" {
	notify = {
		title: alias + " needs attention",
		message: "event: " + event,
		category: "device",
		kind: "warning"
	}
}
`
	err := exec.ExecuteAction(context.Background(), RuleAction{
		Type:   ActionRunScript,
		Config: map[string]interface{}{"script": script},
	}, deviceOfflineEvent("kiosk-1"))
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}

	if len(notifier.published) != 1 {
		t.Fatalf("expected the script to publish one notification, got %d", len(notifier.published))
	}
	got := notifier.published[0]
	if got.Title != "kiosk-1 needs attention" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Message != "event: device.offline" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestScriptActionWithoutNotifyStaysQuiet(t *testing.T) {
	notifier, exec := newExecutorFixture()

	err := exec.ExecuteAction(context.Background(), RuleAction{
		Type:   ActionRunScript,
		Config: map[string]interface{}{"script": `x := 1 + 1`},
	}, deviceOfflineEvent("kiosk-1"))
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}
	if len(notifier.published) != 0 {
		t.Fatalf("script without a notify map must not publish")
	}
}

func TestWebhookActionPostsEvent(t *testing.T) {
	var gotMethod, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, exec := newExecutorFixture()
	err := exec.ExecuteAction(context.Background(), RuleAction{
		Type:   ActionWebhook,
		Config: map[string]interface{}{"url": server.URL},
	}, deviceOfflineEvent("kiosk-1"))
	if err != nil {
		t.Fatalf("ExecuteAction: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
}

func TestWebhookActionErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, exec := newExecutorFixture()
	err := exec.ExecuteAction(context.Background(), RuleAction{
		Type:   ActionWebhook,
		Config: map[string]interface{}{"url": server.URL},
	}, deviceOfflineEvent("kiosk-1"))
	if err == nil {
		t.Fatal("expected an error for a 5xx webhook response")
	}
}

func TestUnsupportedActionType(t *testing.T) {
	_, exec := newExecutorFixture()
	err := exec.ExecuteAction(context.Background(), RuleAction{Type: "send_fax"}, deviceOfflineEvent("kiosk-1"))
	if err == nil {
		t.Fatal("expected an error for an unsupported action type")
	}
}
