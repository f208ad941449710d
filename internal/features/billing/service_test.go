package billing

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/config"
	"go-spear/internal/features/notification"
	"go-spear/internal/features/rules"

	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

type memoryBillingRepo struct {
	seen map[string]string
}

func newMemoryBillingRepo() *memoryBillingRepo {
	return &memoryBillingRepo{seen: map[string]string{}}
}

func (m *memoryBillingRepo) MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	if _, ok := m.seen[eventID]; ok {
		return false, nil
	}
	m.seen[eventID] = eventType
	return true, nil
}

func (m *memoryBillingRepo) ListRecent(ctx context.Context, limit int64) ([]ProcessedEvent, error) {
	return nil, nil
}

type publishRecorder struct {
	notification.NotificationService
	published []notification.Input
}

func (p *publishRecorder) Publish(ctx context.Context, in notification.Input) error {
	p.published = append(p.published, in)
	return nil
}

type dispatchRecorder struct {
	rules.RuleService
	events []common_models.AppEvent
}

func (d *dispatchRecorder) Dispatch(ctx context.Context, event common_models.AppEvent) {
	d.events = append(d.events, event)
}

type noopAudit struct{}

func (noopAudit) LogChange(ctx context.Context, action common_models.AuditAction, module, recordID string, changes map[string]common_models.Change) error {
	return nil
}

func (noopAudit) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

func newBillingFixture() (*publishRecorder, *dispatchRecorder, BillingService) {
	notifier := &publishRecorder{}
	dispatcher := &dispatchRecorder{}
	svc := NewBillingService(&config.Config{}, newMemoryBillingRepo(), notifier, dispatcher, noopAudit{}, zap.NewNop())
	return notifier, dispatcher, svc
}

func stripeEvent(id string, eventType stripe.EventType, payload interface{}) stripe.Event {
	raw, _ := json.Marshal(payload)
	return stripe.Event{
		ID:   id,
		Type: eventType,
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestPaymentFailedNotifiesBothAudiences(t *testing.T) {
	notifier, dispatcher, svc := newBillingFixture()

	event := stripeEvent("evt_1", stripe.EventTypeInvoicePaymentFailed, map[string]interface{}{
		"id":             "in_123",
		"amount_due":     2500,
		"currency":       "usd",
		"customer_email": "client@example.com",
	})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	if len(notifier.published) != 2 {
		t.Fatalf("expected admin and client notifications, got %d", len(notifier.published))
	}

	admin := notifier.published[0]
	if admin.Audience != notification.AudienceAdmin {
		t.Errorf("first notification audience = %q, want admin", admin.Audience)
	}
	if admin.Priority != notification.PriorityUrgent {
		t.Errorf("admin priority = %q, want urgent", admin.Priority)
	}
	if !strings.Contains(admin.Message, "25.00 USD") {
		t.Errorf("admin message missing amount: %q", admin.Message)
	}

	client := notifier.published[1]
	if client.Audience != notification.AudienceClient {
		t.Errorf("second notification audience = %q, want client", client.Audience)
	}
	if client.Kind != notification.KindAlert || client.Priority != notification.PriorityHigh {
		t.Errorf("client notification = %s/%s, want alert/high", client.Kind, client.Priority)
	}

	if len(dispatcher.events) != 1 || dispatcher.events[0].Event != "billing.payment_failed" {
		t.Fatalf("expected a billing.payment_failed rule event, got %+v", dispatcher.events)
	}
}

func TestReplayedEventIsDropped(t *testing.T) {
	notifier, _, svc := newBillingFixture()

	event := stripeEvent("evt_dup", stripe.EventTypeCheckoutSessionCompleted, map[string]interface{}{
		"id":           "cs_123",
		"amount_total": 999,
		"currency":     "eur",
	})

	for i := 0; i < 3; i++ {
		if err := svc.HandleEvent(context.Background(), event); err != nil {
			t.Fatalf("HandleEvent %d: %v", i, err)
		}
	}

	if len(notifier.published) != 1 {
		t.Fatalf("replays must be dropped, got %d notifications", len(notifier.published))
	}
}

func TestSubscriptionCancelScheduled(t *testing.T) {
	notifier, _, svc := newBillingFixture()

	event := stripeEvent("evt_2", stripe.EventTypeCustomerSubscriptionUpdated, map[string]interface{}{
		"id":                   "sub_123",
		"cancel_at_period_end": true,
	})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	if len(notifier.published) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.published))
	}
	got := notifier.published[0]
	if got.Title != "Subscription scheduled to cancel" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Topic != "subscription" {
		t.Errorf("topic = %q, want subscription", got.Topic)
	}
}

func TestSubscriptionDeleted(t *testing.T) {
	notifier, dispatcher, svc := newBillingFixture()

	event := stripeEvent("evt_3", stripe.EventTypeCustomerSubscriptionDeleted, map[string]interface{}{
		"id": "sub_123",
	})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	if len(notifier.published) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.published))
	}
	if notifier.published[0].Kind != notification.KindWarning {
		t.Errorf("kind = %q, want warning", notifier.published[0].Kind)
	}
	if len(dispatcher.events) != 1 || dispatcher.events[0].Event != "billing.subscription_deleted" {
		t.Fatalf("expected a billing.subscription_deleted rule event, got %+v", dispatcher.events)
	}
}

func TestUnhandledEventTypeIsIgnored(t *testing.T) {
	notifier, _, svc := newBillingFixture()

	event := stripeEvent("evt_4", "customer.created", map[string]interface{}{"id": "cus_123"})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if len(notifier.published) != 0 {
		t.Fatalf("unhandled event types must not notify")
	}
}
