package notification

import (
	"context"
	"sync"
	"testing"

	common_models "go-spear/internal/common/models"

	"go.uber.org/zap"
)

type recordingAnnouncer struct {
	mu    sync.Mutex
	calls []Notification
}

func (r *recordingAnnouncer) Announce(ctx context.Context, n Notification) {
	r.mu.Lock()
	r.calls = append(r.calls, n)
	r.mu.Unlock()
}

func (r *recordingAnnouncer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newTestService(announcer Announcer) NotificationService {
	return NewNotificationService(noopArchive{}, NewBroadcaster(), announcer, zap.NewNop())
}

func TestPublishTargetsMatchingAudience(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	adminStore := svc.Feed(ctx, "admin-session", common_models.RoleAdmin)
	clientStore := svc.Feed(ctx, "client-session", common_models.RoleClient)
	adminLen, clientLen := adminStore.Len(), clientStore.Len()

	if err := svc.Publish(ctx, NewClientNotification("billing", "T", "M", KindWarning)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if adminStore.Len() != adminLen {
		t.Error("admin feed received a client notification")
	}
	if clientStore.Len() != clientLen+1 {
		t.Error("client feed did not receive the notification")
	}
}

func TestPublishRequiresAudience(t *testing.T) {
	svc := newTestService(nil)
	err := svc.Publish(context.Background(), Input{Title: "T", Message: "M"})
	if err != ErrAudienceRequired {
		t.Errorf("Publish() error = %v, want ErrAudienceRequired", err)
	}
}

func TestAnnouncerOnlySeesHighPriority(t *testing.T) {
	rec := &recordingAnnouncer{}
	svc := newTestService(rec)
	ctx := context.Background()
	svc.Feed(ctx, "s", common_models.RoleClient)

	low := NewClientNotification("system", "T", "M", KindInfo).WithPriority(PriorityLow)
	urgent := NewClientNotification("billing", "T", "M", KindAlert).WithPriority(PriorityUrgent)

	svc.Publish(ctx, low)
	svc.Publish(ctx, urgent)

	if got := rec.count(); got != 1 {
		t.Errorf("announcer calls = %d, want 1", got)
	}
}

func TestEndSessionDropsFeed(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	store := svc.Feed(ctx, "s", common_models.RoleClient)
	store.MarkAllAsRead()
	svc.EndSession(ctx, "s")

	// A fresh feed is seeded after logout.
	if got := svc.UnreadCount(ctx, "s", common_models.RoleClient); got != 3 {
		t.Errorf("UnreadCount() after relogin = %d, want 3", got)
	}
}

func TestSubscribeReceivesStoreEvents(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	svc.Feed(ctx, "s", common_models.RoleClient)
	events, cancel := svc.Subscribe("s")
	defer cancel()

	n, err := svc.AddForSession(ctx, "s", common_models.RoleClient, Input{Title: "T", Message: "M"})
	if err != nil {
		t.Fatalf("AddForSession() error = %v", err)
	}

	ev := <-events
	if ev.Type != EventAdded {
		t.Fatalf("event type = %s, want %s", ev.Type, EventAdded)
	}
	if ev.Notification == nil || ev.Notification.ID != n.ID {
		t.Error("event did not carry the added notification")
	}
	if ev.UnreadCount != 4 {
		t.Errorf("event unread count = %d, want 4", ev.UnreadCount)
	}
}

func TestAddForSessionDefaultsAudienceFromRole(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	n, err := svc.AddForSession(ctx, "s", common_models.RoleAdmin, Input{Title: "T", Message: "M"})
	if err != nil {
		t.Fatalf("AddForSession() error = %v", err)
	}
	if n.Audience != AudienceAdmin {
		t.Errorf("Audience = %s, want %s", n.Audience, AudienceAdmin)
	}
}
