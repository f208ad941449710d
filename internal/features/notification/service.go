package notification

import (
	"context"

	common_models "go-spear/internal/common/models"

	"go.uber.org/zap"
)

// Announcer mirrors urgent records to an external channel (Discord).
type Announcer interface {
	Announce(ctx context.Context, n Notification)
}

type NotificationService interface {
	// Feed returns the caller's session store, restoring it from the
	// archive or seeding it on first access.
	Feed(ctx context.Context, sessionID string, role common_models.Role) *Store

	List(ctx context.Context, sessionID string, role common_models.Role, filter Filter) ([]Notification, int)
	UnreadCount(ctx context.Context, sessionID string, role common_models.Role) int
	AddForSession(ctx context.Context, sessionID string, role common_models.Role, in Input) (*Notification, error)
	MarkAsRead(ctx context.Context, sessionID string, role common_models.Role, id string)
	MarkAllAsRead(ctx context.Context, sessionID string, role common_models.Role)
	Remove(ctx context.Context, sessionID string, role common_models.Role, id string)
	InvokeAction(ctx context.Context, sessionID string, role common_models.Role, id string, kind ActionKind) (ActionResult, error)

	// Publish delivers a record to every live session whose feed matches
	// the input's audience. Used by producers that do not belong to a
	// session: webhooks, scheduler jobs, assistant tools.
	Publish(ctx context.Context, in Input) error

	// EndSession drops the session's store (logout).
	EndSession(ctx context.Context, sessionID string)

	Subscribe(sessionID string) (<-chan Event, func())
}

type NotificationServiceImpl struct {
	manager     *Manager
	archive     Archive
	broadcaster *Broadcaster
	announcer   Announcer
	logger      *zap.Logger
}

func NewNotificationService(archive Archive, broadcaster *Broadcaster, announcer Announcer, logger *zap.Logger) NotificationService {
	return &NotificationServiceImpl{
		manager:     NewManager(),
		archive:     archive,
		broadcaster: broadcaster,
		announcer:   announcer,
		logger:      logger,
	}
}

func (s *NotificationServiceImpl) Feed(ctx context.Context, sessionID string, role common_models.Role) *Store {
	if store, ok := s.manager.Peek(sessionID); ok {
		return store
	}

	// Try the archive before seeding a fresh feed.
	audience, items, err := s.archive.Load(ctx, sessionID)
	if err != nil {
		s.logger.Warn("notification archive load failed", zap.String("session", sessionID), zap.Error(err))
	}

	store := s.manager.Get(sessionID, role)
	store.SetOnChange(func(ev Event) {
		s.broadcaster.Publish(sessionID, ev)
		s.persist(sessionID, store)
	})
	if len(items) > 0 && audience == AudienceForRole(role) {
		store.Restore(audience, items)
	}
	return store
}

func (s *NotificationServiceImpl) List(ctx context.Context, sessionID string, role common_models.Role, filter Filter) ([]Notification, int) {
	store := s.Feed(ctx, sessionID, role)
	return store.List(filter), store.UnreadCount()
}

func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, sessionID string, role common_models.Role) int {
	return s.Feed(ctx, sessionID, role).UnreadCount()
}

func (s *NotificationServiceImpl) AddForSession(ctx context.Context, sessionID string, role common_models.Role, in Input) (*Notification, error) {
	if in.Audience == "" {
		in.Audience = AudienceForRole(role)
	}
	store := s.Feed(ctx, sessionID, role)
	n, err := store.Add(in)
	if err != nil {
		return nil, err
	}
	s.announce(ctx, *n)
	return n, nil
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, sessionID string, role common_models.Role, id string) {
	s.Feed(ctx, sessionID, role).MarkAsRead(id)
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, sessionID string, role common_models.Role) {
	s.Feed(ctx, sessionID, role).MarkAllAsRead()
}

func (s *NotificationServiceImpl) Remove(ctx context.Context, sessionID string, role common_models.Role, id string) {
	s.Feed(ctx, sessionID, role).Remove(id)
}

func (s *NotificationServiceImpl) InvokeAction(ctx context.Context, sessionID string, role common_models.Role, id string, kind ActionKind) (ActionResult, error) {
	return s.Feed(ctx, sessionID, role).InvokeAction(id, kind)
}

func (s *NotificationServiceImpl) Publish(ctx context.Context, in Input) error {
	if in.Audience != AudienceAdmin && in.Audience != AudienceClient {
		return ErrAudienceRequired
	}

	delivered := 0
	var firstErr error
	var sample *Notification
	s.manager.Range(func(sessionID string, store *Store) {
		if store.Audience() != in.Audience {
			return
		}
		n, err := store.Add(in)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		sample = n
		delivered++
	})

	if firstErr != nil {
		return firstErr
	}

	s.logger.Info("notification published",
		zap.String("audience", string(in.Audience)),
		zap.String("topic", in.Topic),
		zap.Int("sessions", delivered))

	if sample != nil {
		s.announce(ctx, *sample)
	}
	return nil
}

func (s *NotificationServiceImpl) EndSession(ctx context.Context, sessionID string) {
	s.manager.Drop(sessionID)
	if err := s.archive.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("notification archive delete failed", zap.String("session", sessionID), zap.Error(err))
	}
}

func (s *NotificationServiceImpl) Subscribe(sessionID string) (<-chan Event, func()) {
	return s.broadcaster.Subscribe(sessionID)
}

// persist writes the session snapshot to the archive, best effort.
func (s *NotificationServiceImpl) persist(sessionID string, store *Store) {
	snapshot := store.Snapshot()
	audience := store.Audience()
	go func() {
		if err := s.archive.Save(context.Background(), sessionID, audience, snapshot); err != nil {
			s.logger.Warn("notification archive save failed", zap.String("session", sessionID), zap.Error(err))
		}
	}()
}

func (s *NotificationServiceImpl) announce(ctx context.Context, n Notification) {
	if s.announcer == nil {
		return
	}
	if n.Priority != PriorityHigh && n.Priority != PriorityUrgent {
		return
	}
	s.announcer.Announce(ctx, n)
}
