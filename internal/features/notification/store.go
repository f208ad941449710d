package notification

import (
	"errors"
	"strings"
	"sync"
	"time"

	common_models "go-spear/internal/common/models"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

var (
	ErrTitleRequired    = errors.New("notification title is required")
	ErrMessageRequired  = errors.New("notification message is required")
	ErrAudienceRequired = errors.New("notification audience is required")
	ErrNotFound         = errors.New("notification not found")
	ErrUnknownAction    = errors.New("unknown action kind")
)

// Store holds the ordered notification collection for one session. It is
// the only place ids are minted. Newest entries sit at the front.
//
// A store belongs to exactly one session, but producers (webhooks, cron
// jobs, assistant tools) reach it from their own goroutines, so mutation
// is guarded by a RWMutex.
type Store struct {
	mu       sync.RWMutex
	audience Audience
	items    []*Notification

	onChange func(Event)
}

func NewStore() *Store {
	return &Store{}
}

// SetOnChange registers the single change subscriber (the broadcaster).
// The callback runs outside the store lock.
func (s *Store) SetOnChange(fn func(Event)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Load replaces the collection with the seed feed matching the role.
// Unrecognized roles fall back to the client feed.
func (s *Store) Load(role common_models.Role) {
	now := time.Now()
	var feed []*Notification
	audience := AudienceForRole(role)
	if audience == AudienceAdmin {
		feed = adminSeed(now)
	} else {
		feed = clientSeed(now)
	}

	s.mu.Lock()
	s.audience = audience
	s.items = feed
	unread := s.unreadLocked()
	s.mu.Unlock()

	s.emit(Event{Type: EventFeedLoaded, UnreadCount: unread})
}

// Restore replaces the collection with an archived snapshot.
func (s *Store) Restore(audience Audience, items []Notification) {
	restored := make([]*Notification, len(items))
	for i := range items {
		n := items[i]
		restored[i] = &n
	}

	s.mu.Lock()
	s.audience = audience
	s.items = restored
	unread := s.unreadLocked()
	s.mu.Unlock()

	s.emit(Event{Type: EventFeedLoaded, UnreadCount: unread})
}

// Add validates the input, assigns a fresh id and prepends the record.
// Producer-supplied ids are never accepted.
func (s *Store) Add(in Input) (*Notification, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Message = strings.TrimSpace(in.Message)

	if in.Title == "" {
		return nil, ErrTitleRequired
	}
	if in.Message == "" {
		return nil, ErrMessageRequired
	}
	if in.Audience != AudienceAdmin && in.Audience != AudienceClient {
		return nil, ErrAudienceRequired
	}

	kind := in.Kind
	if kind == "" {
		kind = KindInfo
	}
	icon := in.Icon
	if icon == "" {
		icon = defaultIcons[kind]
	}

	n := &Notification{
		ID:        uuid.NewString(),
		Audience:  in.Audience,
		Topic:     in.Topic,
		Title:     in.Title,
		Message:   in.Message,
		Kind:      kind,
		Priority:  in.Priority,
		Actions:   in.Actions,
		Icon:      icon,
		Image:     in.Image,
		Read:      false,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.items = append([]*Notification{n}, s.items...)
	unread := s.unreadLocked()
	copied := snapshotOf(n)
	s.mu.Unlock()

	s.emit(Event{Type: EventAdded, Notification: &copied, UnreadCount: unread})
	return &copied, nil
}

// MarkAsRead flips the matching entry to read. Absent ids are a silent
// no-op; read never transitions back to unread.
func (s *Store) MarkAsRead(id string) bool {
	s.mu.Lock()
	var hit *Notification
	for _, n := range s.items {
		if n.ID == id {
			hit = n
			break
		}
	}
	if hit == nil || hit.Read {
		s.mu.Unlock()
		return hit != nil
	}
	now := time.Now()
	hit.Read = true
	hit.ReadAt = &now
	unread := s.unreadLocked()
	copied := snapshotOf(hit)
	s.mu.Unlock()

	s.emit(Event{Type: EventRead, Notification: &copied, UnreadCount: unread})
	return true
}

// MarkAllAsRead flips every entry to read. Idempotent.
func (s *Store) MarkAllAsRead() int {
	s.mu.Lock()
	now := time.Now()
	changed := 0
	for _, n := range s.items {
		if !n.Read {
			n.Read = true
			n.ReadAt = &now
			changed++
		}
	}
	s.mu.Unlock()

	if changed > 0 {
		s.emit(Event{Type: EventAllRead, UnreadCount: 0})
	}
	return changed
}

// Remove deletes the matching entry. Absent ids are a silent no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	idx := -1
	for i, n := range s.items {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	removed := snapshotOf(s.items[idx])
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	unread := s.unreadLocked()
	s.mu.Unlock()

	s.emit(Event{Type: EventRemoved, Notification: &removed, UnreadCount: unread})
	return true
}

// UnreadCount is derived from the current collection on every call.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unreadLocked()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) Audience() Audience {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.audience
}

// Get returns a copy of the matching entry.
func (s *Store) Get(id string) (Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.items {
		if n.ID == id {
			return snapshotOf(n), true
		}
	}
	return Notification{}, false
}

// List projects the collection through the view filter, preserving
// insertion order (newest first).
func (s *Store) List(f Filter) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Notification, 0, len(s.items))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, n := range s.items {
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Title), search) &&
			!strings.Contains(strings.ToLower(n.Message), search) {
			continue
		}
		if f.Topic != "" && n.Topic != f.Topic {
			continue
		}
		if f.Priority != "" && n.Priority != f.Priority {
			continue
		}
		if f.Unread != nil && n.Read == *f.Unread {
			continue
		}
		out = append(out, snapshotOf(n))
	}
	return out
}

// Snapshot returns a copy of the full collection in order.
func (s *Store) Snapshot() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notification, 0, len(s.items))
	for _, n := range s.items {
		out = append(out, snapshotOf(n))
	}
	return out
}

// ActionResult tells the caller what the presentation layer should do
// after an action has been dispatched.
type ActionResult struct {
	Outcome string `json:"outcome"` // "navigate", "acknowledged", "removed"
	URL     string `json:"url,omitempty"`
}

// InvokeAction dispatches one of the notification's attached actions.
// approve/deny mark the record read, dismiss removes it, view/link only
// hand back the navigation target.
func (s *Store) InvokeAction(id string, kind ActionKind) (ActionResult, error) {
	if !kind.Valid() {
		return ActionResult{}, ErrUnknownAction
	}

	n, ok := s.Get(id)
	if !ok {
		return ActionResult{}, ErrNotFound
	}

	var action *Action
	for i := range n.Actions {
		if n.Actions[i].Kind == kind {
			action = &n.Actions[i]
			break
		}
	}
	if action == nil {
		return ActionResult{}, ErrUnknownAction
	}

	switch kind {
	case ActionView, ActionLink:
		return ActionResult{Outcome: "navigate", URL: action.URL}, nil
	case ActionApprove, ActionDeny:
		s.MarkAsRead(id)
		return ActionResult{Outcome: "acknowledged"}, nil
	case ActionDismiss:
		s.Remove(id)
		return ActionResult{Outcome: "removed"}, nil
	}
	return ActionResult{}, ErrUnknownAction
}

func (s *Store) unreadLocked() int {
	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	return count
}

func (s *Store) emit(ev Event) {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn(ev)
	}
}

// snapshotOf copies a record and stamps the derived recency label.
func snapshotOf(n *Notification) Notification {
	out := *n
	if len(n.Actions) > 0 {
		out.Actions = append([]Action(nil), n.Actions...)
	}
	out.Time = humanize.Time(n.CreatedAt)
	return out
}
