package notification

import (
	"time"

	common_models "go-spear/internal/common/models"
)

// Kind controls icon/color in the dashboards only; it has no behavioral effect.
type Kind string

const (
	KindAlert   Kind = "alert"
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
)

// Priority affects badge styling and filter options only.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Audience selects which role's feed a notification belongs to. Kept as an
// explicit field instead of overloading the topic string.
type Audience string

const (
	AudienceAdmin  Audience = "admin"
	AudienceClient Audience = "client"
)

// AudienceForRole maps a viewer role onto a feed. Unrecognized roles fall
// back to the client feed.
func AudienceForRole(role common_models.Role) Audience {
	if role.IsAdmin() {
		return AudienceAdmin
	}
	return AudienceClient
}

// ActionKind is the closed set of affordances a notification can carry.
type ActionKind string

const (
	ActionView    ActionKind = "view"
	ActionLink    ActionKind = "link"
	ActionApprove ActionKind = "approve"
	ActionDeny    ActionKind = "deny"
	ActionDismiss ActionKind = "dismiss"
)

// Valid reports whether k is one of the known action kinds.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionView, ActionLink, ActionApprove, ActionDeny, ActionDismiss:
		return true
	}
	return false
}

// Action is a user-invokable affordance attached to a notification.
type Action struct {
	Label string     `json:"label"`
	Kind  ActionKind `json:"action"`
	URL   string     `json:"url,omitempty"`
}

// Notification is a single user-facing event record. IDs are assigned by
// the store at creation time, never by producers.
type Notification struct {
	ID        string     `json:"id" bson:"id"`
	Audience  Audience   `json:"audience" bson:"audience"`
	Topic     string     `json:"category" bson:"topic"`
	Title     string     `json:"title" bson:"title"`
	Message   string     `json:"message" bson:"message"`
	Kind      Kind       `json:"type" bson:"kind"`
	Priority  Priority   `json:"priority,omitempty" bson:"priority,omitempty"`
	Actions   []Action   `json:"actions,omitempty" bson:"actions,omitempty"`
	Icon      string     `json:"icon,omitempty" bson:"icon,omitempty"`
	Image     string     `json:"image,omitempty" bson:"image,omitempty"`
	Read      bool       `json:"read" bson:"read"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty" bson:"read_at,omitempty"`

	// Time is the humanized recency label ("2 hours ago"); derived from
	// CreatedAt whenever a snapshot is taken, never stored.
	Time string `json:"time" bson:"-"`
}

// Input is the producer-facing shape handed to Store.Add. Anything the
// store owns (id, read flag, created-at) is absent on purpose.
type Input struct {
	Audience Audience `json:"audience"`
	Topic    string   `json:"category"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Kind     Kind     `json:"type,omitempty"`
	Priority Priority `json:"priority,omitempty"`
	Actions  []Action `json:"actions,omitempty"`
	Icon     string   `json:"icon,omitempty"`
	Image    string   `json:"image,omitempty"`
}

// defaultIcons maps a kind onto the fallback icon key used when a producer
// supplies none.
var defaultIcons = map[Kind]string{
	KindAlert:   "alert-triangle",
	KindInfo:    "info",
	KindSuccess: "check-circle",
	KindWarning: "alert-circle",
}

// EventType describes a store mutation pushed to stream subscribers.
type EventType string

const (
	EventAdded      EventType = "added"
	EventRead       EventType = "read"
	EventAllRead    EventType = "all_read"
	EventRemoved    EventType = "removed"
	EventFeedLoaded EventType = "feed_loaded"
)

// Event is a single change frame delivered to websocket subscribers.
type Event struct {
	Type         EventType     `json:"event"`
	Notification *Notification `json:"notification,omitempty"`
	UnreadCount  int           `json:"unread_count"`
}

// Filter is the view-only predicate state applied when listing a feed.
type Filter struct {
	Search   string
	Topic    string
	Priority Priority
	// Unread limits to unread (true) or read (false) when set.
	Unread *bool
}
