package device

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OnlineState string

const (
	StateOnline  OnlineState = "Online"
	StateOffline OnlineState = "Offline"
)

// Device is the cached view of a TeamViewer-managed endpoint.
type Device struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DeviceID    string             `bson:"device_id" json:"device_id"`
	RemoteID    string             `bson:"remote_id" json:"remote_id"` // TeamViewer remotecontrol id
	Alias       string             `bson:"alias" json:"alias"`
	GroupID     string             `bson:"group_id,omitempty" json:"group_id,omitempty"`
	OnlineState OnlineState        `bson:"online_state" json:"online_state"`
	LastSeenAt  time.Time          `bson:"last_seen_at" json:"last_seen_at"`
	SyncedAt    time.Time          `bson:"synced_at" json:"synced_at"`
}

// RemoteDevice is the wire shape returned by the TeamViewer devices API.
type RemoteDevice struct {
	DeviceID        string `json:"device_id"`
	RemoteControlID string `json:"remotecontrol_id"`
	Alias           string `json:"alias"`
	GroupID         string `json:"groupid"`
	OnlineState     string `json:"online_state"`
}
