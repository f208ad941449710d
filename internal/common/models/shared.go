package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	TenantIDKey ContextKey = "tenant_id"
)

// Role of an authenticated viewer. Anything that is not ADMIN is treated
// as a client when selecting a notification feed.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

type AuditAction string

const (
	AuditActionCreate  AuditAction = "CREATE"
	AuditActionUpdate  AuditAction = "UPDATE"
	AuditActionDelete  AuditAction = "DELETE"
	AuditActionLogin   AuditAction = "LOGIN"
	AuditActionRule    AuditAction = "RULE"
	AuditActionDevice  AuditAction = "DEVICE"
	AuditActionBilling AuditAction = "BILLING"
	AuditActionNotify  AuditAction = "NOTIFY"
	AuditActionExport  AuditAction = "EXPORT"
	AuditActionAssist  AuditAction = "ASSIST"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TenantID  primitive.ObjectID `bson:"tenant_id,omitempty" json:"tenant_id,omitempty"`
	Action    AuditAction        `bson:"action" json:"action"`
	Module    string             `bson:"module" json:"module"`
	RecordID  string             `bson:"record_id" json:"record_id"`
	ActorID   string             `bson:"actor_id" json:"actor_id"`
	Changes   map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Log is the shape written by the async zap DB writer.
type Log struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message      string             `bson:"message" json:"message"`
	IpAddress    string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	TenantID     string             `bson:"tenant_id,omitempty" json:"tenant_id,omitempty"`
	Caller       string             `bson:"caller,omitempty" json:"caller,omitempty"`
	LogLevelId   int                `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time          `bson:"created_on_utc" json:"created_on_utc"`
}

// AppEvent is the payload handed to automation rules when something
// happens elsewhere in the system (device transition, billing event, ...).
type AppEvent struct {
	Event   string                 `json:"event"`
	Tenant  string                 `json:"tenant,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	At      time.Time              `json:"at"`
}
