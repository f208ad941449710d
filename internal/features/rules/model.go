package rules

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConditionOperator string

const (
	OperatorEquals      ConditionOperator = "equals"
	OperatorNotEquals   ConditionOperator = "not_equals"
	OperatorContains    ConditionOperator = "contains"
	OperatorGreaterThan ConditionOperator = "gt"
	OperatorLessThan    ConditionOperator = "lt"
)

type ActionType string

const (
	ActionNotify    ActionType = "notify"
	ActionWebhook   ActionType = "webhook"
	ActionRunScript ActionType = "run_script"
)

type RuleCondition struct {
	Field    string            `json:"field" bson:"field"`
	Operator ConditionOperator `json:"operator" bson:"operator"`
	Value    interface{}       `json:"value" bson:"value"`
}

type RuleAction struct {
	Type   ActionType             `json:"type" bson:"type"`
	Config map[string]interface{} `json:"config" bson:"config"`
}

// Rule wires an application event (device.offline, billing.payment_failed, ...)
// to a set of actions, guarded by conditions over the event payload.
type Rule struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Event      string             `json:"event" bson:"event"`
	Active     bool               `json:"active" bson:"active"`
	Conditions []RuleCondition    `json:"conditions" bson:"conditions"`
	Actions    []RuleAction       `json:"actions" bson:"actions"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
