package rules

import (
	"context"
	"testing"
	"time"

	common_models "go-spear/internal/common/models"

	"go.uber.org/zap"
)

type mockRuleRepo struct {
	rules []Rule
}

func (m *mockRuleRepo) Create(ctx context.Context, rule *Rule) error { return nil }
func (m *mockRuleRepo) GetByID(ctx context.Context, id string) (*Rule, error) {
	return nil, nil
}
func (m *mockRuleRepo) GetByEvent(ctx context.Context, event string) ([]Rule, error) {
	var out []Rule
	for _, r := range m.rules {
		if r.Event == event {
			out = append(out, r)
		}
	}
	return out, nil
}
func (m *mockRuleRepo) List(ctx context.Context) ([]Rule, error)      { return m.rules, nil }
func (m *mockRuleRepo) Update(ctx context.Context, rule *Rule) error  { return nil }
func (m *mockRuleRepo) Delete(ctx context.Context, id string) error   { return nil }
func (m *mockRuleRepo) Enable(ctx context.Context, id string, active bool) error {
	return nil
}

type recordingExecutor struct {
	executed [][]RuleAction
}

func (r *recordingExecutor) ExecuteActions(ctx context.Context, actions []RuleAction, event common_models.AppEvent) error {
	r.executed = append(r.executed, actions)
	return nil
}

func (r *recordingExecutor) ExecuteAction(ctx context.Context, action RuleAction, event common_models.AppEvent) error {
	return nil
}

type noopAudit struct{}

func (noopAudit) LogChange(ctx context.Context, action common_models.AuditAction, module, recordID string, changes map[string]common_models.Change) error {
	return nil
}

func (noopAudit) ListLogs(ctx context.Context, filters map[string]interface{}, page, limit int64) ([]common_models.AuditLog, error) {
	return nil, nil
}

func newDispatchFixture(rules []Rule) (*recordingExecutor, RuleService) {
	exec := &recordingExecutor{}
	svc := NewRuleService(&mockRuleRepo{rules: rules}, exec, noopAudit{}, zap.NewNop())
	return exec, svc
}

func deviceOfflineEvent(alias string) common_models.AppEvent {
	return common_models.AppEvent{
		Event: "device.offline",
		Payload: map[string]interface{}{
			"alias": alias,
			"state": "Offline",
		},
		At: time.Now(),
	}
}

func TestDispatchRunsMatchingActiveRules(t *testing.T) {
	actions := []RuleAction{{Type: ActionNotify, Config: map[string]interface{}{"title": "t"}}}
	exec, svc := newDispatchFixture([]Rule{
		{Name: "active", Event: "device.offline", Active: true, Actions: actions},
		{Name: "inactive", Event: "device.offline", Active: false, Actions: actions},
		{Name: "other-event", Event: "billing.payment_failed", Active: true, Actions: actions},
	})

	svc.Dispatch(context.Background(), deviceOfflineEvent("kiosk-1"))

	if len(exec.executed) != 1 {
		t.Fatalf("expected exactly one rule to run, got %d", len(exec.executed))
	}
}

func TestDispatchHonorsConditions(t *testing.T) {
	exec, svc := newDispatchFixture([]Rule{
		{
			Name:   "kiosks only",
			Event:  "device.offline",
			Active: true,
			Conditions: []RuleCondition{
				{Field: "alias", Operator: OperatorContains, Value: "kiosk"},
			},
			Actions: []RuleAction{{Type: ActionNotify}},
		},
	})

	svc.Dispatch(context.Background(), deviceOfflineEvent("printer-2"))
	if len(exec.executed) != 0 {
		t.Fatalf("condition should have filtered out the event")
	}

	svc.Dispatch(context.Background(), deviceOfflineEvent("kiosk-1"))
	if len(exec.executed) != 1 {
		t.Fatalf("matching event should have run the rule")
	}
}

func TestDispatchMissingConditionFieldSkips(t *testing.T) {
	exec, svc := newDispatchFixture([]Rule{
		{
			Name:   "needs group",
			Event:  "device.offline",
			Active: true,
			Conditions: []RuleCondition{
				{Field: "group", Operator: OperatorEquals, Value: "lab"},
			},
			Actions: []RuleAction{{Type: ActionNotify}},
		},
	})

	svc.Dispatch(context.Background(), deviceOfflineEvent("kiosk-1"))
	if len(exec.executed) != 0 {
		t.Fatalf("rule with a condition on an absent field must not run")
	}
}

func TestEvaluateConditionsOperators(t *testing.T) {
	svc := &RuleServiceImpl{}
	payload := map[string]interface{}{
		"alias":    "kiosk-1",
		"failures": 3,
	}

	tests := []struct {
		name string
		cond RuleCondition
		want bool
	}{
		{"equals", RuleCondition{Field: "alias", Operator: OperatorEquals, Value: "kiosk-1"}, true},
		{"not equals", RuleCondition{Field: "alias", Operator: OperatorNotEquals, Value: "kiosk-2"}, true},
		{"contains", RuleCondition{Field: "alias", Operator: OperatorContains, Value: "iosk"}, true},
		{"gt", RuleCondition{Field: "failures", Operator: OperatorGreaterThan, Value: 2}, true},
		{"gt false", RuleCondition{Field: "failures", Operator: OperatorGreaterThan, Value: 3}, false},
		{"lt", RuleCondition{Field: "failures", Operator: OperatorLessThan, Value: 10}, true},
		{"unknown operator", RuleCondition{Field: "alias", Operator: "regex", Value: ".*"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.evaluateConditions([]RuleCondition{tt.cond}, payload)
			if got != tt.want {
				t.Errorf("evaluateConditions(%v) = %v, want %v", tt.cond, got, tt.want)
			}
		})
	}
}
