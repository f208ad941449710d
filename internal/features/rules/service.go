package rules

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/features/audit"

	"go.uber.org/zap"
)

type RuleService interface {
	CreateRule(ctx context.Context, rule *Rule) error
	GetRule(ctx context.Context, id string) (*Rule, error)
	ListRules(ctx context.Context) ([]Rule, error)
	UpdateRule(ctx context.Context, rule *Rule) error
	DeleteRule(ctx context.Context, id string) error
	EnableRule(ctx context.Context, id string, active bool) error

	// Dispatch evaluates every active rule bound to the event and runs
	// the actions of the ones whose conditions match. Errors are logged,
	// never returned to the producer.
	Dispatch(ctx context.Context, event common_models.AppEvent)
}

type RuleServiceImpl struct {
	Repo           RuleRepository
	ActionExecutor ActionExecutor
	AuditService   audit.AuditService
	Logger         *zap.Logger
}

func NewRuleService(repo RuleRepository, actionExecutor ActionExecutor, auditService audit.AuditService, logger *zap.Logger) RuleService {
	return &RuleServiceImpl{
		Repo:           repo,
		ActionExecutor: actionExecutor,
		AuditService:   auditService,
		Logger:         logger,
	}
}

func (s *RuleServiceImpl) CreateRule(ctx context.Context, rule *Rule) error {
	err := s.Repo.Create(ctx, rule)
	if err == nil {
		s.AuditService.LogChange(ctx, common_models.AuditActionRule, "rules", rule.ID.Hex(), map[string]common_models.Change{
			"rule": {New: rule},
		})
	}
	return err
}

func (s *RuleServiceImpl) GetRule(ctx context.Context, id string) (*Rule, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *RuleServiceImpl) ListRules(ctx context.Context) ([]Rule, error) {
	return s.Repo.List(ctx)
}

func (s *RuleServiceImpl) UpdateRule(ctx context.Context, rule *Rule) error {
	oldRule, _ := s.GetRule(ctx, rule.ID.Hex())

	err := s.Repo.Update(ctx, rule)
	if err == nil {
		s.AuditService.LogChange(ctx, common_models.AuditActionRule, "rules", rule.ID.Hex(), map[string]common_models.Change{
			"rule": {Old: oldRule, New: rule},
		})
	}
	return err
}

func (s *RuleServiceImpl) DeleteRule(ctx context.Context, id string) error {
	oldRule, _ := s.GetRule(ctx, id)

	err := s.Repo.Delete(ctx, id)
	if err == nil {
		name := id
		if oldRule != nil {
			name = oldRule.Name
		}
		s.AuditService.LogChange(ctx, common_models.AuditActionRule, "rules", name, map[string]common_models.Change{
			"rule": {Old: oldRule, New: "DELETED"},
		})
	}
	return err
}

func (s *RuleServiceImpl) EnableRule(ctx context.Context, id string, active bool) error {
	return s.Repo.Enable(ctx, id, active)
}

func (s *RuleServiceImpl) Dispatch(ctx context.Context, event common_models.AppEvent) {
	rules, err := s.Repo.GetByEvent(ctx, event.Event)
	if err != nil {
		s.Logger.Warn("rule lookup failed", zap.String("event", event.Event), zap.Error(err))
		return
	}

	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		if !s.evaluateConditions(rule.Conditions, event.Payload) {
			continue
		}
		if err := s.ActionExecutor.ExecuteActions(ctx, rule.Actions, event); err != nil {
			s.Logger.Warn("rule execution failed", zap.String("rule", rule.Name), zap.Error(err))
		}
	}
}

func (s *RuleServiceImpl) evaluateConditions(conditions []RuleCondition, payload map[string]interface{}) bool {
	for _, cond := range conditions {
		val, exists := payload[cond.Field]
		if !exists {
			return false
		}

		match := false
		switch cond.Operator {
		case OperatorEquals:
			match = fmt.Sprintf("%v", val) == fmt.Sprintf("%v", cond.Value)
		case OperatorNotEquals:
			match = fmt.Sprintf("%v", val) != fmt.Sprintf("%v", cond.Value)
		case OperatorContains:
			match = strings.Contains(fmt.Sprintf("%v", val), fmt.Sprintf("%v", cond.Value))
		case OperatorGreaterThan:
			match = compareNumeric(val, cond.Value) > 0
		case OperatorLessThan:
			match = compareNumeric(val, cond.Value) < 0
		}

		if !match {
			return false
		}
	}
	return true
}

// compareNumeric returns the sign of a-b, or 0 when either side is not a number.
func compareNumeric(a, b interface{}) int {
	fa, errA := strconv.ParseFloat(fmt.Sprintf("%v", a), 64)
	fb, errB := strconv.ParseFloat(fmt.Sprintf("%v", b), 64)
	if errA != nil || errB != nil {
		return 0
	}
	switch {
	case fa > fb:
		return 1
	case fa < fb:
		return -1
	}
	return 0
}
