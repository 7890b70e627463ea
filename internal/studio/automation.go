package studio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/models"
	"github.com/BerylCAtieno/content-studio-agent/internal/rules"
	"github.com/BerylCAtieno/content-studio-agent/internal/store"
)

type RuleInput struct {
	Name          string         `json:"name"`
	Trigger       string         `json:"trigger"`
	TriggerConfig map[string]any `json:"trigger_config"`
	Action        string         `json:"action"`
	ActionConfig  map[string]any `json:"action_config"`
	Condition     string         `json:"condition"`
	Active        bool           `json:"active"`
	Description   string         `json:"description"`
}

type AutomationStats struct {
	ActiveRules     int `json:"active_rules"`
	TotalExecutions int `json:"total_executions"`
}

// Evaluation is the outcome of checking a rule condition against metrics.
type Evaluation struct {
	Rule     models.AutomationRule `json:"rule"`
	Matched  bool                  `json:"matched"`
	Executed bool                  `json:"executed"`
}

func (s *Studio) Rules() []models.AutomationRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.rules)
}

func (s *Studio) AddRule(ctx context.Context, in RuleInput) (models.AutomationRule, error) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return models.AutomationRule{}, fmt.Errorf("%w: name is required", ErrInvalidRule)
	case strings.TrimSpace(in.Trigger) == "":
		return models.AutomationRule{}, fmt.Errorf("%w: trigger is required", ErrInvalidRule)
	case strings.TrimSpace(in.Action) == "":
		return models.AutomationRule{}, fmt.Errorf("%w: action is required", ErrInvalidRule)
	}
	if in.Condition != "" {
		if err := s.evaluator.Compile(in.Condition); err != nil {
			return models.AutomationRule{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
	}

	rule := models.AutomationRule{
		ID:            "rule_" + uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Trigger:       strings.TrimSpace(in.Trigger),
		TriggerConfig: in.TriggerConfig,
		Action:        strings.TrimSpace(in.Action),
		ActionConfig:  in.ActionConfig,
		Condition:     in.Condition,
		Active:        in.Active,
		Description:   in.Description,
		CreatedAt:     s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(clone(s.rules), rule)
	if err := save(ctx, s.store, store.KeyRules, next); err != nil {
		return models.AutomationRule{}, err
	}
	s.rules = next

	s.logger.Info("Automation rule added", zap.String("rule_id", rule.ID), zap.String("trigger", rule.Trigger))
	return rule, nil
}

// updateRule applies fn to the rule with the given id and persists the
// collection. Callers must hold s.mu.
func (s *Studio) updateRule(ctx context.Context, id string, fn func(*models.AutomationRule)) (models.AutomationRule, error) {
	next := clone(s.rules)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		fn(&next[i])
		if err := save(ctx, s.store, store.KeyRules, next); err != nil {
			return models.AutomationRule{}, err
		}
		s.rules = next
		return next[i], nil
	}
	return models.AutomationRule{}, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
}

func (s *Studio) findRule(id string) (models.AutomationRule, bool) {
	for _, r := range s.rules {
		if r.ID == id {
			return r, true
		}
	}
	return models.AutomationRule{}, false
}

func (s *Studio) ToggleRule(ctx context.Context, id string) (models.AutomationRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule, err := s.updateRule(ctx, id, func(r *models.AutomationRule) { r.Active = !r.Active })
	if err != nil {
		return models.AutomationRule{}, err
	}
	s.logger.Info("Automation rule toggled", zap.String("rule_id", id), zap.Bool("active", rule.Active))
	return rule, nil
}

// TestRule simulates a run: after the test delay the rule's execution
// count goes up by one. It returns early with ctx.Err() if ctx ends first.
func (s *Studio) TestRule(ctx context.Context, id string) (models.AutomationRule, error) {
	s.mu.RLock()
	_, ok := s.findRule(id)
	s.mu.RUnlock()
	if !ok {
		return models.AutomationRule{}, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}

	timer := time.NewTimer(s.testDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return models.AutomationRule{}, ctx.Err()
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rule, err := s.updateRule(ctx, id, func(r *models.AutomationRule) { r.ExecutionCount++ })
	if err != nil {
		return models.AutomationRule{}, err
	}
	s.recorder.RuleExecuted(label(rule.Trigger, models.KnownTrigger(rule.Trigger)), "test")
	s.logger.Info("Automation rule executed", zap.String("rule_id", id), zap.Int("execution_count", rule.ExecutionCount))
	return rule, nil
}

// EvaluateRule checks the rule's condition against metrics. An active rule
// whose condition matches counts an execution.
func (s *Studio) EvaluateRule(ctx context.Context, id string, metrics map[string]float64) (Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule, ok := s.findRule(id)
	if !ok {
		return Evaluation{}, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	if rule.Condition == "" {
		return Evaluation{}, fmt.Errorf("%w: %s", ErrNoCondition, id)
	}

	matched, err := s.evaluator.Evaluate(rule.Condition, rules.Facts{Metrics: metrics, Rule: rule.TriggerConfig})
	if err != nil {
		return Evaluation{}, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	eval := Evaluation{Rule: rule, Matched: matched}
	if !matched || !rule.Active {
		return eval, nil
	}

	rule, err = s.updateRule(ctx, id, func(r *models.AutomationRule) { r.ExecutionCount++ })
	if err != nil {
		return Evaluation{}, err
	}
	s.recorder.RuleExecuted(label(rule.Trigger, models.KnownTrigger(rule.Trigger)), "evaluation")

	eval.Rule = rule
	eval.Executed = true
	return eval, nil
}

func (s *Studio) DeleteRule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := without(s.rules, func(r models.AutomationRule) bool { return r.ID == id })
	if !found {
		return fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	if err := save(ctx, s.store, store.KeyRules, next); err != nil {
		return err
	}
	s.rules = next

	s.logger.Info("Automation rule deleted", zap.String("rule_id", id))
	return nil
}

func (s *Studio) AutomationStats() AutomationStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats AutomationStats
	for _, r := range s.rules {
		if r.Active {
			stats.ActiveRules++
		}
		stats.TotalExecutions += r.ExecutionCount
	}
	return stats
}

func TriggerText(trigger string) string {
	switch trigger {
	case models.TriggerSchedule:
		return "Programación temporal"
	case models.TriggerEngagement:
		return "Nivel de engagement"
	case models.TriggerTrending:
		return "Producto en tendencia"
	case models.TriggerPromotion:
		return "Promoción activa"
	case models.TriggerInventory:
		return "Nivel de inventario"
	default:
		return trigger
	}
}

func ActionText(action string) string {
	switch action {
	case models.ActionCreatePost:
		return "Crear post automático"
	case models.ActionCreateStory:
		return "Crear story"
	case models.ActionSendNotification:
		return "Enviar notificación"
	case models.ActionSchedulePost:
		return "Programar publicación"
	default:
		return action
	}
}
