package models

import "time"

type AutomationRule struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Trigger        string         `json:"trigger" yaml:"trigger"`
	TriggerConfig  map[string]any `json:"trigger_config,omitempty" yaml:"trigger_config"`
	Action         string         `json:"action" yaml:"action"`
	ActionConfig   map[string]any `json:"action_config,omitempty" yaml:"action_config"`
	Condition      string         `json:"condition,omitempty" yaml:"condition"`
	Active         bool           `json:"active" yaml:"active"`
	Description    string         `json:"description" yaml:"description"`
	CreatedAt      time.Time      `json:"created_at" yaml:"-"`
	ExecutionCount int            `json:"execution_count" yaml:"execution_count"`
}

// Rule triggers
const (
	TriggerSchedule   = "schedule"
	TriggerEngagement = "engagement"
	TriggerTrending   = "trending"
	TriggerPromotion  = "promotion"
	TriggerInventory  = "inventory"
)

func KnownTrigger(t string) bool {
	switch t {
	case TriggerSchedule, TriggerEngagement, TriggerTrending, TriggerPromotion, TriggerInventory:
		return true
	}
	return false
}

// Rule actions
const (
	ActionCreatePost       = "create_post"
	ActionCreateStory      = "create_story"
	ActionSendNotification = "send_notification"
	ActionSchedulePost     = "schedule_post"
)
