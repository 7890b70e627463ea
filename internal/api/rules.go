package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/content-studio-agent/internal/models"
	"github.com/BerylCAtieno/content-studio-agent/internal/studio"
)

// ruleView adds the display labels for trigger and action.
type ruleView struct {
	models.AutomationRule
	TriggerText string `json:"trigger_text"`
	ActionText  string `json:"action_text"`
}

type evaluateRequest struct {
	Metrics map[string]float64 `json:"metrics"`
}

func newRuleView(r models.AutomationRule) ruleView {
	return ruleView{
		AutomationRule: r,
		TriggerText:    studio.TriggerText(r.Trigger),
		ActionText:     studio.ActionText(r.Action),
	}
}

func (h *Handler) listRules(c *gin.Context) {
	rules := h.studio.Rules()
	views := make([]ruleView, 0, len(rules))
	for _, r := range rules {
		views = append(views, newRuleView(r))
	}
	c.JSON(http.StatusOK, gin.H{
		"rules": views,
		"stats": h.studio.AutomationStats(),
	})
}

func (h *Handler) createRule(c *gin.Context) {
	var in studio.RuleInput
	if !bind(c, &in) {
		return
	}
	rule, err := h.studio.AddRule(c.Request.Context(), in)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRuleView(rule))
}

func (h *Handler) toggleRule(c *gin.Context) {
	rule, err := h.studio.ToggleRule(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRuleView(rule))
}

// testRule blocks for the configured test delay.
func (h *Handler) testRule(c *gin.Context) {
	rule, err := h.studio.TestRule(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRuleView(rule))
}

func (h *Handler) evaluateRule(c *gin.Context) {
	var req evaluateRequest
	if !bind(c, &req) {
		return
	}
	eval, err := h.studio.EvaluateRule(c.Request.Context(), c.Param("id"), req.Metrics)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rule":     newRuleView(eval.Rule),
		"matched":  eval.Matched,
		"executed": eval.Executed,
	})
}

func (h *Handler) deleteRule(c *gin.Context) {
	if err := h.studio.DeleteRule(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
