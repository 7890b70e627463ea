// Package agent holds the A2A agent card served at /.well-known/agent.json.
package agent

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

//go:embed agent.json
var rawCard []byte

// AgentCardData is the validated card, ready to be written to a response.
// It is nil until LoadAgentCard succeeds.
var AgentCardData []byte

var (
	loadOnce sync.Once
	loadErr  error
)

type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
}

type Card struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Version      string            `json:"version"`
	Capabilities map[string]bool   `json:"capabilities"`
	Endpoints    map[string]string `json:"endpoints"`
	Skills       []Skill           `json:"skills"`
}

// LoadAgentCard parses and checks the embedded card once.
func LoadAgentCard() error {
	loadOnce.Do(func() {
		var card Card
		if err := json.Unmarshal(rawCard, &card); err != nil {
			loadErr = fmt.Errorf("failed to parse agent card: %w", err)
			return
		}
		if err := card.validate(); err != nil {
			loadErr = err
			return
		}
		AgentCardData = rawCard
	})
	return loadErr
}

// LoadCard returns the decoded card.
func LoadCard() (Card, error) {
	if err := LoadAgentCard(); err != nil {
		return Card{}, err
	}
	var card Card
	err := json.Unmarshal(AgentCardData, &card)
	return card, err
}

func (c Card) validate() error {
	switch {
	case c.Name == "":
		return errors.New("agent card: name is required")
	case c.Version == "":
		return errors.New("agent card: version is required")
	case c.Endpoints["a2a"] == "":
		return errors.New("agent card: a2a endpoint is required")
	case len(c.Skills) == 0:
		return errors.New("agent card: at least one skill is required")
	}
	return nil
}
