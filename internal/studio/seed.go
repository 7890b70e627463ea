package studio

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BerylCAtieno/content-studio-agent/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

type seedData struct {
	Products    []models.Product        `yaml:"products"`
	Rules       []models.AutomationRule `yaml:"rules"`
	Connections []models.APIConnection  `yaml:"connections"`
}

func loadSeed() (*seedData, error) {
	var seed seedData
	if err := yaml.Unmarshal(seedYAML, &seed); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return &seed, nil
}

func (d *seedData) products(now time.Time) []models.Product {
	out := clone(d.Products)
	for i := range out {
		out[i].CreatedAt = now
	}
	return out
}

func (d *seedData) rules(now time.Time) []models.AutomationRule {
	out := clone(d.Rules)
	for i := range out {
		out[i].CreatedAt = now
	}
	return out
}

func (d *seedData) connections() []models.APIConnection {
	return clone(d.Connections)
}

// Catalog returns the built-in product catalog without touching a store.
func Catalog() ([]models.Product, error) {
	seed, err := loadSeed()
	if err != nil {
		return nil, err
	}
	return seed.products(time.Time{}), nil
}
