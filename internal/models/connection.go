package models

type APIConnection struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Connected   bool    `json:"connected" yaml:"connected"`
	Icon        string  `json:"icon" yaml:"icon"`
	Color       string  `json:"color" yaml:"color"`
	Description string  `json:"description" yaml:"description"`
	Followers   int     `json:"followers" yaml:"followers"`
	Posts       int     `json:"posts" yaml:"posts"`
	Engagement  float64 `json:"engagement" yaml:"engagement"`
}
