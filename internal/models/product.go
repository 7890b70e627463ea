package models

import "time"

type Product struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Category    string    `json:"category" yaml:"category"`
	Image       string    `json:"image,omitempty" yaml:"image"`
	Description string    `json:"description" yaml:"description"`
	Price       string    `json:"price,omitempty" yaml:"price"`
	Stock       int       `json:"stock" yaml:"stock"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
}

// LowStock reports whether the product should be flagged in the catalog view.
func (p Product) LowStock() bool {
	return p.Stock < 20
}
