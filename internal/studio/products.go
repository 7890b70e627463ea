package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/models"
	"github.com/BerylCAtieno/content-studio-agent/internal/store"
)

type ProductInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
}

func (in ProductInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case strings.TrimSpace(in.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	case strings.TrimSpace(in.Description) == "":
		return fmt.Errorf("%w: description is required", ErrInvalidProduct)
	case in.Stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidProduct)
	}
	return nil
}

func (in ProductInput) apply(p *models.Product) {
	p.Name = strings.TrimSpace(in.Name)
	p.Category = strings.TrimSpace(in.Category)
	p.Image = in.Image
	p.Description = strings.TrimSpace(in.Description)
	p.Price = in.Price
	p.Stock = in.Stock
}

func (s *Studio) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.products)
}

func (s *Studio) Product(id string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findProduct(id)
}

func (s *Studio) findProduct(id string) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
}

func (s *Studio) AddProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}

	p := models.Product{
		ID:        "product_" + uuid.NewString(),
		CreatedAt: s.now(),
	}
	in.apply(&p)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(clone(s.products), p)
	if err := save(ctx, s.store, store.KeyProducts, next); err != nil {
		return models.Product{}, err
	}
	s.products = next

	s.logger.Info("Product added", zap.String("product_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

func (s *Studio) UpdateProduct(ctx context.Context, id string, in ProductInput) (models.Product, error) {
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := clone(s.products)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		in.apply(&next[i])
		if err := save(ctx, s.store, store.KeyProducts, next); err != nil {
			return models.Product{}, err
		}
		s.products = next
		return next[i], nil
	}
	return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
}

func (s *Studio) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := without(s.products, func(p models.Product) bool { return p.ID == id })
	if !found {
		return fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if err := save(ctx, s.store, store.KeyProducts, next); err != nil {
		return err
	}
	s.products = next

	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}
