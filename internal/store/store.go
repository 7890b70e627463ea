// Package store persists the studio collections as JSON documents under
// logical keys, the way the dashboard kept them in browser local storage.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Logical keys used by the studio.
const (
	KeyProducts    = "user_products"
	KeyPosts       = "user_posts"
	KeyScheduled   = "scheduled_posts"
	KeyRules       = "automation_rules"
	KeyConnections = "api_connections"
)

var ErrNotFound = errors.New("store: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Config struct {
	Driver        string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open builds the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config, log *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		log.Info("Using in-memory store")
		return NewMemory(), nil
	case DriverSQLite:
		log.Info("Opening sqlite store", zap.String("path", cfg.SQLitePath))
		return NewSQLite(ctx, cfg.SQLitePath)
	case DriverRedis:
		log.Info("Connecting to redis store", zap.String("addr", cfg.RedisAddr), zap.String("prefix", cfg.RedisPrefix))
		return NewRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		}, log)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
