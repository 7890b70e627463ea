package studio

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/models"
	"github.com/BerylCAtieno/content-studio-agent/internal/store"
)

type ConnectionStats struct {
	Connected      int `json:"connected"`
	PostsPublished int `json:"posts_published"`
}

func (s *Studio) Connections() []models.APIConnection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.connections)
}

// Connect and Disconnect only flip the stored flag; no platform is called.
func (s *Studio) Connect(ctx context.Context, id string) (models.APIConnection, error) {
	return s.setConnected(ctx, id, true)
}

func (s *Studio) Disconnect(ctx context.Context, id string) (models.APIConnection, error) {
	return s.setConnected(ctx, id, false)
}

func (s *Studio) setConnected(ctx context.Context, id string, connected bool) (models.APIConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := clone(s.connections)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		next[i].Connected = connected
		if err := save(ctx, s.store, store.KeyConnections, next); err != nil {
			return models.APIConnection{}, err
		}
		s.connections = next
		s.logger.Info("API connection updated", zap.String("connection_id", id), zap.Bool("connected", connected))
		return next[i], nil
	}
	return models.APIConnection{}, fmt.Errorf("%w: %s", ErrConnectionNotFound, id)
}

func (s *Studio) ConnectionStats() ConnectionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats ConnectionStats
	for _, c := range s.connections {
		if c.Connected {
			stats.Connected++
		}
		stats.PostsPublished += c.Posts
	}
	return stats
}
