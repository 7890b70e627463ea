package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/generator"
	"github.com/BerylCAtieno/content-studio-agent/internal/models"
	"github.com/BerylCAtieno/content-studio-agent/internal/store"
)

type PostInput struct {
	Content   string `json:"content"`
	ProductID string `json:"product_id"`
	Platform  string `json:"platform"`
	Image     string `json:"image"`
}

func (s *Studio) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.posts)
}

// SavePost stores generated copy in the library as a draft.
func (s *Studio) SavePost(ctx context.Context, in PostInput) (models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return models.Post{}, ErrEmptyContent
	}

	platform, err := normalizePlatform(in.Platform)
	if err != nil {
		return models.Post{}, err
	}

	post := models.Post{
		ID:        "post_" + uuid.NewString(),
		Content:   content,
		Image:     in.Image,
		ProductID: in.ProductID,
		Platform:  platform,
		Status:    models.PostStatusDraft,
		CreatedAt: s.now(),
		UserID:    s.user.ID,
		WordCount: generator.CountWords(content),
	}
	if post.Image == "" {
		post.Image = models.DefaultPostImage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if post.ProductID != "" {
		if _, err := s.findProduct(post.ProductID); err != nil {
			return models.Post{}, err
		}
	}

	next := append(clone(s.posts), post)
	if err := save(ctx, s.store, store.KeyPosts, next); err != nil {
		return models.Post{}, err
	}
	s.posts = next

	s.recorder.PostSaved(label(post.Platform, post.Platform != ""))
	s.logger.Info("Post saved", zap.String("post_id", post.ID), zap.Int("words", post.WordCount))
	return post, nil
}

// normalizePlatform accepts an empty platform or one of generator.Platforms.
func normalizePlatform(raw string) (string, error) {
	p := generator.ParsePlatform(raw)
	if p != "" && !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlatform, raw)
	}
	return string(p), nil
}

func (s *Studio) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, found := without(s.posts, func(p models.Post) bool { return p.ID == id })
	if !found {
		return fmt.Errorf("%w: %s", ErrPostNotFound, id)
	}
	if err := save(ctx, s.store, store.KeyPosts, next); err != nil {
		return err
	}
	s.posts = next

	s.logger.Info("Post deleted", zap.String("post_id", id))
	return nil
}

// PublishPost marks a post as published. Nothing is sent to the platform;
// a connected platform only has its published-post counter bumped.
func (s *Studio) PublishPost(ctx context.Context, id string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts := clone(s.posts)
	idx := -1
	for i := range posts {
		if posts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Post{}, fmt.Errorf("%w: %s", ErrPostNotFound, id)
	}

	now := s.now()
	posts[idx].Status = models.PostStatusPublished
	posts[idx].PublishedAt = &now

	conns := clone(s.connections)
	bumped := false
	for i := range conns {
		if conns[i].ID == posts[idx].Platform && conns[i].Connected {
			conns[i].Posts++
			bumped = true
		}
	}

	if bumped {
		if err := save(ctx, s.store, store.KeyConnections, conns); err != nil {
			return models.Post{}, err
		}
	}
	if err := save(ctx, s.store, store.KeyPosts, posts); err != nil {
		if bumped {
			if rbErr := save(ctx, s.store, store.KeyConnections, s.connections); rbErr != nil {
				s.logger.Error("Failed to roll back connection counters", zap.Error(rbErr))
			}
		}
		return models.Post{}, err
	}

	s.posts = posts
	if bumped {
		s.connections = conns
	}

	s.logger.Info("Post published", zap.String("post_id", id), zap.String("platform", posts[idx].Platform))
	return posts[idx], nil
}
