// Package studio is the application state behind the dashboard: the
// product catalog, the post library, the publishing calendar, automation
// rules and social API connection records. Each collection is mirrored to
// the key-value store under its own key.
package studio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/generator"
	"github.com/BerylCAtieno/content-studio-agent/internal/models"
	"github.com/BerylCAtieno/content-studio-agent/internal/rules"
	"github.com/BerylCAtieno/content-studio-agent/internal/store"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrScheduleNotFound   = errors.New("scheduled post not found")
	ErrRuleNotFound       = errors.New("automation rule not found")
	ErrConnectionNotFound = errors.New("api connection not found")
	ErrEmptyContent       = errors.New("content is empty")
	ErrInvalidPlatform    = errors.New("unknown platform")
	ErrInvalidProduct     = errors.New("invalid product")
	ErrInvalidRule        = errors.New("invalid automation rule")
	ErrInvalidDate        = errors.New("invalid scheduled date")
	ErrNoCondition        = errors.New("automation rule has no condition")
)

// ContentGenerator is the delayed generation call the studio depends on.
type ContentGenerator interface {
	Wait(ctx context.Context, req generator.Request) (string, error)
}

// ConditionEvaluator compiles and runs automation rule conditions.
type ConditionEvaluator interface {
	Compile(expr string) error
	Evaluate(expr string, facts rules.Facts) (bool, error)
}

// Recorder receives business events for metrics.
type Recorder interface {
	ObserveGeneration(contentType, tone, length string, words int, shortfall bool)
	PostSaved(platform string)
	RuleExecuted(trigger, origin string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveGeneration(string, string, string, int, bool) {}

func (nopRecorder) PostSaved(string) {}

func (nopRecorder) RuleExecuted(string, string) {}

type Studio struct {
	store     store.Store
	gen       ContentGenerator
	evaluator ConditionEvaluator
	recorder  Recorder
	logger    *zap.Logger
	now       func() time.Time
	testDelay time.Duration

	mu          sync.RWMutex
	user        models.User
	products    []models.Product
	posts       []models.Post
	scheduled   []models.ScheduledPost
	rules       []models.AutomationRule
	connections []models.APIConnection
}

type Option func(*Studio)

func WithClock(now func() time.Time) Option {
	return func(s *Studio) { s.now = now }
}

// WithRuleTestDelay sets how long TestRule waits before counting a run.
func WithRuleTestDelay(d time.Duration) Option {
	return func(s *Studio) { s.testDelay = d }
}

func WithEvaluator(e ConditionEvaluator) Option {
	return func(s *Studio) { s.evaluator = e }
}

func WithRecorder(r Recorder) Option {
	return func(s *Studio) { s.recorder = r }
}

func New(st store.Store, gen ContentGenerator, log *zap.Logger, opts ...Option) (*Studio, error) {
	s := &Studio{
		store:     st,
		gen:       gen,
		recorder:  nopRecorder{},
		logger:    log.Named("Studio"),
		now:       time.Now,
		testDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.evaluator == nil {
		e, err := rules.NewEvaluator()
		if err != nil {
			return nil, err
		}
		s.evaluator = e
	}
	s.user = models.DemoUser(s.now())
	return s, nil
}

// Init loads every collection from the store and seeds the ones that are
// still empty. Unreadable documents are treated as empty.
func (s *Studio) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = load[models.Product](ctx, s, store.KeyProducts)
	s.posts = load[models.Post](ctx, s, store.KeyPosts)
	s.scheduled = load[models.ScheduledPost](ctx, s, store.KeyScheduled)
	s.rules = load[models.AutomationRule](ctx, s, store.KeyRules)
	s.connections = load[models.APIConnection](ctx, s, store.KeyConnections)

	seed, err := loadSeed()
	if err != nil {
		return err
	}
	now := s.now()

	if len(s.products) == 0 {
		products := seed.products(now)
		if err := save(ctx, s.store, store.KeyProducts, products); err != nil {
			return err
		}
		s.products = products
		s.logger.Info("Seeded initial products", zap.Int("count", len(products)))
	}
	if len(s.rules) == 0 {
		seeded := seed.rules(now)
		if err := save(ctx, s.store, store.KeyRules, seeded); err != nil {
			return err
		}
		s.rules = seeded
		s.logger.Info("Seeded automation rules", zap.Int("count", len(seeded)))
	}
	if len(s.connections) == 0 {
		conns := seed.connections()
		if err := save(ctx, s.store, store.KeyConnections, conns); err != nil {
			return err
		}
		s.connections = conns
		s.logger.Info("Seeded api connections", zap.Int("count", len(conns)))
	}

	s.logger.Info("Studio data loaded",
		zap.Int("products", len(s.products)),
		zap.Int("posts", len(s.posts)),
		zap.Int("scheduled", len(s.scheduled)),
		zap.Int("rules", len(s.rules)),
		zap.Int("connections", len(s.connections)),
	)
	return nil
}

func (s *Studio) User() models.User {
	return s.user
}

func load[T any](ctx context.Context, s *Studio, key string) []T {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return []T{}
	}
	if err != nil {
		s.logger.Warn("Failed to read collection, starting empty", zap.String("key", key), zap.Error(err))
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("Stored collection is not valid JSON, starting empty", zap.String("key", key), zap.Error(err))
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func save[T any](ctx context.Context, st store.Store, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := st.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// without returns a copy of items minus the first element match accepts.
func without[T any](items []T, match func(T) bool) ([]T, bool) {
	out := make([]T, 0, len(items))
	found := false
	for _, item := range items {
		if !found && match(item) {
			found = true
			continue
		}
		out = append(out, item)
	}
	return out, found
}

func clone[T any](items []T) []T {
	return append([]T(nil), items...)
}
