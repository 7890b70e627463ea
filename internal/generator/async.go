package generator

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

const (
	DefaultMinDelay = 400 * time.Millisecond
	DefaultMaxDelay = 1200 * time.Millisecond
)

// Generator runs Generate behind a randomized delay so callers get the
// same feedback loop a real generation backend would give them.
type Generator struct {
	minDelay time.Duration
	maxDelay time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

type Option func(*Generator)

// WithDelay sets the delay range. A max below min is raised to min.
func WithDelay(min, max time.Duration) Option {
	return func(g *Generator) {
		if min < 0 {
			min = 0
		}
		if max < min {
			max = min
		}
		g.minDelay = min
		g.maxDelay = max
	}
}

func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rnd = rand.New(rand.NewSource(seed))
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{
		minDelay: DefaultMinDelay,
		maxDelay: DefaultMaxDelay,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) delay() time.Duration {
	span := g.maxDelay - g.minDelay
	if span <= 0 {
		return g.minDelay
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.minDelay + time.Duration(g.rnd.Int63n(int64(span)+1))
}

// Wait blocks for the simulated latency and then generates the copy.
// It returns ctx.Err() if the context ends first.
func (g *Generator) Wait(ctx context.Context, req Request) (string, error) {
	timer := time.NewTimer(g.delay())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return Generate(req), nil
	}
}

// Async starts a generation and returns a channel that receives exactly one
// result. The channel is buffered, so a caller that never reads it does
// not strand the goroutine.
func (g *Generator) Async(req Request) <-chan string {
	out := make(chan string, 1)
	d := g.delay()
	go func() {
		time.Sleep(d)
		out <- Generate(req)
	}()
	return out
}
