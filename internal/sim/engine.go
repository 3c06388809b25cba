// Package sim stands in for real cryptography and hardware I/O. Every backend
// here returns canned or lightly randomized results after an artificial delay,
// behind interfaces a real implementation could satisfy later.
package sim

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Engine owns the random source and the artificial latency policy.
// It is safe for concurrent use; commands run on Bubble Tea's goroutines.
type Engine struct {
	mu    sync.Mutex
	rng   *rand.Rand
	min   time.Duration
	max   time.Duration
	sleep func(ctx context.Context, d time.Duration) error
}

// Option customizes an Engine.
type Option func(*Engine)

// WithDelay sets the latency range. Values are clamped to [0, MaxDelay].
func WithDelay(min, max time.Duration) Option {
	return func(e *Engine) {
		e.min, e.max = clampDelay(min), clampDelay(max)
		if e.min > e.max {
			e.min = e.max
		}
	}
}

// WithSleep replaces the wait primitive, mostly so tests run instantly.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Engine) { e.sleep = fn }
}

// MaxDelay is the longest artificial delay any simulated operation takes.
const MaxDelay = 2 * time.Second

// New builds an engine. seed 0 seeds from the clock.
func New(seed int64, opts ...Option) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &Engine{
		rng:   rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		max:   MaxDelay,
		sleep: sleepCtx,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Instant returns an engine that never waits.
func Instant(seed int64) *Engine {
	return New(seed, WithDelay(0, 0), WithSleep(func(ctx context.Context, _ time.Duration) error {
		return ctx.Err()
	}))
}

// IntN returns a value in [0, n).
func (e *Engine) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.IntN(n)
}

// IntRange returns a value in [lo, hi).
func (e *Engine) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + e.IntN(hi-lo)
}

// Delay picks an artificial latency inside the configured range.
func (e *Engine) Delay() time.Duration {
	if e.max <= e.min {
		return e.min
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.min + time.Duration(e.rng.Int64N(int64(e.max-e.min)+1))
}

// Wait blocks for d or until ctx is done.
func (e *Engine) Wait(ctx context.Context, d time.Duration) error {
	return e.sleep(ctx, clampDelay(d))
}

// Latency waits for a randomly chosen Delay.
func (e *Engine) Latency(ctx context.Context) error {
	return e.Wait(ctx, e.Delay())
}

func (e *Engine) Now() time.Time { return time.Now() }

func clampDelay(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if d > MaxDelay {
		return MaxDelay
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
