package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Decision is the outcome of an admission check. Check never fails; a
// decision is always returned.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// Limiter enforces per-key fixed-window quotas over an injectable store.
type Limiter struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time

	// Chance in [0,1) of sweeping expired entries after a check.
	sweepChance float64
}

// Option customizes a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithSweepChance overrides the probability of an opportunistic sweep.
func WithSweepChance(chance float64) Option {
	return func(l *Limiter) { l.sweepChance = chance }
}

// NewLimiter builds a limiter over the given store.
func NewLimiter(store Store, opts ...Option) *Limiter {
	l := &Limiter{
		store:       store,
		now:         time.Now,
		sweepChance: 0.01,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check runs one admission decision for key under cfg.
//
// The read-modify-write on the entry is a single critical section so
// concurrent bursts cannot lose updates. A store error is treated as a
// missing entry: the request is admitted rather than failing the caller over
// limiter state.
func (l *Limiter) Check(ctx context.Context, key string, cfg Config) Decision {
	if !cfg.Valid() {
		// Programmer error; presets are validated by tests. Fail open.
		return Decision{Allowed: true, Remaining: 0}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, found, err := l.store.Get(ctx, key)
	if err != nil {
		found = false
	}

	var decision Decision
	switch {
	case !found || !now.Before(entry.ResetAt):
		entry = Entry{Count: 1, ResetAt: now.Add(cfg.Interval)}
		_ = l.store.Set(ctx, key, entry)
		decision = Decision{Allowed: true, Remaining: cfg.MaxRequests - 1, ResetIn: cfg.Interval}
	case entry.Count >= cfg.MaxRequests:
		// Deny without incrementing.
		decision = Decision{Allowed: false, Remaining: 0, ResetIn: entry.ResetAt.Sub(now)}
	default:
		entry.Count++
		_ = l.store.Set(ctx, key, entry)
		decision = Decision{Allowed: true, Remaining: cfg.MaxRequests - entry.Count, ResetIn: entry.ResetAt.Sub(now)}
	}

	l.maybeSweep(now)
	return decision
}

// maybeSweep opportunistically drops expired entries when the store supports
// it. Best effort only; skipping it entirely loses nothing but memory.
func (l *Limiter) maybeSweep(now time.Time) {
	sw, ok := l.store.(sweeper)
	if !ok || l.sweepChance <= 0 {
		return
	}
	if rand.Float64() >= l.sweepChance {
		return
	}
	sw.SweepExpired(now)
}
