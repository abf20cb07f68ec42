package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestPresetsAreValid(t *testing.T) {
	for name, cfg := range presets {
		assert.True(t, cfg.Valid(), "preset %s", name)
	}
	assert.Equal(t, presets[LimitDefault], Preset("no-such-limit"))
	assert.Equal(t, 3, Preset(LimitCreateTicket).MaxRequests)
}

func TestCheck_QuotaBound(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(NewMemoryStore(), WithClock(clock.Now), WithSweepChance(0))
	cfg := Config{Interval: time.Minute, MaxRequests: 5}
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		decision := limiter.Check(ctx, "login:1.2.3.4", cfg)
		require.True(t, decision.Allowed, "request %d", i+1)
	}
	decision := limiter.Check(ctx, "login:1.2.3.4", cfg)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 0, decision.Remaining)
}

func TestCheck_MonotonicRemaining(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(NewMemoryStore(), WithClock(clock.Now), WithSweepChance(0))
	cfg := Config{Interval: time.Minute, MaxRequests: 4}
	ctx := context.Background()

	for want := 3; want >= 0; want-- {
		decision := limiter.Check(ctx, "k", cfg)
		require.True(t, decision.Allowed)
		assert.Equal(t, want, decision.Remaining)
	}
}

func TestCheck_WindowReset(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(NewMemoryStore(), WithClock(clock.Now), WithSweepChance(0))
	cfg := Config{Interval: time.Minute, MaxRequests: 2}
	ctx := context.Background()

	limiter.Check(ctx, "k", cfg)
	limiter.Check(ctx, "k", cfg)
	require.False(t, limiter.Check(ctx, "k", cfg).Allowed)

	// A request at resetAt starts a fresh window regardless of prior denials.
	clock.Advance(time.Minute)
	decision := limiter.Check(ctx, "k", cfg)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 1, decision.Remaining)
}

// Scenario from the admission controller's reference behavior: 3/60s limit,
// three immediate calls admitted with remaining 2,1,0, a fourth denied with
// the window nearly whole, a fifth after the window admitted again.
func TestCheck_ReferenceScenario(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(NewMemoryStore(), WithClock(clock.Now), WithSweepChance(0))
	cfg := Config{Interval: 60000 * time.Millisecond, MaxRequests: 3}
	ctx := context.Background()
	start := clock.Now()

	for _, want := range []int{2, 1, 0} {
		decision := limiter.Check(ctx, "k", cfg)
		require.True(t, decision.Allowed)
		require.Equal(t, want, decision.Remaining)
		clock.Advance(5 * time.Millisecond)
	}

	clock.Advance(5 * time.Millisecond) // now +20ms from start
	denied := limiter.Check(ctx, "k", cfg)
	require.False(t, denied.Allowed)
	assert.Equal(t, 59980*time.Millisecond, denied.ResetIn)

	clock.Advance(start.Add(61000 * time.Millisecond).Sub(clock.Now()))
	fresh := limiter.Check(ctx, "k", cfg)
	assert.True(t, fresh.Allowed)
	assert.Equal(t, 2, fresh.Remaining)
}

func TestCheck_IndependentKeys(t *testing.T) {
	clock := newFakeClock()
	limiter := NewLimiter(NewMemoryStore(), WithClock(clock.Now), WithSweepChance(0))
	cfg := Config{Interval: time.Minute, MaxRequests: 1}
	ctx := context.Background()

	require.True(t, limiter.Check(ctx, "trackFolio:1.1.1.1", cfg).Allowed)
	require.False(t, limiter.Check(ctx, "trackFolio:1.1.1.1", cfg).Allowed)
	assert.True(t, limiter.Check(ctx, "trackFolio:2.2.2.2", cfg).Allowed)
	assert.True(t, limiter.Check(ctx, "createTicket:1.1.1.1", cfg).Allowed)
}

func TestCheck_DenyDoesNotIncrement(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore()
	limiter := NewLimiter(store, WithClock(clock.Now), WithSweepChance(0))
	cfg := Config{Interval: time.Minute, MaxRequests: 1}
	ctx := context.Background()

	limiter.Check(ctx, "k", cfg)
	for i := 0; i < 10; i++ {
		limiter.Check(ctx, "k", cfg)
	}
	entry, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, entry.Count)
}

func TestCheck_ConcurrentBurstHoldsQuota(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), WithSweepChance(0))
	cfg := Config{Interval: time.Minute, MaxRequests: 25}
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Check(ctx, "burst", cfg).Allowed {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 25, admitted)
}

func TestSweepExpiredEntries(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore()
	// Sweep on every check to make the behavior deterministic.
	limiter := NewLimiter(store, WithClock(clock.Now), WithSweepChance(1))
	cfg := Config{Interval: time.Minute, MaxRequests: 5}
	ctx := context.Background()

	limiter.Check(ctx, "a", cfg)
	limiter.Check(ctx, "b", cfg)
	require.Equal(t, 2, store.Len())

	clock.Advance(2 * time.Minute)
	limiter.Check(ctx, "c", cfg)
	// a and b expired; only c's fresh window remains.
	assert.Equal(t, 1, store.Len())
}

func TestCheck_InvalidConfigFailsOpen(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), WithSweepChance(0))
	decision := limiter.Check(context.Background(), "k", Config{})
	assert.True(t, decision.Allowed)
}
