package alerts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
	"trinetra.xyz/crowd-alerts/pkg/common"
)

func TestRateLimiterStore_Basic(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	limiter := store.GetLimiter("client1")
	if limiter == nil {
		t.Fatal("expected limiter, got nil")
	}
	if limiter.Limit() != 1 {
		t.Errorf("expected limit 1, got %v", limiter.Limit())
	}
}

func TestRateLimiterStore_CustomLimit(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	store.SetLimiter("client2", 5, 10)
	limiter := store.GetLimiter("client2")

	if limiter.Limit() != 5 {
		t.Errorf("expected limit 5, got %v", limiter.Limit())
	}
	if limiter.Burst() != 10 {
		t.Errorf("expected burst 10, got %v", limiter.Burst())
	}
}

func TestRateLimiterStore_Concurrency(t *testing.T) {
	store := NewRateLimiterStore(10, 5)
	clientKey := uuid.NewString()

	var wg sync.WaitGroup

	for _i := 0; _i < 100; _i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter := store.GetLimiter(clientKey)
			if limiter == nil {
				t.Error("expected limiter, got nil")
			}
		}()
	}

	wg.Wait()

	first := store.GetLimiter(clientKey)
	if first != store.GetLimiter(clientKey) {
		t.Error("expected one limiter per client after concurrent access")
	}
}

func TestRateLimiter_Enforcement(t *testing.T) {
	store := NewRateLimiterStore(2, 2) // 2 events/sec

	clientKey := uuid.NewString()

	if !store.Allow(clientKey) || !store.Allow(clientKey) {
		t.Fatal("expected first two calls to be allowed")
	}

	if store.Allow(clientKey) {
		t.Error("expected third call to be rate limited")
	}

	// Wait for refill
	time.Sleep(600 * time.Millisecond)
	if !store.Allow(clientKey) {
		t.Error("expected one token to be available after refill")
	}
}

func TestRateLimiterStore_NilAllowsAll(t *testing.T) {
	var store *RateLimiterStore
	for _i := 0; _i < 10; _i++ {
		if !store.Allow("anyone") {
			t.Fatal("nil store should not limit")
		}
	}
}

func TestRateLimiterStore_ClientKeyNormalized(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	assert.Same(t, store.GetLimiter("camera-1"), store.GetLimiter("  camera-1 "))
	assert.Same(t, store.GetLimiter(""), store.GetLimiter(AnonymousClientKey))
	assert.Same(t, store.GetLimiter("   "), store.GetLimiter(AnonymousClientKey))
	assert.Equal(t, 2, store.Len())
}

func TestRateLimiterStore_SetLimiterClampsNegative(t *testing.T) {
	store := NewRateLimiterStore(1, 2)

	store.SetLimiter("client3", -5, -1)
	limiter := store.GetLimiter("client3")
	assert.Equal(t, rate.Limit(0), limiter.Limit())
	assert.Equal(t, 0, limiter.Burst())
	assert.False(t, store.Allow("client3"))
}

func TestRateLimiterStore_Prune(t *testing.T) {
	store := NewRateLimiterStore(1, 2)
	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.GetLimiter("idle")
	store.SetLimiter("pinned", 5, 10)
	now = now.Add(20 * time.Minute)
	store.GetLimiter("recent")

	assert.Equal(t, 1, store.Prune(10*time.Minute))
	assert.Equal(t, 2, store.Len())

	// pinned overrides keep their settings
	assert.Equal(t, rate.Limit(5), store.GetLimiter("pinned").Limit())

	// a pruned client starts over with the defaults
	assert.Equal(t, rate.Limit(1), store.GetLimiter("idle").Limit())
	assert.Equal(t, 0, store.Prune(10*time.Minute))
}

func TestRateLimiterStore_PruneEvery(t *testing.T) {
	common.SetTestLoggerNop()

	store := NewRateLimiterStore(1, 2)
	store.GetLimiter("client1")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.PruneEvery(ctx, 5*time.Millisecond, time.Nanosecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Len() == 0 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("PruneEvery did not stop after cancel")
	}

	// disabled pruning returns at once
	store.PruneEvery(context.Background(), time.Millisecond, 0)
}
