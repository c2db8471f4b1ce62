package alerts

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"trinetra.xyz/crowd-alerts/pkg/common"
)

// AnonymousClientKey buckets callers the transport could not identify.
const AnonymousClientKey = "anonymous"

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	// set through SetLimiter; survives pruning
	pinned bool
}

// RateLimiterStore manages per-client rate limiters: client key -> rate limiter.
// A client key is whatever the transport identifies a caller by (client id
// header, peer address), so keys churn; Prune drops the idle ones.
type RateLimiterStore struct {
	clients      map[string]*clientLimiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
	now          func() time.Time
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		clients:      make(map[string]*clientLimiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
		now:          time.Now,
	}
}

func normalizeClientKey(clientKey string) string {
	if key := strings.TrimSpace(clientKey); key != "" {
		return key
	}
	return AnonymousClientKey
}

func (s *RateLimiterStore) GetLimiter(clientKey string) *rate.Limiter {
	clientKey = normalizeClientKey(clientKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	client, exists := s.clients[clientKey]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(s.defaultRate, s.defaultBurst)}
		s.clients[clientKey] = client
	}
	client.lastSeen = s.now()
	return client.limiter
}

// SetLimiter overrides the defaults for one client. Negative values are
// clamped to zero, which blocks the client.
func (s *RateLimiterStore) SetLimiter(clientKey string, clientRate rate.Limit, clientBurst int) {
	clientKey = normalizeClientKey(clientKey)
	clientRate = max(clientRate, 0)
	clientBurst = max(clientBurst, 0)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[clientKey] = &clientLimiter{
		limiter:  rate.NewLimiter(clientRate, clientBurst),
		lastSeen: s.now(),
		pinned:   true,
	}
}

// Allow reports whether clientKey may proceed. A nil store allows everything.
func (s *RateLimiterStore) Allow(clientKey string) bool {
	if s == nil {
		return true
	}
	return s.GetLimiter(clientKey).Allow()
}

func (s *RateLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Prune drops default limiters not used for idle and returns how many went.
// Overrides set through SetLimiter are kept.
func (s *RateLimiterStore) Prune(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	pruned := 0
	for key, client := range s.clients {
		if !client.pinned && client.lastSeen.Before(cutoff) {
			delete(s.clients, key)
			pruned++
		}
	}
	return pruned
}

// PruneEvery runs Prune on every tick until ctx is done. idle <= 0 keeps
// every limiter.
func (s *RateLimiterStore) PruneEvery(ctx context.Context, interval, idle time.Duration) {
	if idle <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Prune(idle); n > 0 {
				common.GetLogger().Debug("Pruned idle rate limiters", zap.Int("count", n))
			}
		}
	}
}
