package service

import (
	"sync"

	"golang.org/x/time/rate"
)

// DefaultMaxLimiters bounds the number of clients tracked by a
// RateLimiterRegistry before it starts over.
const DefaultMaxLimiters = 65536

// RateLimiterRegistry keeps one token bucket per client key, typically the
// client IP. A limit of zero or less disables limiting.
type RateLimiterRegistry struct {
	mu          sync.RWMutex
	limiters    map[string]*rate.Limiter
	limit       int
	maxLimiters int
}

// NewRateLimiterRegistry creates a registry allowing limit commands per
// second per key, with a burst of the same size.
func NewRateLimiterRegistry(limit int) *RateLimiterRegistry {
	return &RateLimiterRegistry{
		limiters:    make(map[string]*rate.Limiter),
		limit:       limit,
		maxLimiters: DefaultMaxLimiters,
	}
}

// Enabled reports whether the registry limits anything.
func (r *RateLimiterRegistry) Enabled() bool {
	return r != nil && r.limit > 0
}

// Allow reports whether key may run one more command now.
func (r *RateLimiterRegistry) Allow(key string) bool {
	if !r.Enabled() {
		return true
	}
	return r.GetOrCreate(key).Allow()
}

// GetOrCreate retrieves an existing rate limiter or creates a new one.
func (r *RateLimiterRegistry) GetOrCreate(key string) *rate.Limiter {
	r.mu.RLock()
	limiter, exists := r.limiters[key]
	r.mu.RUnlock()

	if exists {
		return limiter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := r.limiters[key]; exists {
		return limiter
	}

	// Start over once the registry is full.
	if len(r.limiters) >= r.maxLimiters {
		r.limiters = make(map[string]*rate.Limiter)
	}

	limiter = rate.NewLimiter(rate.Limit(r.limit), r.limit)
	r.limiters[key] = limiter

	return limiter
}

// Len returns the number of tracked keys.
func (r *RateLimiterRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.limiters)
}
