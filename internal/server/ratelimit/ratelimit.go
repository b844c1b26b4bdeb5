// Package ratelimit throttles API clients per route tier with token buckets
// backed by golang.org/x/time/rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleBucketTTL is how long a bucket may go unused before cleanup drops it.
const idleBucketTTL = time.Hour

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// Default applies to requests no route matches
	Default Route
	Routes  []Route
	// Allow lists client IDs that are never throttled
	Allow           map[string]bool
	CleanupInterval time.Duration
}

// DefaultConfig enables throttling with DefaultRoutes at 30 generations and
// 120 chat messages per client per hour.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Default:         Route{Name: TierDefault, Limit: 600, Window: time.Minute},
		Routes:          DefaultRoutes(30, 120),
		Allow:           make(map[string]bool),
		CleanupInterval: 5 * time.Minute,
	}
}

type bucket struct {
	limiter    *rate.Limiter
	capacity   int
	lastAccess time.Time
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	config *Config
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	l := &Limiter{
		config:  config,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}

	return l
}

// Allow reports whether a request from clientID with method and path may
// proceed, consuming a token when it does. Buckets are kept per client and
// route name, so every workspace of one client draws from the same budget.
func (l *Limiter) Allow(clientID, method, path string) (bool, Info) {
	if !l.config.Enabled || l.config.Allow[clientID] {
		return true, Info{Allowed: true}
	}

	route := MatchRoute(method, path, l.config.Routes)
	if route == nil {
		route = &l.config.Default
	}
	if route.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	now := l.now()
	b := l.getBucket(clientID+":"+route.Name, route, now)

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	if tokens < 0 {
		tokens = 0
	}

	perSecond := float64(b.limiter.Limit())
	info := Info{
		Allowed:   allowed,
		Limit:     route.Limit,
		Remaining: int(tokens),
		ResetTime: now,
	}
	if perSecond > 0 {
		if missing := float64(b.capacity) - tokens; missing > 0 {
			info.ResetTime = now.Add(secondsToDuration(missing / perSecond))
		}
		if !allowed {
			info.RetryAfter = secondsToDuration((1 - tokens) / perSecond)
		}
	}
	return allowed, info
}

func (l *Limiter) getBucket(key string, route *Route, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		b.lastAccess = now
		return b
	}

	capacity := route.Burst
	if capacity <= 0 {
		capacity = route.Limit
	}
	window := route.Window
	if window <= 0 {
		window = time.Minute
	}
	every := rate.Limit(float64(route.Limit) / window.Seconds())

	b := &bucket{
		limiter:    rate.NewLimiter(every, capacity),
		capacity:   capacity,
		lastAccess: now,
	}
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupBuckets()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets drops buckets that have been idle longer than idleBucketTTL.
func (l *Limiter) cleanupBuckets() {
	cutoff := l.now().Add(-idleBucketTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}

func secondsToDuration(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
