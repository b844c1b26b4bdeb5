package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(routes ...Route) *Config {
	return &Config{
		Enabled: true,
		Default: Route{Name: TierDefault, Limit: 10, Window: time.Minute},
		Routes:  routes,
	}
}

func TestLimiter_DefaultTier(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "GET", "/sessions/abc/preview")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("127.0.0.1", "GET", "/sessions/abc/document")
	assert.False(t, allowed, "reads share the default bucket")
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
	assert.True(t, info.ResetTime.After(time.Now()))
}

func TestLimiter_GenerateBudgetSpansWorkspaces(t *testing.T) {
	limiter := NewLimiter(testConfig(DefaultRoutes(30, 120)...))
	defer limiter.Stop()

	allowed := 0
	for i := 0; i < 10; i++ {
		path := fmt.Sprintf("/sessions/ws-%d/generate", i)
		if ok, _ := limiter.Allow("10.0.0.1", "POST", path); ok {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed, "fresh workspace ids do not reset the generate burst")

	ok, info := limiter.Allow("10.0.0.1", "POST", "/sessions/ws-99/generate/stream")
	assert.False(t, ok, "streaming generation draws from the same bucket")
	assert.Equal(t, 30, info.Limit)
}

func TestLimiter_ChatAndGenerateAreSeparate(t *testing.T) {
	limiter := NewLimiter(testConfig(DefaultRoutes(30, 120)...))
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		ok, _ := limiter.Allow("10.0.0.1", "POST", "/sessions/ws/generate")
		require.True(t, ok)
	}
	ok, _ := limiter.Allow("10.0.0.1", "POST", "/sessions/ws/generate")
	require.False(t, ok)

	ok, info := limiter.Allow("10.0.0.1", "POST", "/sessions/ws/chat")
	assert.True(t, ok, "an exhausted generate tier leaves chat alone")
	assert.Equal(t, 120, info.Limit)
	assert.Equal(t, 19, info.Remaining)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(testConfig(Route{Name: "one", Method: "POST", Pattern: "/once", Limit: 1, Window: time.Hour}))
	defer limiter.Stop()

	ok, _ := limiter.Allow("a", "POST", "/once")
	assert.True(t, ok)
	ok, _ = limiter.Allow("a", "POST", "/once")
	assert.False(t, ok)
	ok, _ = limiter.Allow("b", "POST", "/once")
	assert.True(t, ok)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(DefaultConfig())
	defer limiter.Stop()

	for i := 0; i < 1000; i++ {
		ok, info := limiter.Allow("127.0.0.1", "GET", "/health")
		require.True(t, ok)
		assert.Equal(t, 0, info.Limit)
	}
	assert.Equal(t, 0, limiter.Len(), "unlimited routes never create buckets")
}

func TestLimiter_AllowList(t *testing.T) {
	cfg := testConfig()
	cfg.Default.Limit = 1
	cfg.Allow = map[string]bool{"127.0.0.1": true}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		ok, info := limiter.Allow("127.0.0.1", "POST", "/sessions/x/generate")
		require.True(t, ok)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		ok, _ := limiter.Allow("127.0.0.1", "POST", "/sessions")
		require.True(t, ok)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	cfg := testConfig()
	cfg.Default.Limit = 100
	limiter := NewLimiter(cfg)
	defer limiter.Stop()
	now := time.Now()
	limiter.now = func() time.Time { return now }

	var wg sync.WaitGroup
	var allowed atomic.Int32
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("127.0.0.1", "GET", "/sessions/x"); ok {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(100), allowed.Load())
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	now := time.Now()
	limiter.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "GET", "/sessions/x")
	}
	require.Equal(t, 10, limiter.Len())

	now = now.Add(2 * time.Hour)
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "GET", "/sessions/x")
	}

	limiter.cleanupBuckets()
	assert.Equal(t, 5, limiter.Len())
}

func TestLimiter_StopIdempotent(t *testing.T) {
	cfg := testConfig()
	cfg.CleanupInterval = time.Minute
	limiter := NewLimiter(cfg)

	assert.NotPanics(t, func() {
		limiter.Stop()
		limiter.Stop()
	})
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	ok, info := limiter.Allow("127.0.0.1", "GET", "/sessions/x/preview")
	assert.True(t, ok)
	assert.Equal(t, 600, info.Limit)

	_, info = limiter.Allow("127.0.0.1", "POST", "/sessions/x/generate")
	assert.Equal(t, 30, info.Limit)
}
