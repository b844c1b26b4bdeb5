package ratelimit

import (
	"strings"
	"time"
)

// Route is a throttling tier for requests whose method and path match
// Pattern. Patterns use ServeMux syntax: a "{name}" segment matches any one
// non-empty segment. Routes sharing a Name share a bucket per client.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Limit   int           // requests per Window; zero or less is unlimited
	Window  time.Duration // refill period for Limit
	Burst   int           // bucket capacity, Limit when zero
}

// Tier names used by DefaultRoutes
const (
	TierHealth   = "health"
	TierOpen     = "open"
	TierGenerate = "generate"
	TierChat     = "chat"
	TierClose    = "close"
	TierDefault  = "default"
)

// DefaultRoutes returns the workspace API tiers. Generation is the most
// expensive model call, so it gets the tightest budget; the plain and
// streaming variants draw from the same bucket.
func DefaultRoutes(generatePerHour, chatPerHour int) []Route {
	return []Route{
		{Name: TierHealth, Method: "GET", Pattern: "/health"},
		{Name: TierOpen, Method: "POST", Pattern: "/sessions", Limit: 60, Window: time.Hour, Burst: 10},
		{Name: TierGenerate, Method: "POST", Pattern: "/sessions/{id}/generate", Limit: generatePerHour, Window: time.Hour, Burst: burstFor(generatePerHour, 5)},
		{Name: TierGenerate, Method: "POST", Pattern: "/sessions/{id}/generate/stream", Limit: generatePerHour, Window: time.Hour, Burst: burstFor(generatePerHour, 5)},
		{Name: TierChat, Method: "POST", Pattern: "/sessions/{id}/chat", Limit: chatPerHour, Window: time.Hour, Burst: burstFor(chatPerHour, 20)},
		{Name: TierClose, Method: "DELETE", Pattern: "/sessions/{id}", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// MatchRoute returns the first route whose method and pattern fit the
// request, or nil.
func MatchRoute(method, path string, routes []Route) *Route {
	segments := splitPath(path)
	for i := range routes {
		r := &routes[i]
		if r.Method == method && matchSegments(splitPath(r.Pattern), segments) {
			return r
		}
	}
	return nil
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) != len(path) {
		return false
	}
	for i, p := range pattern {
		if isWildcard(p) {
			if path[i] == "" {
				return false
			}
			continue
		}
		if p != path[i] {
			return false
		}
	}
	return true
}

func isWildcard(segment string) bool {
	return len(segment) > 2 && segment[0] == '{' && segment[len(segment)-1] == '}'
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

// burstFor keeps the burst below a small limit so a tiny hourly budget is
// not spent in one go.
func burstFor(limit, preferred int) int {
	if limit > 0 && limit < preferred {
		return limit
	}
	return preferred
}
