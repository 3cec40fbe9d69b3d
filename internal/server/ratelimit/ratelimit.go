// Package ratelimit provides per-client request rate limiting for the API.
package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       []string
	Tiers           []Tier
}

// Tier is a rate limit for a group of endpoints matched by path prefix
// or fragment plus method. Export runs a headless browser per request,
// so its tier is far stricter than plain CRUD.
type Tier struct {
	Prefix   string
	Fragment string // matched anywhere in the path when set
	Method   string // empty matches any method
	Limit    int
	Window   time.Duration
}

func (t Tier) matches(path, method string) bool {
	if t.Method != "" && t.Method != method {
		return false
	}
	if t.Fragment != "" {
		return strings.Contains(path, t.Fragment)
	}
	return strings.HasPrefix(path, t.Prefix)
}

// LoadConfig loads rate limiting configuration from environment variables.
// RATE_LIMIT_ENABLED (default true), RATE_LIMIT_DEFAULT_LIMIT (default 300
// per minute) and RATE_LIMIT_WHITELIST (comma-separated IPs) are honored.
func LoadConfig() *Config {
	enabled := true
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		enabled = v == "true" || v == "1"
	}
	if !enabled {
		return &Config{Enabled: false}
	}

	defaultLimit := 300
	if v := os.Getenv("RATE_LIMIT_DEFAULT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			defaultLimit = n
		}
	}

	var whitelist []string
	for _, ip := range strings.Split(os.Getenv("RATE_LIMIT_WHITELIST"), ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			whitelist = append(whitelist, ip)
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       whitelist,
		Tiers: []Tier{
			// Auth endpoints: slow brute force down
			{Prefix: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute},
			{Prefix: "/auth/register", Method: "POST", Limit: 10, Window: time.Minute},
			// Export endpoints: each request drives a browser capture
			{Fragment: "/export/", Method: "GET", Limit: 20, Window: time.Minute},
		},
	}
}

// Info describes the state of a client's rate limit bucket.
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	count       int
	windowStart time.Time
}

// Limiter enforces fixed-window rate limits keyed by client and tier.
type Limiter struct {
	config *Config

	mu      sync.Mutex
	buckets map[string]*bucket
	done    chan struct{}
}

// NewLimiter creates a limiter and starts its cleanup goroutine.
func NewLimiter(cfg *Config) *Limiter {
	l := &Limiter{
		config:  cfg,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		go l.cleanupLoop()
	}
	return l
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	select {
	case <-l.done:
	default:
		close(l.done)
	}
}

// Allow records a request from the client for the given path and method
// and reports whether it is within the limit.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{}
	}
	for _, ip := range l.config.Whitelist {
		if clientID == ip {
			return true, Info{}
		}
	}

	limit := l.config.DefaultLimit
	window := l.config.DefaultWindow
	key := clientID + "|default"
	for _, tier := range l.config.Tiers {
		if tier.matches(path, method) {
			limit = tier.Limit
			window = tier.Window
			key = clientID + "|" + tier.Prefix + tier.Fragment + "|" + tier.Method
			break
		}
	}

	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) >= window {
		b = &bucket{windowStart: now}
		l.buckets[key] = b
	}

	reset := b.windowStart.Add(window)
	info := Info{
		Limit:     limit,
		ResetTime: reset,
	}

	if b.count >= limit {
		info.Remaining = 0
		info.RetryAfter = time.Until(reset)
		return false, info
	}

	b.count++
	info.Remaining = limit - b.count
	return true, info
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

// cleanup drops buckets whose window has long expired.
func (l *Limiter) cleanup() {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if now.Sub(b.windowStart) >= 2*l.config.DefaultWindow {
			delete(l.buckets, key)
		}
	}
}
