package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  5,
		DefaultWindow: time.Minute,
		Tiers: []Tier{
			{Prefix: "/auth/login", Method: "POST", Limit: 2, Window: time.Minute},
			{Fragment: "/export/", Method: "GET", Limit: 3, Window: time.Minute},
		},
	}
}

func TestLimiter_DefaultTier(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("1.2.3.4", "/resumes", "GET")
		require.True(t, allowed, "request %d", i)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	allowed, info := l.Allow("1.2.3.4", "/resumes", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_AuthTierIsStricter(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, _ := l.Allow("1.2.3.4", "/auth/login", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/auth/login", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/auth/login", "POST")
	assert.False(t, allowed)

	// Default tier unaffected for the same client
	allowed, _ = l.Allow("1.2.3.4", "/resumes", "GET")
	assert.True(t, allowed)
}

func TestLimiter_ExportTierMatchesFragment(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	path := "/resumes/0c7e67f8/export/pdf"
	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("1.2.3.4", path, "GET")
		require.True(t, allowed)
		assert.Equal(t, 3, info.Limit)
	}
	allowed, _ := l.Allow("1.2.3.4", path, "GET")
	assert.False(t, allowed)

	// Plain resume reads use the default tier
	allowed, info := l.Allow("1.2.3.4", "/resumes/0c7e67f8", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 5, info.Limit)
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("1.1.1.1", "/resumes", "GET")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("1.1.1.1", "/resumes", "GET")
	require.False(t, allowed)

	allowed, _ = l.Allow("2.2.2.2", "/resumes", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WindowResets(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 1
	cfg.DefaultWindow = 10 * time.Millisecond
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("1.2.3.4", "/resumes", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/resumes", "GET")
	require.False(t, allowed)

	time.Sleep(15 * time.Millisecond)
	allowed, _ = l.Allow("1.2.3.4", "/resumes", "GET")
	assert.True(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/resumes", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 1
	cfg.Whitelist = []string{"9.9.9.9"}
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("9.9.9.9", "/resumes", "GET")
		require.True(t, allowed)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")
	t.Setenv("RATE_LIMIT_WHITELIST", "")

	cfg := LoadConfig()
	require.True(t, cfg.Enabled)
	assert.Equal(t, 300, cfg.DefaultLimit)
	assert.NotEmpty(t, cfg.Tiers)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}
