package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(configs ...EndpointConfig) *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: configs,
	}
}

func TestLimiterBurstExhaustion(t *testing.T) {
	l := NewLimiter(testConfig(EndpointConfig{
		Path: "/interviews", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2,
	}))
	defer l.Stop()

	allowed, info := l.Allow("1.2.3.4", "/interviews", "POST")
	require.True(t, allowed)
	assert.Equal(t, 10, info.Limit)

	allowed, _ = l.Allow("1.2.3.4", "/interviews", "POST")
	require.True(t, allowed)

	allowed, info = l.Allow("1.2.3.4", "/interviews", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiterPerClientIsolation(t *testing.T) {
	l := NewLimiter(testConfig(EndpointConfig{
		Path: "/interviews", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1,
	}))
	defer l.Stop()

	allowed, _ := l.Allow("1.2.3.4", "/interviews", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("1.2.3.4", "/interviews", "POST")
	require.False(t, allowed)

	// A different client has its own bucket
	allowed, _ = l.Allow("5.6.7.8", "/interviews", "POST")
	assert.True(t, allowed)
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/interviews", "POST")
		require.True(t, allowed)
	}
}

func TestLimiterWhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig(EndpointConfig{
		Path: "/interviews", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1,
	})
	cfg.Whitelist["10.0.0.1"] = true
	cfg.Blacklist["10.0.0.2"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/interviews", "POST")
		require.True(t, allowed)
	}

	allowed, _ := l.Allow("10.0.0.2", "/health", "POST")
	assert.False(t, allowed)
}

func TestLimiterDefaultLimitApplies(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLimit = 2
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, info := l.Allow("1.2.3.4", "/jobs", "GET")
	require.True(t, allowed)
	assert.Equal(t, 2, info.Limit)
	l.Allow("1.2.3.4", "/jobs", "GET")
	allowed, _ = l.Allow("1.2.3.4", "/jobs", "GET")
	assert.False(t, allowed)
}

func TestLimiterDropsIdleBuckets(t *testing.T) {
	l := NewLimiter(testConfig(EndpointConfig{
		Path: "/jobs", Method: "GET", Limit: 10, Window: time.Minute,
	}))
	defer l.Stop()

	l.Allow("1.2.3.4", "/jobs", "GET")
	require.Len(t, l.buckets, 1)

	l.dropIdleBuckets(time.Now().Add(time.Second))
	assert.Empty(t, l.buckets)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/interviews", Method: "POST", Limit: 10},
		{Path: "/interviews/", Method: "POST", Limit: 60},
		{Path: "/jobs", Method: "POST", Limit: 60},
	}

	t.Run("exact match", func(t *testing.T) {
		ec := MatchEndpoint("/interviews", "POST", configs)
		require.NotNil(t, ec)
		assert.Equal(t, 10, ec.Limit)
	})

	t.Run("prefix match", func(t *testing.T) {
		ec := MatchEndpoint("/interviews/abc/answers", "POST", configs)
		require.NotNil(t, ec)
		assert.Equal(t, 60, ec.Limit)
	})

	t.Run("method must match", func(t *testing.T) {
		assert.Nil(t, MatchEndpoint("/jobs", "GET", configs))
	})

	t.Run("health is unlimited", func(t *testing.T) {
		ec := MatchEndpoint("/health", "GET", configs)
		require.NotNil(t, ec)
		assert.Equal(t, 0, ec.Limit)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Nil(t, MatchEndpoint("/users/me", "GET", configs))
	})
}
