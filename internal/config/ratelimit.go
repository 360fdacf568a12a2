package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/JaimeStill/web-quickstart/pkg/middleware"
)

const (
	// EnvRateLimitDisabled turns login rate limiting off.
	EnvRateLimitDisabled = "RATELIMIT_DISABLED"

	// EnvRateLimitRequestsPerMinute overrides the sustained login attempt rate.
	EnvRateLimitRequestsPerMinute = "RATELIMIT_REQUESTS_PER_MINUTE"

	// EnvRateLimitBurst overrides the login attempt burst size.
	EnvRateLimitBurst = "RATELIMIT_BURST"

	// EnvRateLimitTrustedProxies overrides the comma-separated proxy networks
	// whose X-Forwarded-For headers identify the client.
	EnvRateLimitTrustedProxies = "RATELIMIT_TRUSTED_PROXIES"
)

// RateLimitConfig bounds login attempts per client IP. Forwarding headers
// are ignored unless the peer is listed in TrustedProxies.
type RateLimitConfig struct {
	Disabled          bool     `toml:"disabled"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
	Burst             int      `toml:"burst"`
	TrustedProxies    []string `toml:"trusted_proxies"`
}

// Proxies returns the parsed trusted proxy networks. Finalize rejects
// invalid entries, so errors are not expected here.
func (c *RateLimitConfig) Proxies() middleware.Proxies {
	proxies, _ := middleware.ParseProxies(c.TrustedProxies)
	return proxies
}

// Finalize applies defaults, loads environment overrides, and validates the rate limit configuration.
func (c *RateLimitConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *RateLimitConfig) Merge(overlay *RateLimitConfig) {
	if overlay.Disabled {
		c.Disabled = true
	}
	if overlay.RequestsPerMinute != 0 {
		c.RequestsPerMinute = overlay.RequestsPerMinute
	}
	if overlay.Burst != 0 {
		c.Burst = overlay.Burst
	}
	if overlay.TrustedProxies != nil {
		c.TrustedProxies = overlay.TrustedProxies
	}
}

func (c *RateLimitConfig) loadDefaults() {
	if c.RequestsPerMinute == 0 {
		c.RequestsPerMinute = 10
	}
	if c.Burst == 0 {
		c.Burst = 5
	}
}

func (c *RateLimitConfig) loadEnv() {
	if v := os.Getenv(EnvRateLimitDisabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Disabled = b
		}
	}
	if v := os.Getenv(EnvRateLimitRequestsPerMinute); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RequestsPerMinute = n
		}
	}
	if v := os.Getenv(EnvRateLimitBurst); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Burst = n
		}
	}
	if v := os.Getenv(EnvRateLimitTrustedProxies); v != "" {
		c.TrustedProxies = strings.Split(v, ",")
	}
}

func (c *RateLimitConfig) validate() error {
	if c.RequestsPerMinute < 1 {
		return fmt.Errorf("requests_per_minute must be positive")
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be positive")
	}
	if _, err := middleware.ParseProxies(c.TrustedProxies); err != nil {
		return fmt.Errorf("trusted_proxies: %w", err)
	}
	return nil
}
