package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config contains session cookie configuration.
type Config struct {
	CookieName string `toml:"cookie_name"`
	// Secret signs session tokens. A random secret is generated when empty,
	// which invalidates sessions on restart.
	Secret string `toml:"secret"`
	MaxAge string `toml:"max_age"`
	Secure bool   `toml:"secure"`
}

// Env maps environment variable names for session configuration.
type Env struct {
	CookieName string
	Secret     string
	MaxAge     string
	Secure     string
}

// MaxAgeDuration parses and returns the session lifetime.
func (c *Config) MaxAgeDuration() time.Duration {
	d, _ := time.ParseDuration(c.MaxAge)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the session configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	if c.Secret == "" {
		secret, err := generateSecret()
		if err != nil {
			return fmt.Errorf("generate secret: %w", err)
		}
		c.Secret = secret
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.MaxAge != "" {
		c.MaxAge = overlay.MaxAge
	}
	if overlay.Secure {
		c.Secure = true
	}
}

func (c *Config) loadDefaults() {
	if c.CookieName == "" {
		c.CookieName = "session"
	}
	if c.MaxAge == "" {
		c.MaxAge = "24h"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.CookieName != "" {
		if v := os.Getenv(env.CookieName); v != "" {
			c.CookieName = v
		}
	}
	if env.Secret != "" {
		if v := os.Getenv(env.Secret); v != "" {
			c.Secret = v
		}
	}
	if env.MaxAge != "" {
		if v := os.Getenv(env.MaxAge); v != "" {
			c.MaxAge = v
		}
	}
	if env.Secure != "" {
		if v := os.Getenv(env.Secure); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Secure = b
			}
		}
	}
}

func (c *Config) validate() error {
	if c.CookieName == "" {
		return fmt.Errorf("cookie_name required")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("secret must be at least 16 characters")
	}
	d, err := time.ParseDuration(c.MaxAge)
	if err != nil {
		return fmt.Errorf("invalid max_age: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("max_age must be positive")
	}
	return nil
}

func generateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
