package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// EnvAuthUsers adds users as comma-separated username:password pairs.
const EnvAuthUsers = "AUTH_USERS"

// UserConfig is one account allowed to log in. Either Password or
// PasswordHash (bcrypt) must be set; a plain Password is hashed during
// Finalize and then cleared.
type UserConfig struct {
	Username     string `toml:"username"`
	Password     string `toml:"password"`
	PasswordHash string `toml:"password_hash"`
}

// AuthConfig contains the credential store for the login views.
type AuthConfig struct {
	Users      []UserConfig `toml:"users"`
	BcryptCost int          `toml:"bcrypt_cost"`
}

// Finalize applies defaults, loads environment overrides, and hashes any
// plain passwords.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge replaces the user list when the overlay defines one.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.Users != nil {
		c.Users = overlay.Users
	}
	if overlay.BcryptCost != 0 {
		c.BcryptCost = overlay.BcryptCost
	}
}

// Credentials returns the bcrypt hash for each username.
func (c *AuthConfig) Credentials() map[string][]byte {
	creds := make(map[string][]byte, len(c.Users))
	for _, u := range c.Users {
		creds[u.Username] = []byte(u.PasswordHash)
	}
	return creds
}

func (c *AuthConfig) loadDefaults() {
	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
}

func (c *AuthConfig) loadEnv() {
	v := os.Getenv(EnvAuthUsers)
	if v == "" {
		return
	}
	for _, pair := range strings.Split(v, ",") {
		username, password, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || username == "" {
			continue
		}
		c.Users = append(c.Users, UserConfig{Username: username, Password: password})
	}
}

func (c *AuthConfig) validate() error {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	seen := make(map[string]bool, len(c.Users))
	for i := range c.Users {
		u := &c.Users[i]
		if u.Username == "" {
			return fmt.Errorf("users[%d]: username required", i)
		}
		if seen[u.Username] {
			return fmt.Errorf("users[%d]: duplicate username %q", i, u.Username)
		}
		seen[u.Username] = true

		if u.PasswordHash == "" {
			if u.Password == "" {
				return fmt.Errorf("user %q: password or password_hash required", u.Username)
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), c.BcryptCost)
			if err != nil {
				return fmt.Errorf("user %q: hash password: %w", u.Username, err)
			}
			u.PasswordHash = string(hash)
		} else if _, err := bcrypt.Cost([]byte(u.PasswordHash)); err != nil {
			return fmt.Errorf("user %q: invalid password_hash: %w", u.Username, err)
		}
		u.Password = ""
	}
	return nil
}
