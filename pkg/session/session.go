// Package session keeps the logged in user in a signed cookie. The cookie
// value is an HS256 JWT whose subject is the username, so the client can read
// the session but cannot alter it without the secret.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession indicates the request carries no valid session.
var ErrNoSession = errors.New("session: no valid session")

const issuer = "web-quickstart"

// Manager issues and verifies session cookies.
type Manager struct {
	name   string
	secret []byte
	maxAge time.Duration
	secure bool
	now    func() time.Time
}

// New creates a Manager from finalized configuration.
func New(cfg *Config) *Manager {
	return &Manager{
		name:   cfg.CookieName,
		secret: []byte(cfg.Secret),
		maxAge: cfg.MaxAgeDuration(),
		secure: cfg.Secure,
		now:    time.Now,
	}
}

// Issue returns a cookie that logs username in.
func (m *Manager) Issue(username string) (*http.Cookie, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.maxAge)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	return &http.Cookie{
		Name:     m.name,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Read returns the username stored in the request's session cookie.
func (m *Manager) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(m.name)
	if err != nil {
		return "", ErrNoSession
	}

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if claims.Subject == "" {
		return "", ErrNoSession
	}

	return claims.Subject, nil
}

// Clear returns a cookie that removes the session.
func (m *Manager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
