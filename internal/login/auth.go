package login

import (
	"golang.org/x/crypto/bcrypt"
)

// Authenticator checks passwords against bcrypt hashes keyed by username.
type Authenticator struct {
	users map[string][]byte
}

// NewAuthenticator creates an Authenticator over username to bcrypt hash
// pairs.
func NewAuthenticator(users map[string][]byte) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate returns ErrInvalidCredentials unless password matches the
// stored hash for username.
func (a *Authenticator) Authenticate(username, password string) error {
	hash, ok := a.users[username]
	if !ok {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
