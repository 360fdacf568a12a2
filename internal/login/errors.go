package login

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/web-quickstart/pkg/session"
)

// ErrInvalidCredentials indicates the username or password did not match.
var ErrInvalidCredentials = errors.New("invalid username/password")

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, session.ErrNoSession) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
