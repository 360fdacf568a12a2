package uploads

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/web-quickstart/pkg/storage"
)

// Domain errors for upload operations.
var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrInvalidFilename = errors.New("filename is empty after sanitising")
	ErrNotFound        = errors.New("upload not found")
	ErrDuplicate       = errors.New("upload already recorded")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoFile) || errors.Is(err, ErrInvalidFilename) {
		return http.StatusBadRequest
	}
	if errors.Is(err, storage.ErrInvalidKey) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
