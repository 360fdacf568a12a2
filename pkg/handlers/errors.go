package handlers

import (
	"errors"
	"fmt"
	"html"
	"net/http"
)

var descriptions = map[int]string{
	http.StatusBadRequest:            "The browser (or proxy) sent a request that this server could not understand.",
	http.StatusUnauthorized:          "The server could not verify that you are authorized to access the URL requested.",
	http.StatusForbidden:             "You don't have the permission to access the requested resource.",
	http.StatusNotFound:              "The requested URL was not found on the server.",
	http.StatusMethodNotAllowed:      "The method is not allowed for the requested URL.",
	http.StatusRequestEntityTooLarge: "The data value transmitted exceeds the capacity limit.",
	http.StatusTooManyRequests:       "This user has exceeded an allotted request count. Try again later.",
	http.StatusInternalServerError:   "The server encountered an internal error and was unable to complete your request.",
}

// HTTPError aborts a view with an HTTP status. The optional Err carries the
// underlying cause for logging; it is never shown to the client.
type HTTPError struct {
	Status int
	Err    error
}

// Abort returns an HTTPError for status. Returning it from a View stops the
// view and renders the default error page for that status.
func Abort(status int) *HTTPError {
	return &HTTPError{Status: status}
}

// AbortWith returns an HTTPError for status that wraps err.
func AbortWith(status int, err error) *HTTPError {
	return &HTTPError{Status: status, Err: err}
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, http.StatusText(e.Status), e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Description returns the human readable explanation shown on error pages.
func Description(status int) string {
	if d, ok := descriptions[status]; ok {
		return d
	}
	return http.StatusText(status)
}

// StatusOf extracts the HTTP status carried by err. Errors that are not
// HTTPErrors map to 500.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return http.StatusInternalServerError
}

// WriteError writes the default HTML error page for status.
func WriteError(w http.ResponseWriter, status int) {
	text := http.StatusText(status)
	body := fmt.Sprintf(
		"<!doctype html>\n<html lang=en>\n<title>%d %s</title>\n<h1>%s</h1>\n<p>%s</p>\n",
		status, html.EscapeString(text), html.EscapeString(text), html.EscapeString(Description(status)),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Del("Content-Length")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
