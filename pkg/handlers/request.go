package handlers

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
)

// ErrMissingKey indicates a required form or file field was not submitted.
var ErrMissingKey = errors.New("missing form key")

const defaultMaxMemory = 32 << 20

// Form returns the first value of key from the request body. A missing key
// yields an HTTPError with status 400 so that views can return it unchanged.
func Form(r *http.Request, key string) (string, error) {
	if err := parseForm(r); err != nil {
		return "", AbortWith(http.StatusBadRequest, err)
	}

	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return "", AbortWith(http.StatusBadRequest, fmt.Errorf("%w: %s", ErrMissingKey, key))
	}
	return values[0], nil
}

// Arg returns the query parameter key, or def when it is absent.
func Arg(r *http.Request, key, def string) string {
	if values, ok := r.URL.Query()[key]; ok && len(values) > 0 {
		return values[0]
	}
	return def
}

// File returns the uploaded file stored under key. A missing file yields an
// HTTPError with status 400. Bodies rejected by http.MaxBytesReader map to 413.
func File(r *http.Request, key string) (multipart.File, *multipart.FileHeader, error) {
	if err := r.ParseMultipartForm(defaultMaxMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, nil, AbortWith(http.StatusRequestEntityTooLarge, err)
		}
		return nil, nil, AbortWith(http.StatusBadRequest, err)
	}

	file, header, err := r.FormFile(key)
	if err != nil {
		return nil, nil, AbortWith(http.StatusBadRequest, fmt.Errorf("%w: %s", ErrMissingKey, key))
	}
	return file, header, nil
}

// ClientFilename returns the filename the client sent for an uploaded file.
// FileHeader.Filename has its directory components removed; this does not.
func ClientFilename(header *multipart.FileHeader) string {
	_, params, err := mime.ParseMediaType(header.Header.Get("Content-Disposition"))
	if err != nil || params["filename"] == "" {
		return header.Filename
	}
	return params["filename"]
}

func parseForm(r *http.Request) error {
	if r.PostForm != nil {
		return nil
	}
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(defaultMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return err
		}
	}
	return r.ParseForm()
}
