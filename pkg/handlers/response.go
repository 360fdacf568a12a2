package handlers

import (
	"encoding/json"
	"net/http"
	"reflect"
)

const htmlContentType = "text/html; charset=utf-8"

// View produces a value that Respond converts into an HTTP response.
type View func(r *http.Request) any

// Handle adapts a View to an http.HandlerFunc.
func Handle(view View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Respond(w, r, view(r))
	}
}

// Response is an explicit response: a body plus an optional status and
// additional headers. A zero Status means 200.
type Response struct {
	Body   any
	Status int
	Header http.Header
}

// MakeResponse wraps body in a Response so headers or cookies can be added
// before it is returned from a view.
func MakeResponse(body any, status ...int) *Response {
	resp := &Response{Body: body, Header: make(http.Header)}
	if len(status) > 0 {
		resp.Status = status[0]
	}
	return resp
}

// Redirect builds a response that sends the client to location.
func Redirect(location string, status int) *Response {
	resp := MakeResponse(
		`<!doctype html>
<html lang=en>
<title>Redirecting...</title>
<h1>Redirecting...</h1>
<p>You should be redirected automatically to the target URL.</p>
`, status)
	resp.Header.Set("Location", location)
	return resp
}

// SetCookie appends a Set-Cookie header to the response.
func (resp *Response) SetCookie(cookie *http.Cookie) {
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	if v := cookie.String(); v != "" {
		resp.Header.Add("Set-Cookie", v)
	}
}

func (resp *Response) write(w http.ResponseWriter, r *http.Request) {
	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}

	writeBody(w, r, status, resp.Body)
}

// Respond converts the value returned by a view into a response:
//   - *Response and Response are written with their status and headers
//   - string and []byte become a text/html body with status 200
//   - a map with string keys becomes a JSON body
//   - error renders the error page for its status (HTTPError) or 500
//   - http.Handler is served directly
//   - nil is a view bug and renders 500
func Respond(w http.ResponseWriter, r *http.Request, v any) {
	switch v := v.(type) {
	case *Response:
		if v == nil {
			WriteError(w, http.StatusInternalServerError)
			return
		}
		v.write(w, r)
	case Response:
		v.write(w, r)
	case *HTTPError:
		if v == nil {
			WriteError(w, http.StatusInternalServerError)
			return
		}
		WriteError(w, v.Status)
	case error:
		WriteError(w, StatusOf(v))
	default:
		writeBody(w, r, http.StatusOK, v)
	}
}

func writeBody(w http.ResponseWriter, r *http.Request, status int, body any) {
	switch b := body.(type) {
	case string:
		setDefaultContentType(w, htmlContentType)
		w.WriteHeader(status)
		w.Write([]byte(b))
	case []byte:
		setDefaultContentType(w, htmlContentType)
		w.WriteHeader(status)
		w.Write(b)
	case map[string]any:
		writeDict(w, status, b)
	case nil:
		if status == http.StatusOK {
			WriteError(w, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(status)
	case http.Handler:
		b.ServeHTTP(w, r)
	default:
		if isDict(body) {
			writeDict(w, status, body)
			return
		}
		WriteError(w, http.StatusInternalServerError)
	}
}

func isDict(body any) bool {
	t := reflect.TypeOf(body)
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

func writeDict(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		WriteError(w, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func setDefaultContentType(w http.ResponseWriter, contentType string) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", contentType)
	}
}
