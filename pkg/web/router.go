package web

import (
	"net/http"
)

// Router is an http.ServeMux whose 404 responses can be replaced. Any 404
// produced while serving, whether by an unmatched pattern or by a handler,
// is discarded and the fallback handler answers instead. Other statuses,
// including 405 with its Allow header, pass through unchanged.
type Router struct {
	mux      *http.ServeMux
	fallback http.Handler
}

// NewRouter creates a Router with no fallback.
func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// Mux returns the underlying mux for route registration.
func (r *Router) Mux() *http.ServeMux {
	return r.mux
}

// Handle registers handler for pattern.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers handler for pattern.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// SetFallback sets the handler that answers in place of a 404.
func (r *Router) SetFallback(handler http.Handler) {
	r.fallback = handler
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.fallback == nil {
		r.mux.ServeHTTP(w, req)
		return
	}

	nf := &notFoundInterceptor{w: w, header: make(http.Header)}
	r.mux.ServeHTTP(nf, req)

	if nf.intercepted {
		r.fallback.ServeHTTP(w, req)
		return
	}
	if !nf.wroteHeader {
		nf.WriteHeader(http.StatusOK)
	}
}

// notFoundInterceptor buffers headers until the status is known so that a
// 404 can be dropped without touching the real writer.
type notFoundInterceptor struct {
	w           http.ResponseWriter
	header      http.Header
	wroteHeader bool
	intercepted bool
}

func (nf *notFoundInterceptor) Header() http.Header {
	return nf.header
}

func (nf *notFoundInterceptor) WriteHeader(status int) {
	if nf.wroteHeader {
		return
	}
	nf.wroteHeader = true

	if status == http.StatusNotFound {
		nf.intercepted = true
		return
	}

	dst := nf.w.Header()
	for k, v := range nf.header {
		dst[k] = v
	}
	nf.w.WriteHeader(status)
}

func (nf *notFoundInterceptor) Write(b []byte) (int, error) {
	if !nf.wroteHeader {
		if nf.header.Get("Content-Type") == "" {
			nf.header.Set("Content-Type", http.DetectContentType(b))
		}
		nf.WriteHeader(http.StatusOK)
	}
	if nf.intercepted {
		return len(b), nil
	}
	return nf.w.Write(b)
}

func (nf *notFoundInterceptor) Unwrap() http.ResponseWriter {
	return nf.w
}

func (nf *notFoundInterceptor) Flush() {
	if nf.intercepted {
		return
	}
	if !nf.wroteHeader {
		nf.WriteHeader(http.StatusOK)
	}
	if f, ok := nf.w.(http.Flusher); ok {
		f.Flush()
	}
}
