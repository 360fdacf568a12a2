// Package routes describes HTTP routes declaratively, registers them on an
// http.ServeMux, and keeps a registry of named endpoints for URL building.
package routes

import (
	"net/http"
	"strings"
)

// Route represents an HTTP route with method, pattern, and handler.
// Name identifies the endpoint for URL building; several routes may share
// a Name.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
	Children    []Group
}

type registration struct {
	name    string
	method  string
	path    string
	handler http.HandlerFunc
}

// Register adds every route in groups to mux and records named endpoints in
// registry.
//
// Patterns ending in a slash are canonical: they match only the exact path
// (not the subtree), and the same path without the slash redirects to them
// with 308 Permanent Redirect unless that path is registered separately.
// Patterns without a trailing slash do not match with one, so they 404.
func Register(mux *http.ServeMux, registry *Registry, groups ...Group) {
	var regs []registration
	for _, g := range groups {
		regs = collect(regs, "", g)
	}

	registered := make(map[string]bool, len(regs))
	for _, reg := range regs {
		registered[reg.method+" "+reg.path] = true
	}

	redirected := make(map[string]bool)
	for _, reg := range regs {
		mux.HandleFunc(reg.method+" "+muxPath(reg.path), reg.handler)
		if registry != nil {
			registry.add(reg.name, reg.method, reg.path)
		}

		if reg.path == "/" || !strings.HasSuffix(reg.path, "/") {
			continue
		}

		key := reg.method + " " + strings.TrimSuffix(reg.path, "/")
		if registered[key] || redirected[key] {
			continue
		}
		redirected[key] = true
		mux.HandleFunc(key, canonicalRedirect)
	}
}

func collect(regs []registration, parentPrefix string, g Group) []registration {
	prefix := parentPrefix + g.Prefix
	for _, route := range g.Routes {
		path := prefix + route.Pattern
		if path == "" {
			path = "/"
		}
		regs = append(regs, registration{
			name:    route.Name,
			method:  route.Method,
			path:    path,
			handler: route.Handler,
		})
	}
	for _, child := range g.Children {
		regs = collect(regs, prefix, child)
	}
	return regs
}

func muxPath(path string) string {
	if strings.HasSuffix(path, "/") {
		return path + "{$}"
	}
	return path
}

func canonicalRedirect(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusPermanentRedirect)
}
