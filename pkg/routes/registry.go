package routes

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"
	"sync"
)

// StaticEndpoint is the reserved endpoint name for static files. It takes a
// single "filename" parameter.
const StaticEndpoint = "static"

var (
	// ErrUnknownEndpoint indicates URLFor was asked for an unregistered name.
	ErrUnknownEndpoint = errors.New("routes: unknown endpoint")

	// ErrMissingParam indicates a path variable had no value.
	ErrMissingParam = errors.New("routes: missing parameter")
)

// Entry describes one named endpoint in the URL map.
type Entry struct {
	Endpoint string   `json:"endpoint"`
	Methods  []string `json:"methods"`
	Rule     string   `json:"rule"`
}

// Registry maps endpoint names to URL rules. An endpoint may own several
// rules, such as "/hello/" and "/hello/{name}".
type Registry struct {
	mu           sync.RWMutex
	entries      map[string][]*Entry
	staticPrefix string
}

// NewRegistry creates an empty Registry. Static URLs resolve under "/static"
// until SetStatic changes the prefix.
func NewRegistry() *Registry {
	return &Registry{
		entries:      make(map[string][]*Entry),
		staticPrefix: "/static",
	}
}

// SetStatic sets the URL prefix used for the static endpoint.
func (reg *Registry) SetStatic(prefix string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.staticPrefix = strings.TrimSuffix(prefix, "/")
}

func (reg *Registry) add(name, method, rule string) {
	if name == "" {
		return
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, e := range reg.entries[name] {
		if e.Rule == rule {
			if !slices.Contains(e.Methods, method) {
				e.Methods = append(e.Methods, method)
				sort.Strings(e.Methods)
			}
			return
		}
	}
	reg.entries[name] = append(reg.entries[name], &Entry{Endpoint: name, Methods: []string{method}, Rule: rule})
}

// Entries returns the URL map sorted by rule, then endpoint.
func (reg *Registry) Entries() []Entry {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]Entry, 0, len(reg.entries)+1)
	for _, rules := range reg.entries {
		for _, e := range rules {
			out = append(out, Entry{
				Endpoint: e.Endpoint,
				Methods:  slices.Clone(e.Methods),
				Rule:     e.Rule,
			})
		}
	}
	out = append(out, Entry{
		Endpoint: StaticEndpoint,
		Methods:  []string{"GET"},
		Rule:     reg.staticPrefix + "/{filename...}",
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].Rule != out[j].Rule {
			return out[i].Rule < out[j].Rule
		}
		return out[i].Endpoint < out[j].Endpoint
	})
	return out
}

// URLFor builds the URL for endpoint. Parameters naming path variables fill
// those variables; the rest are appended as a query string sorted by key.
// When the endpoint owns several rules, the rule with the most variables
// that params can satisfy wins.
func (reg *Registry) URLFor(endpoint string, params map[string]string) (string, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	if endpoint == StaticEndpoint {
		return reg.staticURL(params)
	}

	rules, ok := reg.entries[endpoint]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownEndpoint, endpoint)
	}

	candidates := slices.Clone(rules)
	slices.SortStableFunc(candidates, func(a, b *Entry) int {
		return len(variables(b.Rule)) - len(variables(a.Rule))
	})

	var missing string
	for _, e := range candidates {
		if name, ok := firstMissing(e.Rule, params); !ok {
			if missing == "" {
				missing = name
			}
			continue
		}
		return build(e.Rule, params), nil
	}

	return "", fmt.Errorf("%w: %s requires %q", ErrMissingParam, endpoint, missing)
}

func build(rule string, params map[string]string) string {
	used := make(map[string]bool)
	segments := strings.Split(rule, "/")
	for i, seg := range segments {
		name, multi, ok := variable(seg)
		if !ok {
			continue
		}
		used[name] = true
		if multi {
			segments[i] = escapePath(params[name])
		} else {
			segments[i] = url.PathEscape(params[name])
		}
	}
	return withQuery(strings.Join(segments, "/"), params, used)
}

func variables(rule string) []string {
	var names []string
	for _, seg := range strings.Split(rule, "/") {
		if name, _, ok := variable(seg); ok {
			names = append(names, name)
		}
	}
	return names
}

func firstMissing(rule string, params map[string]string) (string, bool) {
	for _, name := range variables(rule) {
		if _, ok := params[name]; !ok {
			return name, false
		}
	}
	return "", true
}

func (reg *Registry) staticURL(params map[string]string) (string, error) {
	filename, ok := params["filename"]
	if !ok {
		return "", fmt.Errorf("%w: %s requires %q", ErrMissingParam, StaticEndpoint, "filename")
	}
	path := reg.staticPrefix + "/" + escapePath(strings.TrimPrefix(filename, "/"))
	return withQuery(path, params, map[string]bool{"filename": true}), nil
}

func variable(segment string) (name string, multi bool, ok bool) {
	if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
		return "", false, false
	}
	name = segment[1 : len(segment)-1]
	if strings.HasSuffix(name, "...") {
		return strings.TrimSuffix(name, "..."), true, true
	}
	return name, false, true
}

func escapePath(value string) string {
	parts := strings.Split(value, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func withQuery(path string, params map[string]string, used map[string]bool) string {
	query := url.Values{}
	for k, v := range params {
		if !used[k] {
			query.Set(k, v)
		}
	}
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
