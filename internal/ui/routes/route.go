package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/ecosort/ecosort/internal/pending"
	"golang.org/x/text/unicode/norm"
)

// View renders the page for a matched route
type View interface {
	Page(r *http.Request, params Params) (templ.Component, error)
}

// Loader starts loading a view. The table invokes it on first navigation only.
type Loader func(ctx context.Context) *pending.Result[View]

// Params holds the values bound to the dynamic segments of a matched pattern
type Params map[string]string

// Get returns the value bound to key, or "" when the pattern has no such segment
func (p Params) Get(key string) string {
	return p[key]
}

// Route binds a path pattern and a unique name to a deferred view loader.
// Patterns are made of literal segments and ":param" segments, e.g. /category/:name.
type Route struct {
	Pattern string
	Name    string
	Load    Loader

	segments []segment
}

type segment struct {
	literal string
	param   string
}

func (s segment) dynamic() bool {
	return s.param != ""
}

func parsePattern(pattern string) ([]segment, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("pattern %q must start with /", pattern)
	}
	if pattern != "/" && strings.HasSuffix(pattern, "/") {
		return nil, fmt.Errorf("pattern %q must not end with /", pattern)
	}

	parts := splitPath(pattern)
	segments := make([]segment, 0, len(parts))
	seen := make(map[string]bool)

	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("pattern %q contains an empty segment", pattern)
		}
		if !strings.HasPrefix(part, ":") {
			segments = append(segments, segment{literal: part})
			continue
		}

		name := part[1:]
		if name == "" {
			return nil, fmt.Errorf("pattern %q has an unnamed parameter", pattern)
		}
		if seen[name] {
			return nil, fmt.Errorf("pattern %q binds parameter %q twice", pattern, name)
		}
		seen[name] = true
		segments = append(segments, segment{param: name})
	}

	return segments, nil
}

// shape is the pattern with parameter names erased, two routes with the same shape match the same paths
func shape(segments []segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		if s.dynamic() {
			b.WriteByte(':')
		} else {
			b.WriteString(strings.ToLower(s.literal))
		}
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// match reports whether the escaped path segments fit the route and returns the bound parameters
func (r *Route) match(parts []string) (Params, bool) {
	if len(parts) != len(r.segments) {
		return nil, false
	}

	var params Params
	for i, s := range r.segments {
		if !s.dynamic() {
			if !strings.EqualFold(s.literal, parts[i]) {
				return nil, false
			}
			continue
		}

		if parts[i] == "" {
			return nil, false
		}
		value, err := url.PathUnescape(parts[i])
		if err != nil {
			value = parts[i]
		}
		if params == nil {
			params = make(Params, len(r.segments))
		}
		params[s.param] = norm.NFC.String(value)
	}

	if params == nil {
		params = Params{}
	}
	return params, true
}

// splitPath splits an escaped path into segments, ignoring one trailing slash
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
