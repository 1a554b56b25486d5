package routes

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ecosort/ecosort/internal/pending"
)

// NotFoundPattern is reported as the pattern of the fallback route
const NotFoundPattern = "*"

// Match is the result of resolving a path against the table
type Match struct {
	Route  *Route
	Params Params
}

// LoadHook is told about every completed view load
type LoadHook func(name string, elapsed time.Duration, err error)

type Option func(*Table)

func WithLoadHook(hook LoadHook) Option {
	return func(t *Table) {
		t.onLoad = hook
	}
}

// Table is an immutable set of routes plus a cache of the views loaded so far.
// It is safe for concurrent use.
type Table struct {
	routes   []*Route
	byName   map[string]*Route
	notFound *Route
	onLoad   LoadHook

	mu     sync.Mutex
	loaded map[string]*pending.Result[View]
}

// New validates routes and builds a table. notFound is the fallback for paths no route matches,
// its pattern is ignored.
func New(routes []Route, notFound Route, opts ...Option) (*Table, error) {
	t := &Table{
		byName: make(map[string]*Route, len(routes)+1),
		loaded: make(map[string]*pending.Result[View]),
	}

	shapes := make(map[string]string, len(routes))
	for i := range routes {
		r := routes[i]

		if r.Name == "" {
			return nil, fmt.Errorf("route %q has no name", r.Pattern)
		}
		if r.Load == nil {
			return nil, fmt.Errorf("route %s has no loader", r.Name)
		}
		segments, err := parsePattern(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", r.Name, err)
		}
		if other, ok := shapes[shape(segments)]; ok {
			return nil, fmt.Errorf("route %s: pattern %q duplicates route %s", r.Name, r.Pattern, other)
		}
		if _, ok := t.byName[r.Name]; ok {
			return nil, fmt.Errorf("duplicate route name %s", r.Name)
		}

		r.segments = segments
		shapes[shape(segments)] = r.Name
		t.routes = append(t.routes, &r)
		t.byName[r.Name] = &r
	}

	if notFound.Name == "" || notFound.Load == nil {
		return nil, errors.New("not found route needs a name and a loader")
	}
	if _, ok := t.byName[notFound.Name]; ok {
		return nil, fmt.Errorf("not found route name %s is already in use", notFound.Name)
	}
	notFound.Pattern = NotFoundPattern
	notFound.segments = nil
	t.notFound = &notFound
	t.byName[notFound.Name] = t.notFound

	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Routes returns the declared routes in declaration order, the not found route is not included
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	for i, r := range t.routes {
		out[i] = *r
	}
	return out
}

func (t *Table) NotFound() *Route {
	return t.notFound
}

// Lookup finds a route, including the not found route, by name
func (t *Table) Lookup(name string) (*Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Resolve matches an escaped URL path against the routes in declaration order.
// When nothing matches it returns the not found route and false.
func (t *Table) Resolve(path string) (Match, bool) {
	parts := splitPath(path)
	for _, r := range t.routes {
		if params, ok := r.match(parts); ok {
			return Match{Route: r, Params: params}, true
		}
	}
	return Match{Route: t.notFound, Params: Params{}}, false
}

// URL builds the path for a named route with its parameters escaped
func (t *Table) URL(name string, params Params) (string, error) {
	r, ok := t.byName[name]
	if !ok || r == t.notFound {
		return "", fmt.Errorf("no route named %s", name)
	}

	var b strings.Builder
	for _, s := range r.segments {
		b.WriteByte('/')
		if !s.dynamic() {
			b.WriteString(s.literal)
			continue
		}
		value, ok := params[s.param]
		if !ok || value == "" {
			return "", fmt.Errorf("route %s needs parameter %s", name, s.param)
		}
		b.WriteString(url.PathEscape(value))
	}
	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}

// Load returns the view for route, invoking its loader on first use.
// Concurrent callers share one load, a failed load is forgotten so the next navigation retries it.
func (t *Table) Load(ctx context.Context, route *Route) (View, error) {
	t.mu.Lock()
	res, ok := t.loaded[route.Name]
	if !ok {
		res = t.start(ctx, route)
		t.loaded[route.Name] = res
	}
	t.mu.Unlock()

	view, err := res.Await(ctx)
	if err != nil && ctx.Err() == nil {
		t.forget(route.Name, res)
	}
	return view, err
}

// start runs the loader detached from ctx cancellation, the load is shared with later navigations
func (t *Table) start(ctx context.Context, route *Route) *pending.Result[View] {
	started := time.Now()
	res := route.Load(context.WithoutCancel(ctx))

	go func() {
		<-res.Done()
		_, err := res.Await(context.Background())
		if err != nil {
			t.forget(route.Name, res)
		}
		if t.onLoad != nil {
			t.onLoad(route.Name, time.Since(started), err)
		}
	}()

	return res
}

func (t *Table) forget(name string, res *pending.Result[View]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.loaded[name] == res {
		delete(t.loaded, name)
	}
}

// Loaded reports whether the view for name has been loaded successfully
func (t *Table) Loaded(name string) bool {
	t.mu.Lock()
	res, ok := t.loaded[name]
	t.mu.Unlock()
	if !ok {
		return false
	}

	select {
	case <-res.Done():
		_, err := res.Await(context.Background())
		return err == nil
	default:
		return false
	}
}
