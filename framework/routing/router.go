package routing

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Params maps placeholder names to the captured path values.
type Params map[string]string

// Get returns the value captured for name, or "".
func (p Params) Get(name string) string { return p[name] }

// Handler handles a dispatched path. It receives every placeholder value at
// once instead of as individual arguments.
type Handler func(params Params) (any, error)

// Middleware wraps a Handler.
type Middleware func(next Handler) Handler

// Route is a registered template and its handler.
type Route struct {
	Template string
	Pattern  *Pattern
	Handler  Handler
}

// table is the ordered route list shared by a router and its groups.
type table struct {
	mu     sync.RWMutex
	routes []Route
}

// Router maps route templates to handlers. Routes are tried in registration
// order and the first full match wins; there is no specificity ranking.
//
// Register routes during setup. Dispatch only takes a read lock, so serving
// from many goroutines is safe.
type Router struct {
	table      *table
	prefix     string
	middleware []Middleware
	compile    []CompileOption
	logger     zerolog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithGreedyCapture makes placeholders span "/" separators.
func WithGreedyCapture() Option {
	return func(r *Router) { r.compile = append(r.compile, Greedy()) }
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// New creates an empty Router.
func New(opts ...Option) *Router {
	r := &Router{table: &table{}, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ── Registration ─────────────────────────────────────────────────────────────

// AddRoute compiles template (prefixed by any enclosing Prefix) and appends
// it to the route list.
//
//	r.AddRoute("/hello/<username>", func(p routing.Params) (any, error) {
//	    return "Hello " + p.Get("username"), nil
//	})
func (r *Router) AddRoute(template string, h Handler) error {
	full := r.prefix + template
	pattern, err := Compile(full, r.compile...)
	if err != nil {
		return err
	}

	for i := len(r.middleware) - 1; i >= 0; i-- {
		h = r.middleware[i](h)
	}

	r.table.mu.Lock()
	r.table.routes = append(r.table.routes, Route{Template: full, Pattern: pattern, Handler: h})
	r.table.mu.Unlock()

	r.logger.Debug().Str("template", full).Str("regexp", pattern.String()).Msg("route added")
	return nil
}

// MustAddRoute is like AddRoute but panics on an invalid template.
func (r *Router) MustAddRoute(template string, h Handler) {
	if err := r.AddRoute(template, h); err != nil {
		panic(err)
	}
}

// ── Groups & Prefixes ────────────────────────────────────────────────────────

// Group registers routes that share middleware without affecting r.
func (r *Router) Group(fn func(r *Router)) {
	fn(r.sub(""))
}

// Prefix registers routes under a common template prefix.
//
//	r.Prefix("/api", func(api *routing.Router) {
//	    api.MustAddRoute("/users/<id>", showUser) // "/api/users/<id>"
//	})
func (r *Router) Prefix(prefix string, fn func(r *Router)) {
	fn(r.sub(prefix))
}

func (r *Router) sub(prefix string) *Router {
	return &Router{
		table:      r.table,
		prefix:     r.prefix + prefix,
		middleware: slices.Clone(r.middleware),
		compile:    r.compile,
		logger:     r.logger,
	}
}

// Middleware wraps every route added to r from now on.
func (r *Router) Middleware(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// ── Matching ─────────────────────────────────────────────────────────────────

// Match returns the first route whose pattern matches the whole path.
func (r *Router) Match(path string) (Route, Params, bool) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	for _, route := range r.table.routes {
		if params, ok := route.Pattern.Match(path); ok {
			return route, params, true
		}
	}
	return Route{}, nil, false
}

// Dispatch calls the handler of the first matching route and returns its
// result unchanged. An unmatched path yields *RouteNotFoundError.
func (r *Router) Dispatch(path string) (any, error) {
	route, params, ok := r.Match(path)
	if !ok {
		r.logger.Debug().Str("path", path).Msg("no route matched")
		return nil, &RouteNotFoundError{Path: path}
	}
	r.logger.Debug().Str("path", path).Str("template", route.Template).Msg("route matched")
	return route.Handler(params)
}

// Routes returns a snapshot of the route list in registration order.
func (r *Router) Routes() []Route {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()
	return slices.Clone(r.table.routes)
}
