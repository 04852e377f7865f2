package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/dmitrymomot/timeclock/core/handler"
)

// routeKey identifies one endpoint in the flat route table.
type routeKey struct {
	method  string
	pattern string
}

// mux is the private implementation of the Router interface. Every route
// is a static path, so lookup is a map keyed by method and pattern.
type mux[C handler.Context] struct {
	routes       map[routeKey]handler.HandlerFunc[C]
	patterns     map[string][]string // pattern -> methods, for 405 responses
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
	parent       *mux[C] // for inline groups
	inline       bool
	sealed       bool // routes registered; Use is no longer allowed
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		routes:       make(map[routeKey]handler.HandlerFunc[C]),
		patterns:     make(map[string][]string),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(newContext(w, r)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	ctx := m.newContext(ww, r)

	// Recover from panics to prevent server crashes.
	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
			} else {
				m.errorHandler(ctx, panicErr)
			}
		}
	}()

	fn, ok := m.routes[routeKey{method: r.Method, pattern: path}]
	if !ok {
		if allowed := m.patterns[path]; len(allowed) > 0 {
			if !ww.Written() {
				ww.Header().Set("Allow", strings.Join(allowed, ", "))
			}
			m.errorHandler(ctx, ErrMethodNotAllowed)
		} else {
			m.errorHandler(ctx, ErrNotFound)
		}
		return
	}

	response := fn(ctx)
	if response == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := response(ww, r); err != nil {
		if !ww.Written() {
			m.errorHandler(ctx, err)
		}
	}
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}
	for _, method := range methods {
		method = strings.ToUpper(method)
		switch method {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions:
		default:
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		m.handle(method, pattern, h)
	}
}

// Use appends middleware to the router. All middlewares must be defined
// before routes are registered.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.root().sealed && !m.inline {
		panic("timeclock: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With creates a new inline router with additional middleware.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		inline:       true,
		parent:       m,
		routes:       m.root().routes,
		patterns:     m.root().patterns,
		middlewares:  middlewares,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

// Group creates a new inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Routes returns all registered routes sorted by pattern then method.
func (m *mux[C]) Routes() []Route {
	root := m.root()
	routes := make([]Route, 0, len(root.routes))
	for key := range root.routes {
		routes = append(routes, Route{Method: key.method, Pattern: key.pattern})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Pattern != routes[j].Pattern {
			return routes[i].Pattern < routes[j].Pattern
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}

// root walks up inline groups to the owning mux.
func (m *mux[C]) root() *mux[C] {
	curr := m
	for curr.inline {
		curr = curr.parent
	}
	return curr
}

// handle registers a handler in the route table, wrapping it with the
// middleware chain collected from the full group lineage.
func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}

	// Collect middlewares from the root down to this group so the
	// outermost middleware runs first.
	var all []handler.Middleware[C]
	curr := m
	for curr != nil {
		if len(curr.middlewares) > 0 {
			all = append(append([]handler.Middleware[C]{}, curr.middlewares...), all...)
		}
		curr = curr.parent
	}

	root := m.root()
	root.sealed = true

	key := routeKey{method: method, pattern: pattern}
	if _, exists := root.routes[key]; exists {
		panic(fmt.Errorf("%w: duplicate route %s %s", ErrInvalidPattern, method, pattern))
	}
	root.routes[key] = chain(all, fn)
	root.patterns[pattern] = append(root.patterns[pattern], method)
}
