package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/timeclock/core/handler"
)

// Option configures the router during construction.
type Option[C handler.Context] func(*mux[C])

// WithContextFactory sets the factory used to build the custom request
// context for each request. Required for any context type other than the
// default *Context.
func WithContextFactory[C handler.Context](fn func(http.ResponseWriter, *http.Request) C) Option[C] {
	return func(m *mux[C]) {
		if fn != nil {
			m.newContext = fn
		}
	}
}

// WithErrorHandler sets the error handler invoked for handler errors,
// routing misses, and recovered panics.
func WithErrorHandler[C handler.Context](fn handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if fn != nil {
			m.errorHandler = fn
		}
	}
}

// WithMiddleware registers global middleware applied to every route.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithLogger sets the logger used for panics that occur after the
// response has been written.
func WithLogger[C handler.Context](log *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if log != nil {
			m.logger = log
		}
	}
}
