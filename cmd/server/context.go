package main

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/timeclock/core/binder"
	"github.com/dmitrymomot/timeclock/core/handler"
)

var _ handler.Context = (*Context)(nil)

// Context is the per-request context used by every handler. It adds form
// binding on top of the handler.Context contract.
type Context struct {
	w http.ResponseWriter
	r *http.Request
}

func newContext() func(http.ResponseWriter, *http.Request) *Context {
	return func(w http.ResponseWriter, r *http.Request) *Context {
		return &Context{w: w, r: r}
	}
}

func (c *Context) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *Context) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *Context) Err() error                  { return c.r.Context().Err() }

func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

func (c *Context) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}

func (c *Context) Request() *http.Request              { return c.r }
func (c *Context) ResponseWriter() http.ResponseWriter { return c.w }

// Bind populates v from the request's form body.
func (c *Context) Bind(v any) error {
	return binder.Form()(c.r, v)
}
