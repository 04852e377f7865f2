package router_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/timeclock/core/handler"
	"github.com/dmitrymomot/timeclock/core/router"
)

func textResponse(status int, body string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(status)
		_, err := w.Write([]byte(body))
		return err
	}
}

func TestRouterBasicRouting(t *testing.T) {
	t.Parallel()

	t.Run("serves registered route", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/dashboard", func(ctx *router.Context) handler.Response {
			return textResponse(http.StatusOK, "dashboard")
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "dashboard", rec.Body.String())
	})

	t.Run("unknown path returns 404", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/", func(ctx *router.Context) handler.Response {
			return textResponse(http.StatusOK, "home")
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("wrong method returns 405 with allow header", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Post("/login", func(ctx *router.Context) handler.Response {
			return textResponse(http.StatusOK, "ok")
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "POST", rec.Header().Get("Allow"))
	})

	t.Run("method registers multiple verbs", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Method("/resource", func(ctx *router.Context) handler.Response {
			return textResponse(http.StatusOK, "ok")
		}, http.MethodGet, http.MethodPost)

		for _, method := range []string{http.MethodGet, http.MethodPost} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(method, "/resource", nil))
			assert.Equal(t, http.StatusOK, rec.Code, method)
		}
	})
}

func TestRouterMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("middleware runs in registration order", func(t *testing.T) {
		t.Parallel()

		var order []string
		mw := func(name string) handler.Middleware[*router.Context] {
			return func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
				return func(ctx *router.Context) handler.Response {
					order = append(order, name)
					return next(ctx)
				}
			}
		}

		r := router.New[*router.Context]()
		r.Use(mw("first"), mw("second"))
		r.Get("/", func(ctx *router.Context) handler.Response {
			order = append(order, "handler")
			return textResponse(http.StatusOK, "ok")
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, []string{"first", "second", "handler"}, order)
	})

	t.Run("group middleware scoped to group routes", func(t *testing.T) {
		t.Parallel()

		var protectedHit bool
		guard := func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
			return func(ctx *router.Context) handler.Response {
				protectedHit = true
				return next(ctx)
			}
		}

		r := router.New[*router.Context]()
		r.Get("/public", func(ctx *router.Context) handler.Response {
			return textResponse(http.StatusOK, "public")
		})
		r.Group(func(g router.Router[*router.Context]) {
			g.Use(guard)
			g.Get("/private", func(ctx *router.Context) handler.Response {
				return textResponse(http.StatusOK, "private")
			})
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, protectedHit)

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, protectedHit)
	})

	t.Run("use after route registration panics", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/", func(ctx *router.Context) handler.Response {
			return textResponse(http.StatusOK, "ok")
		})

		assert.Panics(t, func() {
			r.Use(func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
				return next
			})
		})
	})
}

func TestRouterErrorHandling(t *testing.T) {
	t.Parallel()

	t.Run("custom error handler receives handler error", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		var got error

		r := router.New[*router.Context](
			router.WithErrorHandler[*router.Context](func(ctx *router.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}),
		)
		r.Get("/", func(ctx *router.Context) handler.Response {
			return func(w http.ResponseWriter, r *http.Request) error {
				return errBoom
			}
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.ErrorIs(t, got, errBoom)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("nil response reported as error", func(t *testing.T) {
		t.Parallel()

		var got error
		r := router.New[*router.Context](
			router.WithErrorHandler[*router.Context](func(ctx *router.Context, err error) {
				got = err
			}),
		)
		r.Get("/", func(ctx *router.Context) handler.Response {
			return nil
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.ErrorIs(t, got, router.ErrNilResponse)
	})

	t.Run("panic is recovered and wrapped", func(t *testing.T) {
		t.Parallel()

		var got error
		r := router.New[*router.Context](
			router.WithErrorHandler[*router.Context](func(ctx *router.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusInternalServerError)
			}),
		)
		r.Get("/", func(ctx *router.Context) handler.Response {
			panic("something went wrong")
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		var pe router.PanicError
		require.ErrorAs(t, got, &pe)
		assert.Equal(t, "something went wrong", pe.Value())
		assert.NotEmpty(t, pe.Stack())
	})

	t.Run("panic wrapping preserves error chain", func(t *testing.T) {
		t.Parallel()

		errCause := errors.New("cause")
		var got error
		r := router.New[*router.Context](
			router.WithErrorHandler[*router.Context](func(ctx *router.Context, err error) {
				got = err
			}),
		)
		r.Get("/", func(ctx *router.Context) handler.Response {
			panic(errCause)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.ErrorIs(t, got, errCause)
	})
}

func TestRouterRoutes(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/b", func(ctx *router.Context) handler.Response { return textResponse(http.StatusOK, "") })
	r.Post("/a", func(ctx *router.Context) handler.Response { return textResponse(http.StatusOK, "") })
	r.Get("/a", func(ctx *router.Context) handler.Response { return textResponse(http.StatusOK, "") })

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, router.Route{Method: http.MethodGet, Pattern: "/a"}, routes[0])
	assert.Equal(t, router.Route{Method: http.MethodPost, Pattern: "/a"}, routes[1])
	assert.Equal(t, router.Route{Method: http.MethodGet, Pattern: "/b"}, routes[2])
}

func TestRouterDuplicateRoutePanics(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/", func(ctx *router.Context) handler.Response { return textResponse(http.StatusOK, "") })

	assert.Panics(t, func() {
		r.Get("/", func(ctx *router.Context) handler.Response { return textResponse(http.StatusOK, "") })
	})
}
