package main

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/timeclock/attendance"
	"github.com/dmitrymomot/timeclock/auth"
	"github.com/dmitrymomot/timeclock/core/health"
	"github.com/dmitrymomot/timeclock/core/logger"
	"github.com/dmitrymomot/timeclock/core/response"
	"github.com/dmitrymomot/timeclock/core/router"
	"github.com/dmitrymomot/timeclock/core/session"
	"github.com/dmitrymomot/timeclock/core/sessiontransport"
	"github.com/dmitrymomot/timeclock/middleware"
)

// newRouter assembles the full route table with its middleware stacks.
func newRouter(
	log *slog.Logger,
	tmpls map[string]*template.Template,
	authSvc *auth.Service,
	registry *session.Registry,
	transport *sessiontransport.Cookie,
	attendanceSvc *attendance.Service,
	ready ...func(context.Context) error,
) router.Router[*Context] {
	r := router.New[*Context](
		router.WithContextFactory(newContext()),
		router.WithErrorHandler[*Context](func(ctx *Context, err error) {
			log.ErrorContext(ctx, "request failed", logger.Error(err))
			errorHandler(tmpls["error"])(ctx, err)
		}),
		router.WithMiddleware(
			middleware.RequestID[*Context](),
			middleware.LoggingWithLogger[*Context](log),
		),
	)

	r.Get("/live", health.Liveness[*Context])
	r.Get("/ready", health.Readiness[*Context](log, ready...))

	// Guest routes.
	r.Get("/", loginPage(log, tmpls["login"], registry, transport))
	r.Post("/", loginSubmit(tmpls["login"], registry, transport))
	r.Get("/logout", logout(log, registry, transport))

	guard := middleware.RequireSession[*Context](middleware.SessionGuardConfig{
		Registry:  registry,
		Transport: transport,
	})

	// Employee routes.
	r.Group(func(r router.Router[*Context]) {
		r.Use(guard)
		r.Get("/user-dashboard", dashboardPage(tmpls["dashboard"], attendanceSvc))
		r.Post("/user-dashboard", dashboardSubmit(tmpls["dashboard"], attendanceSvc))
	})

	rejectToLogin := func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil
	}

	// Admin pages.
	r.Group(func(r router.Router[*Context]) {
		r.Use(guard, middleware.RequireRole[*Context](auth.RoleAdmin, rejectToLogin))
		r.Get("/logs", logsPage(tmpls["logs"], attendanceSvc))
		r.Get("/download-logs", downloadLogs(tmpls["logs"], attendanceSvc))
		r.Get("/add-employee", addEmployeePage(tmpls["add_employee"]))
		r.Post("/add-employee", addEmployeeSubmit(tmpls["add_employee"], authSvc))
	})

	// The live status endpoint is polled by scripts, so rejection is JSON
	// rather than a redirect.
	rejectJSON := response.JSONWithStatus(map[string]string{"error": "Unauthorized"}, http.StatusUnauthorized)
	jsonGuard := middleware.RequireSession[*Context](middleware.SessionGuardConfig{
		Registry:  registry,
		Transport: transport,
		OnReject:  rejectJSON,
	})
	r.With(jsonGuard, middleware.RequireRole[*Context](auth.RoleAdmin, rejectJSON)).
		Get("/live-status", liveStatus(attendanceSvc))

	return r
}
