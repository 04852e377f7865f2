package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/timeclock/attendance"
	"github.com/dmitrymomot/timeclock/auth"
	"github.com/dmitrymomot/timeclock/core/config"
	"github.com/dmitrymomot/timeclock/core/cookie"
	"github.com/dmitrymomot/timeclock/core/logger"
	"github.com/dmitrymomot/timeclock/core/server"
	"github.com/dmitrymomot/timeclock/core/session"
	"github.com/dmitrymomot/timeclock/core/sessiontransport"
	"github.com/dmitrymomot/timeclock/integration/database/pg"
	"github.com/dmitrymomot/timeclock/migrations"
	"github.com/dmitrymomot/timeclock/storage/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(logger.WithProduction(cfg.AppName))
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, cfg.DB)
	if err != nil {
		log.ErrorContext(ctx, "failed to connect to database", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, migrations.FS, ".", log); err != nil {
		log.ErrorContext(ctx, "failed to run migrations", logger.Error(err))
		os.Exit(1)
	}

	users := postgres.NewUserRepository(pool)
	sessions := postgres.NewSessionRepository(pool)
	timesheets := postgres.NewTimesheetRepository(pool)

	authSvc := auth.NewFromConfig(cfg.Auth, users)
	registry := session.NewRegistryFromConfig(cfg.Session, sessions, authSvc)

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		log.ErrorContext(ctx, "failed to create cookie manager", logger.Error(err))
		os.Exit(1)
	}
	transport := sessiontransport.NewCookie(cookies, sessiontransport.WithCookieName(cfg.SessionCookieName))

	attendanceSvc, err := attendance.NewServiceFromConfig(cfg.Attendance, timesheets)
	if err != nil {
		log.ErrorContext(ctx, "failed to create attendance service", logger.Error(err))
		os.Exit(1)
	}

	tmpls, err := loadTemplates()
	if err != nil {
		log.ErrorContext(ctx, "failed to load templates", logger.Error(err))
		os.Exit(1)
	}

	// Server restarts must never leave users locked out by stale slots.
	if err := registry.ResetAll(ctx); err != nil {
		log.ErrorContext(ctx, "failed to reset sessions at startup", logger.Error(err))
		os.Exit(1)
	}

	r := newRouter(log, tmpls, authSvc, registry, transport, attendanceSvc, pg.Healthcheck(pool))

	s, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		log.ErrorContext(ctx, "failed to create server", logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(s.Run(ctx, r))

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.ErrorContext(ctx, "server stopped with error", logger.Error(err))
	}

	// Best effort: a failed reset only means stale slots until the next start.
	if err := registry.ResetAll(context.Background()); err != nil {
		log.Error("failed to reset sessions at shutdown", logger.Error(err))
	}

	log.InfoContext(ctx, "server shut down")
}
