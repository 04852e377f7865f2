package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/timeclock/core/handler"
	"github.com/dmitrymomot/timeclock/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// Component name for structured logging
	Component string
}

// statusRecorder captures the status code and body size written by the
// response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (w *statusRecorder) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

// Logging creates a request logging middleware with default configuration.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware with a custom logger.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware with custom configuration.
// Responses with 4xx status log at warn level, 5xx at error level.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Component != "" {
		cfg.Logger = cfg.Logger.With(logger.Component(cfg.Component))
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				rec := &statusRecorder{ResponseWriter: w}
				err := response(rec, r)

				status := rec.status
				if status == 0 {
					status = http.StatusOK
				}

				attrs := []any{
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.StatusCode(status),
					logger.BytesOut(rec.bytes),
					logger.Duration(time.Since(start)),
				}
				if id, ok := GetRequestID(ctx); ok {
					attrs = append(attrs, logger.RequestID(id))
				}
				if err != nil {
					attrs = append(attrs, logger.Error(err))
				}

				switch {
				case status >= http.StatusInternalServerError:
					cfg.Logger.ErrorContext(ctx, "request failed", attrs...)
				case status >= http.StatusBadRequest:
					cfg.Logger.WarnContext(ctx, "request rejected", attrs...)
				default:
					cfg.Logger.InfoContext(ctx, "request completed", attrs...)
				}

				return err
			}
		}
	}
}
