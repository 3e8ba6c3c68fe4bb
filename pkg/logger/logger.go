// Package logger provides a structured, levelled logger built on log/slog.
//
// Output format follows APP_ENV: JSON for production (log aggregators), text
// for local development. Flows log through the package-level helpers:
//
//	logger.Info("order placed", "order_id", id, "total", total)
//
// When LOG_MONGO_URI is configured, records are additionally shipped to a
// MongoDB collection through the asynchronous MongoHandler (see Attach).
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/ananyakrishnan/zaika/config"
)

var L *slog.Logger

func init() {
	var level slog.Level
	var handler slog.Handler

	opts := &slog.HandlerOptions{Level: level}

	switch config.AppEnv() {
	case "production", "prod":
		level = slog.LevelInfo
		opts.Level = level
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		level = slog.LevelDebug
		opts.Level = level
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// Attach fans the current handler out to additional handlers (e.g. a
// MongoHandler). Replaces the package logger in place.
func Attach(extra ...slog.Handler) {
	hs := append([]slog.Handler{L.Handler()}, extra...)
	L = slog.New(NewMultiHandler(hs...))
	slog.SetDefault(L)
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the *slog.Logger injected into ctx by the request logging
// middleware, pre-tagged with the request_id. Falls back to the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware — not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
