package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/smazurov/openlogger/internal/logging"
)

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFrom returns the request ID stored by RequestIDMiddleware.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDMiddleware echoes a client supplied X-Request-ID or assigns a new
// UUID, and stores it in the request context.
func RequestIDMiddleware(ctx huma.Context, next func(huma.Context)) {
	id := ctx.Header(RequestIDHeader)
	if id == "" || len(id) > 128 {
		id = uuid.NewString()
	}
	ctx.SetHeader(RequestIDHeader, id)
	next(huma.WithValue(ctx, requestIDKey{}, id))
}

// HTTPLoggingMiddleware logs HTTP requests with appropriate log levels based on status codes.
func HTTPLoggingMiddleware(ctx huma.Context, next func(huma.Context)) {
	start := time.Now()
	logger := logging.GetLogger("http")

	method := ctx.Method()
	query := ctx.URL().RawQuery
	userAgent := ctx.Header("User-Agent")

	logAttrs := []slog.Attr{
		slog.String("method", method),
		slog.String("path", ctx.URL().Path),
		slog.String("remote_addr", ctx.RemoteAddr()),
	}
	if id := RequestIDFrom(ctx.Context()); id != "" {
		logAttrs = append(logAttrs, slog.String("request_id", id))
	}
	if query != "" {
		logAttrs = append(logAttrs, slog.String("query", query))
	}
	if userAgent != "" {
		logAttrs = append(logAttrs, slog.String("user_agent", userAgent))
	}

	next(ctx)

	status := ctx.Status()
	logAttrs = append(logAttrs,
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
	)

	level := slog.LevelInfo
	switch {
	case method == "OPTIONS":
		level = slog.LevelDebug
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}
	logger.LogAttrs(ctx.Context(), level, "HTTP request completed", logAttrs...)
}
