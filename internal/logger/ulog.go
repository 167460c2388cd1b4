package logger

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fhuszti/cameraroll-ms-go/internal/api_context"
)

var std *slog.Logger

// Init wires the process-wide slog logger.
// ENV:
//
//	LOG_FORMAT    json|text (default: json)
//	LOG_LEVEL     debug|info|warn|error (default: info)
//	LOG_SOURCE    true|false (default: false)
func Init() {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(envOr("LOG_LEVEL", "info")),
		AddSource: parseBool(envOr("LOG_SOURCE", "false")),
	}

	var base slog.Handler
	if strings.ToLower(envOr("LOG_FORMAT", "json")) == "text" {
		base = slog.NewTextHandler(os.Stdout, opts)
	} else {
		base = slog.NewJSONHandler(os.Stdout, opts)
	}

	// svc goes on first so it prints before uid in TextHandler
	std = slog.New(uidHandler{h: base}).With("svc", "cameraroll-ms")
	slog.SetDefault(std)

	// keep legacy log.Printf output flowing through the same handler
	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(base, slog.LevelInfo).Writer())
}

// uidHandler stamps every record with the authenticated user id from the
// request context, or "system" outside a request.
type uidHandler struct{ h slog.Handler }

func (u uidHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return u.h.Enabled(ctx, lvl)
}

func (u uidHandler) Handle(ctx context.Context, r slog.Record) error {
	uid, ok := api_context.AuthUserIDFromContext(ctx)
	if !ok {
		uid = "system"
	}
	r.AddAttrs(slog.String("uid", uid))
	return u.h.Handle(ctx, r)
}

func (u uidHandler) WithAttrs(a []slog.Attr) slog.Handler {
	return uidHandler{h: u.h.WithAttrs(a)}
}

func (u uidHandler) WithGroup(n string) slog.Handler {
	return uidHandler{h: u.h.WithGroup(n)}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func activeLogger() *slog.Logger {
	if std != nil {
		return std
	}
	return slog.Default()
}

func Info(ctx context.Context, msg string, attrs ...any) {
	activeLogger().InfoContext(ctx, msg, attrs...)
}
func Warn(ctx context.Context, msg string, attrs ...any) {
	activeLogger().WarnContext(ctx, msg, attrs...)
}
func Error(ctx context.Context, msg string, attrs ...any) {
	activeLogger().ErrorContext(ctx, msg, attrs...)
}
func Debug(ctx context.Context, msg string, attrs ...any) {
	activeLogger().DebugContext(ctx, msg, attrs...)
}

func Infof(ctx context.Context, format string, a ...any) {
	activeLogger().InfoContext(ctx, fmt.Sprintf(format, a...))
}
func Warnf(ctx context.Context, format string, a ...any) {
	activeLogger().WarnContext(ctx, fmt.Sprintf(format, a...))
}
func Errorf(ctx context.Context, format string, a ...any) {
	activeLogger().ErrorContext(ctx, fmt.Sprintf(format, a...))
}
func Debugf(ctx context.Context, format string, a ...any) {
	activeLogger().DebugContext(ctx, fmt.Sprintf(format, a...))
}
