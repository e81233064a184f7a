/*
Package logger wraps zerolog with process-wide defaults and request-scoped
child loggers.

USAGE:
  logger.Init(logger.Options{Level: "info", Format: "json", Service: "payroll"})
  logger.Get().Info().Msg("starting")
  logger.Named("sqlite").Debug().Msg("migrated")
  logger.C(r.Context()).Warn().Msg("rejected")

FORMATS:
  console: human-readable, for local runs
  json:    one object per line, for shipping to a collector

The root logger is built once. Get() before Init() falls back to
FromEnv(), so packages that log during startup never see a nil logger.
*/
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project-wide logging type.
type Logger = zerolog.Logger

// Options configures the logger.
type Options struct {
	Level   string
	Format  string
	Service string
	Writer  io.Writer
}

// FromEnv reads LOG_LEVEL and LOG_FORMAT directly, without going through
// the config package.
func FromEnv() Options {
	return Options{
		Level:  strings.ToLower(envOr("LOG_LEVEL", "info")),
		Format: strings.ToLower(envOr("LOG_FORMAT", "console")),
	}
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger]
	inited atomic.Bool
)

// Get returns the process-wide root logger.
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// Init builds the root logger. Only the first call has any effect.
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		log := New(opt)
		root.Store(&log)
		inited.Store(true)
	})
}

// New builds a standalone logger without touching the root.
func New(opt Options) Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: opt.Writer != nil}
	}

	ctx := zerolog.New(w).Level(ParseLevel(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		ctx = ctx.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		ctx = ctx.Str("service", opt.Service)
	}
	return ctx.Logger()
}

// ParseLevel maps a level name to a zerolog level. Unknown names yield info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// ValidLevel reports whether s names a level ParseLevel recognizes.
func ValidLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
		return true
	}
	return false
}

// =============================================================================
// REQUEST SCOPE
// =============================================================================

type ctxKey struct{ name string }

var (
	keyRequestID     = ctxKey{"request_id"}
	keyCalculationID = ctxKey{"calculation_id"}
)

// WithRequest annotates ctx with the request ID.
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, keyRequestID, reqID)
}

// WithCalculation annotates ctx with the calculation ID.
func WithCalculation(ctx context.Context, calcID string) context.Context {
	if calcID == "" {
		return ctx
	}
	return context.WithValue(ctx, keyCalculationID, calcID)
}

// C returns a child of the root logger enriched with the IDs stored in ctx.
func C(ctx context.Context) *Logger {
	builder := Get().With()
	if s, ok := ctx.Value(keyRequestID).(string); ok {
		builder = builder.Str("request_id", s)
	}
	if s, ok := ctx.Value(keyCalculationID).(string); ok {
		builder = builder.Str("calculation_id", s)
	}
	ll := builder.Logger()
	return &ll
}

// Named returns a child logger with a component field.
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
