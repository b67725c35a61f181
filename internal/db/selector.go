package db

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/AndresDRamos/sqlite-EZI/internal/common/logger"
	"github.com/AndresDRamos/sqlite-EZI/internal/common/tracing"
	"github.com/AndresDRamos/sqlite-EZI/internal/db/dialect"
)

// Environment variables read by NewSelectorFromEnv.
const (
	EnvIndicator   = "NODE_ENV"
	EnvDatabaseURL = "DATABASE_URL"
)

// Selector opens database handles against the store chosen by its mode.
//
// The mode and URI are fixed at construction. Every Acquire opens a new
// handle; the Selector neither caches nor tracks them, so it is safe to share
// between goroutines.
type Selector struct {
	mode           Mode
	uri            string
	sqlitePath     string
	postgresDriver string
	log            *logger.Logger
	tracer         trace.Tracer
}

// Option customizes a Selector.
type Option func(*Selector)

// WithLogger sets the logger used for acquire events.
func WithLogger(log *logger.Logger) Option {
	return func(s *Selector) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSQLitePath overrides the development database file.
func WithSQLitePath(path string) Option {
	return func(s *Selector) {
		if path != "" {
			s.sqlitePath = path
		}
	}
}

// WithPostgresDriver selects the database/sql driver name used for the
// production store. Defaults to pgx.
func WithPostgresDriver(name string) Option {
	return func(s *Selector) {
		if name != "" {
			s.postgresDriver = name
		}
	}
}

// WithTracer sets the tracer used to record acquire spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Selector) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// NewSelector creates a Selector for an already resolved mode. uri is only
// used in production mode.
func NewSelector(mode Mode, uri string, opts ...Option) *Selector {
	s := &Selector{
		mode:           mode,
		uri:            uri,
		sqlitePath:     DefaultSQLitePath,
		postgresDriver: dialect.PGX,
		log:            logger.Default(),
		tracer:         tracing.Tracer("ventanilla/db"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSelectorFromEnv resolves the mode from NODE_ENV and, in production,
// the URI from DATABASE_URL. Both are read once, here.
func NewSelectorFromEnv(opts ...Option) *Selector {
	mode := ParseMode(os.Getenv(EnvIndicator))
	var uri string
	if mode == ModeProduction {
		uri = os.Getenv(EnvDatabaseURL)
	}
	return NewSelector(mode, uri, opts...)
}

// Mode returns the mode resolved at construction.
func (s *Selector) Mode() Mode {
	return s.mode
}

// Target returns where Acquire will connect. In production mode an empty
// URI is a *ConfigurationError.
func (s *Selector) Target() (Target, error) {
	if s.mode != ModeProduction {
		return DevelopmentTarget{Path: s.sqlitePath}, nil
	}
	if s.uri == "" {
		return nil, &ConfigurationError{Key: EnvDatabaseURL}
	}
	return ProductionTarget{URI: s.uri}, nil
}

// Acquire opens a new handle to the selected store and verifies it with a
// ping. The caller owns the handle and must Close it. There is no retry and
// no fallback between stores.
func (s *Selector) Acquire(ctx context.Context) (*Handle, error) {
	ctx, span := s.tracer.Start(ctx, "db.acquire",
		trace.WithAttributes(attribute.String("db.mode", s.mode.String())))
	defer span.End()

	target, err := s.Target()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("db.system", target.Dialect()))

	conn, err := target.open(ctx, openOptions{postgresDriver: s.postgresDriver})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.log.Debug("database connection acquired",
		zap.String("mode", s.mode.String()),
		zap.String("target", target.String()))
	return &Handle{DB: conn, target: target}, nil
}
