package db

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/AndresDRamos/sqlite-EZI/internal/db/dialect"
)

// Mode is the resolved choice between the development and production stores.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// ParseMode classifies an environment indicator. Only the exact string
// "production" selects production; everything else, including "", is
// development.
func ParseMode(indicator string) Mode {
	if indicator == string(ModeProduction) {
		return ModeProduction
	}
	return ModeDevelopment
}

func (m Mode) String() string { return string(m) }

// Target is where a Selector opens handles: either a DevelopmentTarget or a
// ProductionTarget.
type Target interface {
	// Dialect returns the sqlx/dialect driver name the target speaks.
	Dialect() string
	// String describes the target without credentials.
	String() string

	open(ctx context.Context, opts openOptions) (*sqlx.DB, error)
}

type openOptions struct {
	postgresDriver string
}

// DevelopmentTarget is a local SQLite file.
type DevelopmentTarget struct {
	Path string
}

func (t DevelopmentTarget) Dialect() string { return sqliteDriver }

func (t DevelopmentTarget) String() string { return "sqlite:" + t.Path }

func (t DevelopmentTarget) open(ctx context.Context, _ openOptions) (*sqlx.DB, error) {
	return openSQLite(ctx, t.Path)
}

// ProductionTarget is a PostgreSQL server reached through URI.
type ProductionTarget struct {
	URI string
}

func (t ProductionTarget) Dialect() string { return dialect.PGX }

func (t ProductionTarget) String() string { return redactURI(t.URI) }

func (t ProductionTarget) open(ctx context.Context, opts openOptions) (*sqlx.DB, error) {
	return openPostgres(ctx, opts.postgresDriver, t.URI)
}
