package db

import (
	"context"
	"database/sql"
	"net/url"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/AndresDRamos/sqlite-EZI/internal/db/dialect"
)

// openPostgres opens a PostgreSQL session through the database/sql driver
// registered as driverName (pgx in production). Malformed URIs and
// unreachable servers are reported as *ConnectionError.
func openPostgres(ctx context.Context, driverName, uri string) (*sqlx.DB, error) {
	sqlDB, err := sql.Open(driverName, uri)
	if err != nil {
		return nil, &ConnectionError{Target: redactURI(uri), Err: err}
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, &ConnectionError{Target: redactURI(uri), Err: err}
	}
	return sqlx.NewDb(sqlDB, dialect.PGX), nil
}

// redactURI hides the password of a connection URI. Unparseable values are
// not echoed back at all.
func redactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" {
		return "postgres"
	}
	return u.Redacted()
}
