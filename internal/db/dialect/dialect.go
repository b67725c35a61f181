// Package dialect provides SQL fragment helpers for SQLite/PostgreSQL portability.
package dialect

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	SQLite3 = "sqlite3" // github.com/mattn/go-sqlite3 (cgo)
	SQLite  = "sqlite"  // modernc.org/sqlite (pure Go)
	PGX     = "pgx"
)

func init() {
	// sqlx only knows the cgo driver name out of the box.
	sqlx.BindDriver(SQLite, sqlx.QUESTION)
}

// IsPostgres returns true if the driver is PostgreSQL (pgx).
func IsPostgres(driver string) bool {
	return driver == PGX
}

// IsSQLite returns true for either SQLite driver.
func IsSQLite(driver string) bool {
	return driver == SQLite3 || driver == SQLite
}

// Rebind rewrites '?' placeholders into the driver's bind style
// ($1, $2, ... for PostgreSQL).
func Rebind(driver, query string) string {
	return sqlx.Rebind(sqlx.BindType(driver), query)
}

// ListTablesQuery returns a query yielding one column with the names of the
// user tables visible to the connection, sorted by name.
func ListTablesQuery(driver string) string {
	if IsPostgres(driver) {
		return "SELECT table_name FROM information_schema.tables " +
			"WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' " +
			"ORDER BY table_name"
	}
	return "SELECT name FROM sqlite_master " +
		"WHERE type = 'table' AND name NOT LIKE 'sqlite_%' " +
		"ORDER BY name"
}

// QuoteIdent quotes an identifier. Both dialects use standard double quotes.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
