package db

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	// DefaultSQLitePath is relative so the file lands in the working directory.
	DefaultSQLitePath = "ventanilla.db"

	defaultBusyTimeout = 5 * time.Second
)

// openSQLite opens (creating if absent) the SQLite file at dbPath and checks
// that it is usable. Failures are reported as *StorageError.
func openSQLite(ctx context.Context, dbPath string) (*sqlx.DB, error) {
	normalizedPath := normalizeSQLitePath(dbPath)
	if err := ensureSQLiteDir(normalizedPath); err != nil {
		return nil, &StorageError{Path: dbPath, Err: err}
	}
	if err := ensureSQLiteFile(normalizedPath); err != nil {
		return nil, &StorageError{Path: dbPath, Err: err}
	}

	sqlDB, err := sql.Open(sqliteDriver, sqliteDSN(normalizedPath))
	if err != nil {
		return nil, &StorageError{Path: dbPath, Err: err}
	}

	// One session per handle.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, &StorageError{Path: dbPath, Err: err}
	}
	return sqlx.NewDb(sqlDB, sqliteDriver), nil
}

// sqliteURI builds a file: URI so that '?', '#' and '%' in the path stay part
// of the file name instead of starting the query string.
func sqliteURI(path string, params url.Values) string {
	u := &url.URL{
		Scheme:   "file",
		Path:     path,
		OmitHost: !filepath.IsAbs(path),
		RawQuery: params.Encode(),
	}
	return u.String()
}

func ensureSQLiteDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func ensureSQLiteFile(dbPath string) error {
	file, err := os.OpenFile(dbPath, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	return file.Close()
}

func normalizeSQLitePath(dbPath string) string {
	if dbPath == "" {
		return dbPath
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return dbPath
	}
	return abs
}
