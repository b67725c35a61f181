//go:build cgo

package db

import (
	"net/url"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/AndresDRamos/sqlite-EZI/internal/db/dialect"
)

const sqliteDriver = dialect.SQLite3

// sqliteDSN enables foreign keys and waits briefly on locks instead of
// failing with "database is locked".
func sqliteDSN(path string) string {
	return sqliteURI(path, url.Values{
		"_foreign_keys": {"on"},
		"_busy_timeout": {strconv.Itoa(int(defaultBusyTimeout / time.Millisecond))},
		"mode":          {"rwc"},
	})
}
