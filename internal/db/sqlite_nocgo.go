//go:build !cgo

package db

import (
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"

	"github.com/AndresDRamos/sqlite-EZI/internal/db/dialect"
)

const sqliteDriver = dialect.SQLite

func sqliteDSN(path string) string {
	return sqliteURI(path, url.Values{
		"_pragma": {
			"foreign_keys(1)",
			fmt.Sprintf("busy_timeout(%d)", int(defaultBusyTimeout/time.Millisecond)),
		},
		"mode": {"rwc"},
	})
}
