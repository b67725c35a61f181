package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/AndresDRamos/sqlite-EZI/internal/db/dialect"
)

// Handle is an open database session returned by Selector.Acquire.
// Queries may use '?' placeholders on either store.
type Handle struct {
	*sqlx.DB
	target Target
}

// Result reports the outcome of a statement that returns no rows.
// LastID is 0 when the driver cannot report it (PostgreSQL).
type Result struct {
	LastID  int64
	Changes int64
}

// Target returns the store this handle is connected to.
func (h *Handle) Target() Target {
	return h.target
}

// Query runs a row-returning statement and returns each row as a column map.
func (h *Handle) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := h.QueryxContext(ctx, dialect.Rebind(h.DriverName(), query), args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []map[string]any
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Exec runs a statement that returns no rows.
func (h *Handle) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := h.ExecContext(ctx, dialect.Rebind(h.DriverName(), query), args...)
	if err != nil {
		return Result{}, err
	}
	changes, err := res.RowsAffected()
	if err != nil {
		return Result{}, err
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		lastID = 0
	}
	return Result{LastID: lastID, Changes: changes}, nil
}

// Tables lists the user tables of the connected database, sorted by name.
func (h *Handle) Tables(ctx context.Context) ([]string, error) {
	var names []string
	if err := h.SelectContext(ctx, &names, dialect.ListTablesQuery(h.DriverName())); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return names, nil
}

// TableCount is the row count of one table.
type TableCount struct {
	Table string
	Rows  int64
}

// Count returns the number of rows in table, which must be one of Tables.
func (h *Handle) Count(ctx context.Context, table string) (int64, error) {
	names, err := h.Tables(ctx)
	if err != nil {
		return 0, err
	}
	for _, name := range names {
		if name == table {
			return h.countRows(ctx, table)
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownTable, table)
}

// TableCounts returns the row count of every table, in Tables order.
func (h *Handle) TableCounts(ctx context.Context) ([]TableCount, error) {
	names, err := h.Tables(ctx)
	if err != nil {
		return nil, err
	}
	counts := make([]TableCount, 0, len(names))
	for _, name := range names {
		n, err := h.countRows(ctx, name)
		if err != nil {
			return nil, err
		}
		counts = append(counts, TableCount{Table: name, Rows: n})
	}
	return counts, nil
}

// countRows trusts table to be a catalog name.
func (h *Handle) countRows(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := h.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+dialect.QuoteIdent(table)); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// Close closes the session. SQLite handles refresh planner statistics first.
func (h *Handle) Close() error {
	if dialect.IsSQLite(h.DriverName()) {
		_, _ = h.DB.Exec("PRAGMA optimize")
	}
	return h.DB.Close()
}
