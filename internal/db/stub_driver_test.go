package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// stubPostgres is a database/sql driver standing in for a PostgreSQL
// server. It records the DSNs it was opened with and the statements it ran,
// and answers every query with the host it was "connected" to.
type stubPostgres struct {
	mu         sync.Mutex
	openErr    error
	dsns       []string
	statements []string
}

var (
	stubsMu sync.Mutex
	stubs   = map[string]*stubPostgres{}
)

// registerStubPostgres returns a stub under a name unique to t. database/sql
// cannot unregister drivers, so a rerun of the same test (-count=N) gets the
// already registered stub back, reset.
func registerStubPostgres(t *testing.T) (string, *stubPostgres) {
	t.Helper()
	name := "stubpg/" + t.Name()

	stubsMu.Lock()
	defer stubsMu.Unlock()
	stub, ok := stubs[name]
	if !ok {
		stub = &stubPostgres{}
		sql.Register(name, stub)
		stubs[name] = stub
	}
	stub.reset()
	return name, stub
}

func (d *stubPostgres) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.openErr = nil
	d.dsns = nil
	d.statements = nil
}

func (d *stubPostgres) Open(dsn string) (driver.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dsns = append(d.dsns, dsn)
	if d.openErr != nil {
		return nil, d.openErr
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, err
	}
	return &stubConn{driver: d, host: u.Hostname()}, nil
}

func (d *stubPostgres) opened() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.dsns...)
}

func (d *stubPostgres) ran() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.statements...)
}

func (d *stubPostgres) record(query string) {
	d.mu.Lock()
	d.statements = append(d.statements, query)
	d.mu.Unlock()
}

type stubConn struct {
	driver *stubPostgres
	host   string
}

func (c *stubConn) Prepare(query string) (driver.Stmt, error) {
	return &stubStmt{conn: c, query: query}, nil
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return nil, errors.New("stub: transactions not supported")
}

type stubStmt struct {
	conn  *stubConn
	query string
}

func (s *stubStmt) Close() error { return nil }
func (s *stubStmt) NumInput() int { return -1 }

func (s *stubStmt) Exec(_ []driver.Value) (driver.Result, error) {
	s.conn.driver.record(s.query)
	return driver.RowsAffected(1), nil
}

func (s *stubStmt) Query(_ []driver.Value) (driver.Rows, error) {
	s.conn.driver.record(s.query)
	if strings.Contains(s.query, "information_schema.tables") {
		return &stubRows{columns: []string{"table_name"}, values: [][]driver.Value{{"Folios"}, {"Roles"}}}, nil
	}
	if strings.HasPrefix(s.query, "SELECT COUNT(*)") {
		return &stubRows{columns: []string{"count"}, values: [][]driver.Value{{int64(3)}}}, nil
	}
	return &stubRows{columns: []string{"host"}, values: [][]driver.Value{{s.conn.host}}}, nil
}

type stubRows struct {
	columns []string
	values  [][]driver.Value
	next    int
}

func (r *stubRows) Columns() []string { return r.columns }
func (r *stubRows) Close() error { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.next >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.next])
	r.next++
	return nil
}
