package dialect

import (
	"testing"
)

func TestIsPostgres(t *testing.T) {
	if !IsPostgres(PGX) {
		t.Error("expected pgx to be postgres")
	}
	if IsPostgres(SQLite3) {
		t.Error("expected sqlite3 to not be postgres")
	}
	if IsPostgres(SQLite) {
		t.Error("expected sqlite to not be postgres")
	}
}

func TestIsSQLite(t *testing.T) {
	if !IsSQLite(SQLite3) || !IsSQLite(SQLite) {
		t.Error("expected both sqlite drivers to be sqlite")
	}
	if IsSQLite(PGX) {
		t.Error("expected pgx to not be sqlite")
	}
}

func TestRebind(t *testing.T) {
	query := "SELECT * FROM Folios WHERE idFolio = ? AND estado = ?"

	got := Rebind(PGX, query)
	if got != "SELECT * FROM Folios WHERE idFolio = $1 AND estado = $2" {
		t.Errorf("pgx: got %q", got)
	}
	if got := Rebind(SQLite3, query); got != query {
		t.Errorf("sqlite3: got %q", got)
	}
	if got := Rebind(SQLite, query); got != query {
		t.Errorf("sqlite: got %q", got)
	}
}

func TestListTablesQuery(t *testing.T) {
	if got := ListTablesQuery(SQLite3); got == ListTablesQuery(PGX) {
		t.Errorf("expected dialect-specific queries, got %q for both", got)
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Roles", `"Roles"`},
		{"Folio_respuestas", `"Folio_respuestas"`},
		{`bad"name`, `"bad""name"`},
	}
	for _, tt := range tests {
		if got := QuoteIdent(tt.in); got != tt.want {
			t.Errorf("QuoteIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
