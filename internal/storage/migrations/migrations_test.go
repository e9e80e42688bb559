package migrations

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestSteps(t *testing.T) {
	steps, err := Steps()
	if err != nil {
		t.Fatalf("Steps() error = %v", err)
	}
	if len(steps) != 1 || steps[0] != (Step{Version: 1, Name: "local_storage"}) {
		t.Errorf("Steps() = %+v, want [{1 local_storage}]", steps)
	}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name        string
		apply       bool
		wantVersion uint
		wantPending int
	}{
		{name: "fresh database", apply: false, wantVersion: 0, wantPending: 1},
		{name: "after Up", apply: true, wantVersion: 1, wantPending: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openTestDB(t)
			if tt.apply {
				if err := Up(db); err != nil {
					t.Fatalf("Up() error = %v", err)
				}
			}

			s, err := Inspect(db)
			if err != nil {
				t.Fatalf("Inspect() error = %v", err)
			}
			if s.Version != tt.wantVersion || len(s.Pending) != tt.wantPending || s.Latest != 1 || s.Dirty {
				t.Errorf("Inspect() = %+v, want version %d with %d pending", s, tt.wantVersion, tt.wantPending)
			}
		})
	}
}

func TestUp_CreatesTablesAndIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 2; i++ {
		if err := Up(db); err != nil {
			t.Fatalf("Up() run %d error = %v", i+1, err)
		}
	}
	for _, table := range []string{"local_storage", "schema_migrations"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s was not created: %v", table, err)
		}
	}
}

func TestCheck(t *testing.T) {
	t.Run("fresh database names the missing step", func(t *testing.T) {
		db := openTestDB(t)

		err := Check(db)
		if !errors.Is(err, ErrSchemaOutdated) {
			t.Fatalf("Check() error = %v, want ErrSchemaOutdated", err)
		}
		if !strings.Contains(err.Error(), "local_storage (version 1)") {
			t.Errorf("Check() error = %q, want it to name local_storage", err)
		}
	})

	t.Run("current database", func(t *testing.T) {
		db := openTestDB(t)
		if err := Up(db); err != nil {
			t.Fatalf("Up() error = %v", err)
		}
		if err := Check(db); err != nil {
			t.Errorf("Check() error = %v", err)
		}
	})

	t.Run("dirty database", func(t *testing.T) {
		db := openTestDB(t)
		if err := Up(db); err != nil {
			t.Fatalf("Up() error = %v", err)
		}
		if _, err := db.Exec("UPDATE schema_migrations SET dirty = 1"); err != nil {
			t.Fatalf("marking dirty: %v", err)
		}
		err := Check(db)
		if err == nil || !strings.Contains(err.Error(), "dirty") {
			t.Errorf("Check() error = %v, want dirty error", err)
		}
	})

	t.Run("database from a newer build", func(t *testing.T) {
		db := openTestDB(t)
		if err := Up(db); err != nil {
			t.Fatalf("Up() error = %v", err)
		}
		if _, err := db.Exec("UPDATE schema_migrations SET version = 7"); err != nil {
			t.Fatalf("bumping version: %v", err)
		}
		err := Check(db)
		if err == nil || errors.Is(err, ErrSchemaOutdated) || !strings.Contains(err.Error(), "newer") {
			t.Errorf("Check() error = %v, want newer-build error", err)
		}
	})
}

func TestSchema_KeyIsUnique(t *testing.T) {
	db := openTestDB(t)
	if err := Up(db); err != nil {
		t.Fatalf("Up() error = %v", err)
	}

	if _, err := db.Exec("INSERT INTO local_storage (key, value) VALUES ('access_token', 'a')"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := db.Exec("INSERT INTO local_storage (key, value) VALUES ('access_token', 'b')"); err == nil {
		t.Error("duplicate key was accepted")
	}
}

// openTestDB opens an in-memory SQLite database pinned to one connection.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}
