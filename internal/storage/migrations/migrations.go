package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed files/*.sql
var schemaFiles embed.FS

// ErrSchemaOutdated is returned by Check when the session database is
// missing schema steps that this build knows about.
var ErrSchemaOutdated = errors.New("session database schema is outdated")

// Step is one versioned change to the session database schema.
type Step struct {
	Version uint
	Name    string
}

// Schema is the state of a session database relative to the embedded steps.
type Schema struct {
	Version uint // 0 when nothing has been applied
	Dirty   bool
	Latest  uint
	Pending []Step
}

// Steps lists the embedded schema steps in version order.
func Steps() ([]Step, error) {
	entries, err := fs.ReadDir(schemaFiles, "files")
	if err != nil {
		return nil, fmt.Errorf("reading schema files: %w", err)
	}
	var steps []Step
	for _, e := range entries {
		m, err := source.Parse(e.Name())
		if err != nil {
			return nil, fmt.Errorf("schema file %s: %w", e.Name(), err)
		}
		if m.Direction != source.Up {
			continue
		}
		steps = append(steps, Step{Version: m.Version, Name: m.Identifier})
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].Version < steps[j].Version })
	return steps, nil
}

// Inspect reads the applied version of db and the steps still to apply.
func Inspect(db *sql.DB) (Schema, error) {
	m, err := newMigrate(db)
	if err != nil {
		return Schema{}, err
	}
	// m is not closed: that would close db, which the caller owns.

	var s Schema
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
	case err != nil:
		return Schema{}, fmt.Errorf("reading schema version: %w", err)
	default:
		s.Version, s.Dirty = version, dirty
	}

	steps, err := Steps()
	if err != nil {
		return Schema{}, err
	}
	for _, step := range steps {
		if step.Version > s.Latest {
			s.Latest = step.Version
		}
		if step.Version > s.Version {
			s.Pending = append(s.Pending, step)
		}
	}
	return s, nil
}

// Check returns nil when db has every schema step applied cleanly.
func Check(db *sql.DB) error {
	s, err := Inspect(db)
	if err != nil {
		return err
	}
	if s.Dirty {
		return fmt.Errorf("session database is dirty at version %d (a schema step failed part way)", s.Version)
	}
	if s.Version > s.Latest {
		return fmt.Errorf("session database is at version %d, newer than this build (%d)", s.Version, s.Latest)
	}
	if len(s.Pending) > 0 {
		names := make([]string, len(s.Pending))
		for i, step := range s.Pending {
			names[i] = fmt.Sprintf("%s (version %d)", step.Name, step.Version)
		}
		return fmt.Errorf("%w: missing %s", ErrSchemaOutdated, strings.Join(names, ", "))
	}
	return nil
}

// Up applies every pending step. A current database is left untouched.
func Up(db *sql.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(schemaFiles, "files")
	if err != nil {
		return nil, fmt.Errorf("loading schema files: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("preparing session database: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("preparing schema runner: %w", err)
	}
	return m, nil
}
