package sqldb

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrations embed.FS

// Migrate brings the schema up to the latest embedded version.
// The migrate instance is deliberately not closed: closing it would close db.
func Migrate(db *sqlx.DB, driver string) error {
	src, err := iofs.New(migrations, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("open migrations for %s: %w", driver, err)
	}

	var target database.Driver
	switch driver {
	case DriverSQLite:
		target, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	case DriverPostgres:
		target, err = postgres.WithInstance(db.DB, &postgres.Config{})
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("prepare migration target: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
