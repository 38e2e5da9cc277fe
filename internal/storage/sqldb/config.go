package sqldb

import "time"

// Supported database drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config holds SQL connection settings
type Config struct {
	// Driver is the database/sql driver name ("sqlite3" or "postgres")
	Driver string
	// DSN is the driver-specific connection string
	DSN string

	// Pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Migrate applies embedded schema migrations on open
	Migrate bool
}

// DefaultConfig returns a config for a local SQLite file
func DefaultConfig() Config {
	return Config{
		Driver:          DriverSQLite,
		DSN:             "clubroster.db",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 30 * time.Minute,
		Migrate:         true,
	}
}
