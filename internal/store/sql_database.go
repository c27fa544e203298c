package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-cred-guard/internal/config"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/migrations"
)

// DB wraps *sql.DB with the driver name, a squirrel statement builder using
// the driver's placeholder format, and the driver's error classifier.
type DB struct {
	*sql.DB
	driver             string
	queries            queryBuilder
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, driver string, classificator ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		driver:             driver,
		queries:            newQueryBuilder(driver),
		errorClassificator: classificator,
		logger:             log,
	}
}

// NewConnect opens a connection for cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres, "":
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Driver returns the database/sql driver name of the connection.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies the embedded schema migrations for the connection's driver.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// retryable reports whether err is a transient driver error.
func (db *DB) retryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

func newQueryBuilder(driver string) queryBuilder {
	var placeholder squirrel.PlaceholderFormat = squirrel.Dollar
	if driver == config.DriverSQLite {
		placeholder = squirrel.Question
	}

	return queryBuilder{sq: squirrel.StatementBuilder.PlaceholderFormat(placeholder)}
}
