package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-cred-guard/internal/config"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
)

func newTestDB(t *testing.T, driver string) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var classificator ErrorClassificator = NewPostgresErrorClassifier()
	if driver == config.DriverSQLite {
		classificator = NewSQLiteErrorClassifier()
	}

	return newDB(conn, driver, classificator, logger.Nop()), mock
}
