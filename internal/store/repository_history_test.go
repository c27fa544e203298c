package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-cred-guard/internal/config"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
)

func newTestHistoryRepo(t *testing.T) (*historyRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t, config.DriverPostgres)
	return &historyRepository{db: db, logger: logger.Nop()}, mock
}

func TestHistoryRepository_ListForAccount(t *testing.T) {
	repo, mock := newTestHistoryRepo(t)
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)

	rows := sqlmock.NewRows(historyColumns).
		AddRow(int64(2), int64(1), []byte("h2"), []byte("s2"), 600000, newer).
		AddRow(int64(1), int64(1), []byte("h1"), []byte("s1"), 100000, older)

	mock.ExpectQuery(regexp.QuoteMeta("FROM password_history WHERE account_id = $1 ORDER BY created_at DESC, id DESC")).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	entries, err := repo.ListForAccount(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []byte("h2"), entries[0].Hash)
	assert.Equal(t, 600000, entries[0].Iterations)
	assert.Equal(t, older, entries[1].CreatedAt)
}

func TestHistoryRepository_ListForAccount_QueryError(t *testing.T) {
	repo, mock := newTestHistoryRepo(t)

	mock.ExpectQuery("FROM password_history").WillReturnError(errors.New("boom"))

	_, err := repo.ListForAccount(context.Background(), 1)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}
