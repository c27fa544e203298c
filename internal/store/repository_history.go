package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/models"
)

// historyRepository is the SQL-backed implementation of [HistoryRepository].
type historyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewHistoryRepository constructs a [HistoryRepository] backed by db.
func NewHistoryRepository(db *DB, logger *logger.Logger) HistoryRepository {
	logger.Debug().Msg("creating password history repository")
	return &historyRepository{
		db:     db,
		logger: logger,
	}
}

// ListForAccount returns the retired passwords of the account, newest first.
func (r *historyRepository) ListForAccount(ctx context.Context, accountID int64) ([]models.PasswordHistoryEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.selectHistory(accountID)
	if err != nil {
		log.Err(err).Str("func", "*historyRepository.ListForAccount").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*historyRepository.ListForAccount").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.PasswordHistoryEntry, 0)
	for rows.Next() {
		var entry models.PasswordHistoryEntry
		if err = rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.Hash,
			&entry.Salt,
			&entry.Iterations,
			&entry.CreatedAt,
		); err != nil {
			log.Err(err).Str("func", "*historyRepository.ListForAccount").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*historyRepository.ListForAccount").Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// execer is satisfied by both [*sql.DB] and [*sql.Tx].
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// appendHistory stores a retired password for the account.
func (db *DB) appendHistory(ctx context.Context, exec execer, accountID int64, entry models.PasswordHistoryEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := db.queries.insertHistory(accountID, entry)
	if err != nil {
		log.Err(err).Str("func", "*DB.appendHistory").Msg("error building insert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = exec.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*DB.appendHistory").
			Bool("retryable", db.retryable(err)).
			Msg("error inserting history entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// pruneHistory deletes all but the newest limit entries of the account.
// A limit of zero or less removes the whole history.
func (db *DB) pruneHistory(ctx context.Context, exec execer, accountID int64, limit int) error {
	log := logger.FromContext(ctx)

	query, args, err := db.queries.pruneHistory(accountID, limit)
	if err != nil {
		log.Err(err).Str("func", "*DB.pruneHistory").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*DB.pruneHistory").
			Bool("retryable", db.retryable(err)).
			Msg("error pruning history")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if pruned, err := result.RowsAffected(); err == nil && pruned > 0 {
		log.Debug().Int64("account_id", accountID).Int64("pruned", pruned).Msg("password history pruned")
	}

	return nil
}
