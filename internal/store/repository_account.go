package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/models"
)

// accountRepository is the SQL-backed implementation of [AccountRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by db.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount inserts a new account with version 1 and returns the stored
// row, including the server-assigned ID.
//
// A duplicate identifier yields [ErrIdentifierAlreadyExists].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.insertAccount(account)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error building insert query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").
			Bool("retryable", r.db.retryable(err)).
			Msg("error inserting account")

		if isUniqueViolation(err) {
			return models.Account{}, ErrIdentifierAlreadyExists
		}
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// GetByIdentifier returns the account with the given login identifier or
// [ErrAccountNotFound].
func (r *accountRepository) GetByIdentifier(ctx context.Context, identifier string) (models.Account, error) {
	return r.getBy(ctx, "identifier", identifier)
}

// GetByID returns the account with the given ID or [ErrAccountNotFound].
func (r *accountRepository) GetByID(ctx context.Context, id int64) (models.Account, error) {
	return r.getBy(ctx, "id", id)
}

func (r *accountRepository) getBy(ctx context.Context, column string, value any) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.selectAccountBy(column, value)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.getBy").Msg("error building select query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.getBy").Str("by", column).Msg("error selecting account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return account, nil
}

// ExistsWithRole reports whether at least one account holds role.
func (r *accountRepository) ExistsWithRole(ctx context.Context, role models.Role) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.selectAnyAccountWithRole(role)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ExistsWithRole").Msg("error building select query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ExistsWithRole").Msg("error selecting account")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

// Save persists every mutable field of account if, and only if, the stored
// version equals account.Version. On success the returned account carries the
// incremented version; otherwise [ErrConflict] is returned and nothing is
// written.
func (r *accountRepository) Save(ctx context.Context, account models.Account) (models.Account, error) {
	if err := r.update(ctx, r.db, account); err != nil {
		return models.Account{}, err
	}

	account.Version++
	return account, nil
}

// ReplacePassword writes the new credential held by account, records retired
// in the password history and trims the history to historyLimit entries.
// The three writes share one transaction, so a failure in any of them leaves
// both the account and its history as they were.
func (r *accountRepository) ReplacePassword(ctx context.Context, account models.Account, retired models.PasswordHistoryEntry, historyLimit int) (models.Account, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ReplacePassword").Msg("error beginning transaction")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = r.update(ctx, tx, account); err != nil {
		return models.Account{}, err
	}
	if err = r.db.appendHistory(ctx, tx, account.ID, retired); err != nil {
		return models.Account{}, err
	}
	if err = r.db.pruneHistory(ctx, tx, account.ID, historyLimit); err != nil {
		return models.Account{}, err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*accountRepository.ReplacePassword").
			Bool("retryable", r.db.retryable(err)).
			Msg("error committing transaction")
		return models.Account{}, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	account.Version++
	return account, nil
}

// update applies the versioned account update through exec.
func (r *accountRepository) update(ctx context.Context, exec execer, account models.Account) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.updateAccount(account)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.update").Msg("error building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.update").
			Bool("retryable", r.db.retryable(err)).
			Msg("error updating account")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.update").Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		log.Warn().Str("func", "*accountRepository.update").
			Int64("account_id", account.ID).
			Int64("version", account.Version).
			Msg("stale account version")
		return ErrConflict
	}

	return nil
}

// ListLocked returns accounts whose lockout window is open at now, soonest
// to unlock first.
func (r *accountRepository) ListLocked(ctx context.Context, now time.Time) ([]models.Account, error) {
	query, args, err := r.db.queries.selectLockedAccounts(now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.list(ctx, "*accountRepository.ListLocked", query, args)
}

// ListPasswordChangedBefore returns accounts whose password was set at or
// before cutoff, oldest first.
func (r *accountRepository) ListPasswordChangedBefore(ctx context.Context, cutoff time.Time) ([]models.Account, error) {
	query, args, err := r.db.queries.selectAccountsChangedBefore(cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.list(ctx, "*accountRepository.ListPasswordChangedBefore", query, args)
}

func (r *accountRepository) list(ctx context.Context, funcName, query string, args []any) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		account      models.Account
		role         string
		lockoutUntil sql.NullTime
	)

	err := row.Scan(
		&account.ID,
		&account.Identifier,
		&role,
		&account.PasswordHash,
		&account.PasswordSalt,
		&account.Iterations,
		&account.PasswordChangedAt,
		&account.FailedAttempts,
		&lockoutUntil,
		&account.Version,
		&account.CreatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}

	account.Role = models.Role(role)
	if lockoutUntil.Valid {
		until := lockoutUntil.Time
		account.LockoutUntil = &until
	}

	return account, nil
}
