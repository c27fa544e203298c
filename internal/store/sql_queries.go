package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-cred-guard/models"
)

const (
	accountsTable        = "accounts"
	passwordHistoryTable = "password_history"
	securityPolicyTable  = "security_policy"

	// the policy table holds a single row
	securityPolicyRowID = 1
)

var accountColumns = []string{
	"id",
	"identifier",
	"role",
	"password_hash",
	"password_salt",
	"iterations",
	"password_changed_at",
	"failed_attempts",
	"lockout_until",
	"version",
	"created_at",
}

var historyColumns = []string{
	"id",
	"account_id",
	"hash",
	"salt",
	"iterations",
	"created_at",
}

var policyColumns = []string{
	"pbkdf2_iterations",
	"password_history_count",
	"max_login_attempts",
	"lockout_duration_seconds",
	"password_min_length",
	"require_uppercase",
	"require_lowercase",
	"require_numbers",
	"require_special",
	"password_expiry_seconds",
	"session_timeout_seconds",
}

// queryBuilder renders every statement of the store with the placeholder
// format of the connected driver.
type queryBuilder struct {
	sq squirrel.StatementBuilderType
}

func (q queryBuilder) insertAccount(account models.Account) (string, []any, error) {
	return q.sq.
		Insert(accountsTable).
		Columns(
			"identifier",
			"role",
			"password_hash",
			"password_salt",
			"iterations",
			"password_changed_at",
			"failed_attempts",
			"lockout_until",
			"version",
			"created_at",
		).
		Values(
			account.Identifier,
			string(account.Role),
			account.PasswordHash,
			account.PasswordSalt,
			account.Iterations,
			account.PasswordChangedAt.UTC(),
			account.FailedAttempts,
			utcOrNil(account.LockoutUntil),
			1,
			account.CreatedAt.UTC(),
		).
		Suffix("RETURNING " + strings.Join(accountColumns, ", ")).
		ToSql()
}

func (q queryBuilder) selectAccountBy(column string, value any) (string, []any, error) {
	return q.sq.
		Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{column: value}).
		ToSql()
}

// updateAccount writes every mutable column and bumps the version, but only
// when the stored version still equals account.Version.
func (q queryBuilder) updateAccount(account models.Account) (string, []any, error) {
	return q.sq.
		Update(accountsTable).
		Set("role", string(account.Role)).
		Set("password_hash", account.PasswordHash).
		Set("password_salt", account.PasswordSalt).
		Set("iterations", account.Iterations).
		Set("password_changed_at", account.PasswordChangedAt.UTC()).
		Set("failed_attempts", account.FailedAttempts).
		Set("lockout_until", utcOrNil(account.LockoutUntil)).
		Set("version", account.Version+1).
		Where(squirrel.Eq{"id": account.ID, "version": account.Version}).
		ToSql()
}

func (q queryBuilder) selectAnyAccountWithRole(role models.Role) (string, []any, error) {
	return q.sq.
		Select("id").
		From(accountsTable).
		Where(squirrel.Eq{"role": string(role)}).
		Limit(1).
		ToSql()
}

func (q queryBuilder) selectLockedAccounts(now time.Time) (string, []any, error) {
	return q.sq.
		Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.NotEq{"lockout_until": nil}).
		Where(squirrel.Gt{"lockout_until": now.UTC()}).
		OrderBy("lockout_until ASC", "id ASC").
		ToSql()
}

func (q queryBuilder) selectAccountsChangedBefore(cutoff time.Time) (string, []any, error) {
	return q.sq.
		Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.LtOrEq{"password_changed_at": cutoff.UTC()}).
		OrderBy("password_changed_at ASC", "id ASC").
		ToSql()
}

func (q queryBuilder) selectHistory(accountID int64) (string, []any, error) {
	return q.sq.
		Select(historyColumns...).
		From(passwordHistoryTable).
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
}

func (q queryBuilder) insertHistory(accountID int64, entry models.PasswordHistoryEntry) (string, []any, error) {
	return q.sq.
		Insert(passwordHistoryTable).
		Columns("account_id", "hash", "salt", "iterations", "created_at").
		Values(accountID, entry.Hash, entry.Salt, entry.Iterations, entry.CreatedAt.UTC()).
		ToSql()
}

// pruneHistory deletes every entry of the account except the newest limit.
func (q queryBuilder) pruneHistory(accountID int64, limit int) (string, []any, error) {
	if limit < 0 {
		limit = 0
	}

	keep := fmt.Sprintf(
		"id NOT IN (SELECT id FROM %s WHERE account_id = ? ORDER BY created_at DESC, id DESC LIMIT ?)",
		passwordHistoryTable,
	)

	return q.sq.
		Delete(passwordHistoryTable).
		Where(squirrel.Eq{"account_id": accountID}).
		Where(keep, accountID, limit).
		ToSql()
}

func (q queryBuilder) selectSecurityPolicy() (string, []any, error) {
	return q.sq.
		Select(policyColumns...).
		From(securityPolicyTable).
		Where(squirrel.Eq{"id": securityPolicyRowID}).
		ToSql()
}

func (q queryBuilder) upsertSecurityPolicy(cfg models.SecurityPolicyConfig, now time.Time) (string, []any, error) {
	columns := append([]string{"id"}, policyColumns...)
	columns = append(columns, "updated_at")

	assignments := make([]string, 0, len(columns)-1)
	for _, column := range columns[1:] {
		assignments = append(assignments, column+" = excluded."+column)
	}

	return q.sq.
		Insert(securityPolicyTable).
		Columns(columns...).
		Values(
			securityPolicyRowID,
			cfg.PBKDF2Iterations,
			cfg.PasswordHistoryCount,
			cfg.MaxLoginAttempts,
			seconds(cfg.LockoutDuration),
			cfg.PasswordMinLength,
			cfg.RequireUppercase,
			cfg.RequireLowercase,
			cfg.RequireNumbers,
			cfg.RequireSpecial,
			seconds(cfg.PasswordExpiry),
			seconds(cfg.SessionTimeout),
			now.UTC(),
		).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + strings.Join(assignments, ", ")).
		ToSql()
}

func utcOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
