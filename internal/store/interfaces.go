package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cred-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository persists [models.Account] records.
//
// Save implements optimistic concurrency: the update only applies when the
// stored Version equals account.Version, otherwise [ErrConflict] is returned.
// This is how concurrent login or password-change attempts on the same
// account are serialised.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	GetByIdentifier(ctx context.Context, identifier string) (models.Account, error)
	GetByID(ctx context.Context, id int64) (models.Account, error)
	ExistsWithRole(ctx context.Context, role models.Role) (bool, error)
	Save(ctx context.Context, account models.Account) (models.Account, error)

	// ReplacePassword saves account like Save, appends retired to the
	// history and prunes the history to historyLimit entries, all in one
	// transaction. Either every write commits or none does.
	ReplacePassword(ctx context.Context, account models.Account, retired models.PasswordHistoryEntry, historyLimit int) (models.Account, error)

	// ListLocked returns accounts whose lockout window is still open at now.
	ListLocked(ctx context.Context, now time.Time) ([]models.Account, error)

	// ListPasswordChangedBefore returns accounts whose password was last set
	// at or before cutoff.
	ListPasswordChangedBefore(ctx context.Context, cutoff time.Time) ([]models.Account, error)
}

// HistoryRepository reads retired passwords, newest first. Entries are
// written by [AccountRepository.ReplacePassword].
type HistoryRepository interface {
	ListForAccount(ctx context.Context, accountID int64) ([]models.PasswordHistoryEntry, error)
}

// PolicyRepository persists the administrator-managed security policy.
// GetSecurityPolicy returns [ErrNoPolicyStored] until a policy is saved.
type PolicyRepository interface {
	GetSecurityPolicy(ctx context.Context) (models.SecurityPolicyConfig, error)
	SaveSecurityPolicy(ctx context.Context, cfg models.SecurityPolicyConfig) error
}

// ErrorClassificator decides whether a driver error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
