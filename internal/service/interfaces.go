package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cred-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AccountStore is the part of the account repository the credential core
// needs. Save and ReplacePassword fail with store.ErrConflict when the
// account changed since it was read.
type AccountStore interface {
	GetByIdentifier(ctx context.Context, identifier string) (models.Account, error)
	Save(ctx context.Context, account models.Account) (models.Account, error)

	// ReplacePassword saves account, appends retired to its history and
	// prunes the history to historyLimit entries as one atomic write.
	ReplacePassword(ctx context.Context, account models.Account, retired models.PasswordHistoryEntry, historyLimit int) (models.Account, error)
}

// HistoryStore reads retired passwords, newest first.
type HistoryStore interface {
	ListForAccount(ctx context.Context, accountID int64) ([]models.PasswordHistoryEntry, error)
}

// PolicySource yields the security policy in force. It is consulted once per
// operation.
type PolicySource interface {
	LoadSecurityPolicyConfig(ctx context.Context) (models.SecurityPolicyConfig, error)
}

// CredentialValidator is the capability the authentication boundary depends
// on. Implementations must count failed attempts on Login only.
type CredentialValidator interface {
	// Login verifies plaintext for identifier. A nil error means the account
	// is authenticated.
	Login(ctx context.Context, identifier, plaintext string) (models.LoginResult, error)

	// ChangePassword replaces the password of identifier after the policy
	// accepted newPlaintext.
	ChangePassword(ctx context.Context, identifier, newPlaintext string) error

	// Reauthenticate checks plaintext without touching the failed-attempt
	// counter. Used to confirm the current password before a change.
	Reauthenticate(ctx context.Context, identifier, plaintext string) (models.Account, error)
}

// AuthService is the session boundary used by the HTTP handlers.
type AuthService interface {
	Login(ctx context.Context, request models.LoginRequest) (models.Session, error)
	ChangePassword(ctx context.Context, accountID int64, request models.ChangePasswordRequest) error
	CreateToken(ctx context.Context, account models.Account, ttl time.Duration) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AccountService covers account administration.
type AccountService interface {
	RegisterAccount(ctx context.Context, request models.RegisterRequest) (models.Account, error)
	ListLocked(ctx context.Context) ([]models.LockedAccount, error)
	Unlock(ctx context.Context, identifier string) error
	ListExpiredPasswords(ctx context.Context) ([]models.Account, error)

	// BootstrapAdmin registers identifier as an admin unless an admin
	// already exists. It reports whether an account was created.
	BootstrapAdmin(ctx context.Context, identifier, password string) (bool, error)
}

// PolicyService reads and replaces the stored security policy.
type PolicyService interface {
	PolicySource
	UpdateSecurityPolicy(ctx context.Context, cfg models.SecurityPolicyConfig) error
}

// AppInfoService exposes build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
