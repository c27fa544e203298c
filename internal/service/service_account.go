package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-cred-guard/internal/crypto"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/store"
	"github.com/MKhiriev/go-cred-guard/internal/validators"
	"github.com/MKhiriev/go-cred-guard/models"
)

// accountService implements [AccountService] on top of the account
// repository.
type accountService struct {
	accounts store.AccountRepository
	policies PolicySource
	hasher   crypto.PasswordHasher
	policy   validators.PasswordPolicy
	lockout  *LockoutTracker
	now      func() time.Time
	logger   *logger.Logger
}

// NewAccountService constructs an [AccountService].
func NewAccountService(accounts store.AccountRepository, policies PolicySource, hasher crypto.PasswordHasher, logger *logger.Logger) AccountService {
	return &accountService{
		accounts: accounts,
		policies: policies,
		hasher:   hasher,
		policy:   validators.NewPasswordPolicyEngine(hasher),
		lockout:  NewLockoutTracker(),
		now:      time.Now,
		logger:   logger,
	}
}

// RegisterAccount creates an account whose password satisfies the
// complexity rules. The role defaults to viewer.
//
// Returns:
//   - ErrInvalidDataProvided for an empty identifier or an unknown role.
//   - *validators.PolicyError when the password is rejected.
//   - store.ErrIdentifierAlreadyExists for a taken identifier.
func (s *accountService) RegisterAccount(ctx context.Context, request models.RegisterRequest) (models.Account, error) {
	log := logger.FromContext(ctx)

	identifier := strings.TrimSpace(request.Identifier)
	if identifier == "" {
		return models.Account{}, ErrInvalidDataProvided
	}

	role := request.Role
	if role == "" {
		role = models.RoleViewer
	}
	if !role.Valid() {
		return models.Account{}, fmt.Errorf("%w: unknown role %q", ErrInvalidDataProvided, role)
	}

	cfg, err := s.policies.LoadSecurityPolicyConfig(ctx)
	if err != nil {
		return models.Account{}, err
	}

	if err = s.policy.ValidateComplexity(request.Password, cfg).Err(); err != nil {
		return models.Account{}, err
	}

	salt, err := s.hasher.NewSalt(crypto.MinSaltLength)
	if err != nil {
		return models.Account{}, err
	}
	hash, err := s.hasher.Derive(request.Password, salt, cfg.PBKDF2Iterations)
	if err != nil {
		return models.Account{}, err
	}

	now := s.now()
	account, err := s.accounts.CreateAccount(ctx, models.Account{
		Identifier:        identifier,
		Role:              role,
		PasswordHash:      hash,
		PasswordSalt:      salt,
		Iterations:        cfg.PBKDF2Iterations,
		PasswordChangedAt: now,
		CreatedAt:         now,
	})
	if err != nil {
		log.Err(err).Str("identifier", identifier).Msg("account creation ended with error")
		return models.Account{}, err
	}

	log.Info().Str("identifier", identifier).Str("role", string(role)).Msg("account registered")
	return account, nil
}

// BootstrapAdmin creates the first admin account. It is a no-op once any
// admin exists, so it is safe to run on every startup. The password must
// pass the same complexity rules as any registration.
func (s *accountService) BootstrapAdmin(ctx context.Context, identifier, password string) (bool, error) {
	log := logger.FromContext(ctx)

	exists, err := s.accounts.ExistsWithRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("error checking for admin accounts: %w", err)
	}
	if exists {
		log.Debug().Msg("admin account present, bootstrap skipped")
		return false, nil
	}

	if _, err = s.RegisterAccount(ctx, models.RegisterRequest{
		Identifier: identifier,
		Password:   password,
		Role:       models.RoleAdmin,
	}); err != nil {
		return false, fmt.Errorf("error creating bootstrap admin: %w", err)
	}

	log.Warn().Str("identifier", identifier).Msg("bootstrap admin created, change its password")
	return true, nil
}

// ListLocked returns the accounts whose lockout window is open now. Windows
// that have already elapsed are not listed even though their counters are
// only reset at the next login.
func (s *accountService) ListLocked(ctx context.Context) ([]models.LockedAccount, error) {
	accounts, err := s.accounts.ListLocked(ctx, s.now())
	if err != nil {
		return nil, err
	}

	locked := make([]models.LockedAccount, 0, len(accounts))
	for _, a := range accounts {
		if a.LockoutUntil == nil {
			continue
		}
		locked = append(locked, models.LockedAccount{
			Identifier:     a.Identifier,
			FailedAttempts: a.FailedAttempts,
			LockoutUntil:   *a.LockoutUntil,
		})
	}

	return locked, nil
}

// Unlock clears the lockout window and the failed-attempt counter.
func (s *accountService) Unlock(ctx context.Context, identifier string) error {
	account, err := s.accounts.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}

	s.lockout.Reset(&account)
	if _, err = s.accounts.Save(ctx, account); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Str("identifier", identifier).Msg("account unlocked")
	return nil
}

// ListExpiredPasswords returns accounts whose password aged past the expiry
// window. An expiry of zero disables aging and yields no accounts.
func (s *accountService) ListExpiredPasswords(ctx context.Context) ([]models.Account, error) {
	cfg, err := s.policies.LoadSecurityPolicyConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.PasswordExpiry <= 0 {
		return nil, nil
	}

	return s.accounts.ListPasswordChangedBefore(ctx, s.now().Add(-cfg.PasswordExpiry))
}
