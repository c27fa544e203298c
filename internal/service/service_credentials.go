// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-cred-guard/internal/crypto"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/store"
	"github.com/MKhiriev/go-cred-guard/internal/validators"
	"github.com/MKhiriev/go-cred-guard/models"
)

// dummySalt feeds the derivations that make unknown identifiers and cheap
// legacy hashes cost as much as a wrong password at the full work factor.
var dummySalt = []byte("cred-guard/dummy")

// CredentialVerifier orchestrates login and password change over the
// account and history stores. It implements [CredentialValidator].
//
// The only state the verifier keeps is the highest stored iteration count it
// has seen, used as the work factor for failed checks. Concurrent attempts on
// the same account are serialised by the store: the loser of a race gets
// store.ErrConflict from Save and the error is returned as is.
type CredentialVerifier struct {
	accounts AccountStore
	history  HistoryStore
	policies PolicySource

	hasher  crypto.PasswordHasher
	policy  validators.PasswordPolicy
	lockout *LockoutTracker

	// highestCost is the largest account.Iterations returned by the store.
	highestCost atomic.Int64

	now    func() time.Time
	logger *logger.Logger
}

// VerifierOption customises a [CredentialVerifier].
type VerifierOption func(*CredentialVerifier)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *CredentialVerifier) {
		v.now = now
	}
}

// NewCredentialVerifier constructs a [CredentialVerifier].
func NewCredentialVerifier(
	accounts AccountStore,
	history HistoryStore,
	policies PolicySource,
	hasher crypto.PasswordHasher,
	logger *logger.Logger,
	opts ...VerifierOption,
) *CredentialVerifier {
	v := &CredentialVerifier{
		accounts: accounts,
		history:  history,
		policies: policies,
		hasher:   hasher,
		policy:   validators.NewPasswordPolicyEngine(hasher),
		lockout:  NewLockoutTracker(),
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Login authenticates identifier with plaintext.
//
// An elapsed lockout is cleared first. A locked account is rejected with
// [ErrAccountLocked] without checking the password. A wrong password counts
// as a failed attempt and may open a lockout window; a correct one resets
// the counter. Both outcomes are persisted before returning. Unknown
// identifiers and wrong passwords both yield [ErrInvalidCredentials].
//
// When the stored hash was derived with fewer iterations than the policy
// requires, a successful login re-derives it at the current cost.
func (v *CredentialVerifier) Login(ctx context.Context, identifier, plaintext string) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	cfg, err := v.policies.LoadSecurityPolicyConfig(ctx)
	if err != nil {
		return models.LoginResult{}, err
	}

	account, err := v.lookup(ctx, identifier, plaintext, cfg)
	if err != nil {
		return models.LoginResult{}, err
	}

	now := v.now()
	if v.lockout.ExpireIfElapsed(&account, now) {
		log.Info().Str("identifier", identifier).Msg("lockout window elapsed")
	}

	if v.lockout.IsLocked(account, now) {
		log.Warn().Str("identifier", identifier).Time("lockout_until", *account.LockoutUntil).Msg("login attempt on locked account")
		return models.LoginResult{}, ErrAccountLocked
	}

	ok, err := v.verify(plaintext, account, cfg)
	if err != nil {
		log.Err(err).Str("identifier", identifier).Msg("stored credential is malformed")
		return models.LoginResult{}, fmt.Errorf("error verifying password: %w", err)
	}

	if !ok {
		v.lockout.RecordFailure(&account, cfg, now)
		if _, err = v.accounts.Save(ctx, account); err != nil {
			log.Err(err).Str("identifier", identifier).Msg("error saving failed attempt")
			return models.LoginResult{}, err
		}

		event := log.Info()
		if v.lockout.IsLocked(account, now) {
			event = log.Warn()
		}
		event.Str("identifier", identifier).
			Int("failed_attempts", account.FailedAttempts).
			Str("state", v.lockout.State(account, now).String()).
			Msg("failed login attempt")

		return models.LoginResult{}, ErrInvalidCredentials
	}

	v.lockout.RecordSuccess(&account)
	v.upgradeHash(ctx, &account, plaintext, cfg)

	saved, err := v.accounts.Save(ctx, account)
	if err != nil {
		log.Err(err).Str("identifier", identifier).Msg("error saving successful attempt")
		return models.LoginResult{}, err
	}

	return models.LoginResult{
		Account:         saved,
		PasswordExpired: v.policy.CheckExpiry(saved.PasswordChangedAt, cfg.PasswordExpiry, now),
		Policy:          cfg,
	}, nil
}

// Reauthenticate verifies plaintext without recording the attempt. Locked
// accounts are rejected with [ErrAccountLocked].
func (v *CredentialVerifier) Reauthenticate(ctx context.Context, identifier, plaintext string) (models.Account, error) {
	cfg, err := v.policies.LoadSecurityPolicyConfig(ctx)
	if err != nil {
		return models.Account{}, err
	}

	account, err := v.lookup(ctx, identifier, plaintext, cfg)
	if err != nil {
		return models.Account{}, err
	}

	if v.lockout.IsLocked(account, v.now()) {
		return models.Account{}, ErrAccountLocked
	}

	ok, err := v.verify(plaintext, account, cfg)
	if err != nil {
		return models.Account{}, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return models.Account{}, ErrInvalidCredentials
	}

	return account, nil
}

// ChangePassword sets newPlaintext as the password of identifier.
//
// The candidate must satisfy the complexity rules and must not match the
// current password or any retained history entry; otherwise a
// *validators.PolicyError listing every violation is returned. On success the
// account gets a fresh salt and a hash at the configured cost, and the
// previous credential is pushed to the history, which is then pruned to the
// configured length. The account and history writes commit together.
func (v *CredentialVerifier) ChangePassword(ctx context.Context, identifier, newPlaintext string) error {
	log := logger.FromContext(ctx)

	cfg, err := v.policies.LoadSecurityPolicyConfig(ctx)
	if err != nil {
		return err
	}

	account, err := v.accounts.GetByIdentifier(ctx, identifier)
	if err != nil {
		return err
	}

	history, err := v.history.ListForAccount(ctx, account.ID)
	if err != nil {
		return err
	}

	now := v.now()
	decision, err := v.policy.IsAllowedChange(newPlaintext, account, history, cfg, now)
	if err != nil {
		return fmt.Errorf("error evaluating password policy: %w", err)
	}
	if !decision.Accepted() {
		log.Info().Str("identifier", identifier).Int("violations", len(decision.Violations)).Msg("password change rejected")
		return decision.Err()
	}

	salt, err := v.hasher.NewSalt(crypto.MinSaltLength)
	if err != nil {
		return err
	}
	hash, err := v.hasher.Derive(newPlaintext, salt, cfg.PBKDF2Iterations)
	if err != nil {
		return err
	}

	retired := models.PasswordHistoryEntry{
		AccountID:  account.ID,
		Hash:       account.PasswordHash,
		Salt:       account.PasswordSalt,
		Iterations: account.Iterations,
		CreatedAt:  now,
	}

	account.PasswordHash = hash
	account.PasswordSalt = salt
	account.Iterations = cfg.PBKDF2Iterations
	account.PasswordChangedAt = now

	if _, err = v.accounts.ReplacePassword(ctx, account, retired, max(cfg.PasswordHistoryCount, 0)); err != nil {
		log.Err(err).Str("identifier", identifier).Msg("error saving new password")
		return err
	}

	log.Info().Str("identifier", identifier).Msg("password changed")
	return nil
}

// lookup fetches the account and, for an unknown identifier, burns one
// derivation at the work factor before returning ErrInvalidCredentials.
func (v *CredentialVerifier) lookup(ctx context.Context, identifier, plaintext string, cfg models.SecurityPolicyConfig) (models.Account, error) {
	account, err := v.accounts.GetByIdentifier(ctx, identifier)
	if errors.Is(err, store.ErrAccountNotFound) {
		_, _ = v.hasher.Derive(plaintext, dummySalt, v.workFactor(cfg))
		logger.FromContext(ctx).Info().Str("identifier", identifier).Msg("login attempt for unknown identifier")
		return models.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Account{}, err
	}

	v.observeCost(account.Iterations)
	return account, nil
}

// verify checks plaintext against the stored hash. A mismatch on a hash
// cheaper than the work factor is topped up with a dummy derivation for the
// missing iterations, so a wrong password costs the same for every account
// and for unknown identifiers.
func (v *CredentialVerifier) verify(plaintext string, account models.Account, cfg models.SecurityPolicyConfig) (bool, error) {
	ok, err := v.hasher.Verify(plaintext, account.PasswordSalt, account.PasswordHash, account.Iterations)
	if err != nil || ok {
		return ok, err
	}

	if missing := v.workFactor(cfg) - account.Iterations; missing > 0 {
		_, _ = v.hasher.Derive(plaintext, dummySalt, missing)
	}
	return false, nil
}

// workFactor is the cost a failed check is brought up to: the configured
// iterations or the highest stored cost seen, whichever is larger.
func (v *CredentialVerifier) workFactor(cfg models.SecurityPolicyConfig) int {
	return max(cfg.PBKDF2Iterations, int(v.highestCost.Load()))
}

func (v *CredentialVerifier) observeCost(iterations int) {
	for {
		current := v.highestCost.Load()
		if int64(iterations) <= current || v.highestCost.CompareAndSwap(current, int64(iterations)) {
			return
		}
	}
}

// upgradeHash re-derives the hash of a just-verified password when it was
// stored at a lower cost than cfg requires. Failures leave the old hash.
func (v *CredentialVerifier) upgradeHash(ctx context.Context, account *models.Account, plaintext string, cfg models.SecurityPolicyConfig) {
	if account.Iterations >= cfg.PBKDF2Iterations {
		return
	}

	salt, err := v.hasher.NewSalt(crypto.MinSaltLength)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("error generating salt for hash upgrade")
		return
	}
	hash, err := v.hasher.Derive(plaintext, salt, cfg.PBKDF2Iterations)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("error deriving upgraded hash")
		return
	}

	logger.FromContext(ctx).Info().
		Str("identifier", account.Identifier).
		Int("from", account.Iterations).
		Int("to", cfg.PBKDF2Iterations).
		Msg("password hash upgraded")

	account.PasswordHash = hash
	account.PasswordSalt = salt
	account.Iterations = cfg.PBKDF2Iterations
}
