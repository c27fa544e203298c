// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-cred-guard/models"
)

// LockoutTracker drives the per-account Active/Locked state machine over
// [models.Account.FailedAttempts] and [models.Account.LockoutUntil].
//
// It mutates the in-memory account only; persisting the result is the
// caller's responsibility. Expired lockouts are cleared lazily on the next
// authentication attempt, never by a background sweep.
type LockoutTracker struct{}

// NewLockoutTracker constructs a [LockoutTracker].
func NewLockoutTracker() *LockoutTracker {
	return &LockoutTracker{}
}

// IsLocked reports whether account is inside an active lockout window at now.
func (l *LockoutTracker) IsLocked(account models.Account, now time.Time) bool {
	return account.LockoutUntil != nil && now.Before(*account.LockoutUntil)
}

// State derives the [models.LockoutState] of account at now.
func (l *LockoutTracker) State(account models.Account, now time.Time) models.LockoutState {
	if l.IsLocked(account, now) {
		return models.Locked
	}
	return models.Active
}

// ExpireIfElapsed performs the lazy Locked -> Active transition: when the
// lockout window has passed, the counter is reset and the window cleared.
// Returns true if account was modified.
func (l *LockoutTracker) ExpireIfElapsed(account *models.Account, now time.Time) bool {
	if account.LockoutUntil == nil || now.Before(*account.LockoutUntil) {
		return false
	}

	account.FailedAttempts = 0
	account.LockoutUntil = nil
	return true
}

// RecordFailure registers a failed attempt. Reaching cfg.MaxLoginAttempts
// opens a lockout window of cfg.LockoutDuration and pins the counter at the
// threshold. A non-positive threshold never locks.
func (l *LockoutTracker) RecordFailure(account *models.Account, cfg models.SecurityPolicyConfig, now time.Time) {
	if cfg.MaxLoginAttempts <= 0 || account.FailedAttempts+1 < cfg.MaxLoginAttempts {
		account.FailedAttempts++
		return
	}

	until := now.Add(cfg.LockoutDuration)
	account.FailedAttempts = cfg.MaxLoginAttempts
	account.LockoutUntil = &until
}

// RecordSuccess resets the failed-attempt counter.
func (l *LockoutTracker) RecordSuccess(account *models.Account) {
	account.FailedAttempts = 0
	account.LockoutUntil = nil
}

// Reset clears any lockout immediately. Used by administrators.
func (l *LockoutTracker) Reset(account *models.Account) {
	account.FailedAttempts = 0
	account.LockoutUntil = nil
}
