// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators enforces the password policy: complexity rules,
// reuse prevention against retained history, and password aging.
//
// Core concepts:
//   - PasswordPolicy: evaluates a candidate password against a
//     [models.SecurityPolicyConfig] snapshot and the account's history.
//   - Violation: a single broken rule; every violation is reported so the
//     caller can present complete feedback.
//   - PolicyError: the error form of a rejected decision. It unwraps to
//     each violation, so errors.Is matches ErrTooShort,
//     ErrMissingCharacterClass and ErrPasswordReused.
//
// The package performs no I/O. Configuration and history are passed in by
// the caller.
package validators

import (
	"time"

	"github.com/MKhiriev/go-cred-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/password_policy_mock.go -package=mock

// PasswordPolicy evaluates candidate passwords against the security policy.
type PasswordPolicy interface {
	// ValidateComplexity checks minimum length and every enabled character
	// class requirement, returning all violations found.
	ValidateComplexity(candidate string, cfg models.SecurityPolicyConfig) ValidationResult

	// CheckHistory reports whether candidate matches any of the given
	// history entries. All entries are checked.
	CheckHistory(candidate string, history []models.PasswordHistoryEntry) (bool, error)

	// CheckExpiry reports whether a password set at lastChanged has aged
	// past expiry at now. A non-positive expiry never expires.
	CheckExpiry(lastChanged time.Time, expiry time.Duration, now time.Time) bool

	// IsAllowedChange composes the checks above into a single decision for a
	// password change on account.
	IsAllowedChange(candidate string, account models.Account, history []models.PasswordHistoryEntry, cfg models.SecurityPolicyConfig, now time.Time) (PolicyDecision, error)
}
