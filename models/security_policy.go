// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Default security policy values, used when neither the database nor the
// process configuration provide one.
const (
	DefaultPBKDF2Iterations     = 600_000
	DefaultPasswordHistoryCount = 5
	DefaultMaxLoginAttempts     = 5
	DefaultLockoutDuration      = 30 * time.Minute
	DefaultPasswordMinLength    = 12
	DefaultPasswordExpiry       = 90 * 24 * time.Hour
	DefaultSessionTimeout       = 30 * time.Minute
)

// SecurityPolicyConfig is an immutable snapshot of the security policy.
// It is loaded once per operation and passed by value into the credential
// core, which never mutates it.
type SecurityPolicyConfig struct {
	// PBKDF2Iterations is the hash cost used for newly derived hashes.
	PBKDF2Iterations int `json:"pbkdf2_iterations"`

	// PasswordHistoryCount is the number of retired passwords retained and
	// checked for reuse.
	PasswordHistoryCount int `json:"password_history_count"`

	// MaxLoginAttempts is the lockout threshold. Zero disables locking.
	MaxLoginAttempts int `json:"max_login_attempts"`

	// LockoutDuration is the length of the lockout window.
	LockoutDuration time.Duration `json:"lockout_duration"`

	// PasswordMinLength is the minimum number of characters.
	PasswordMinLength int `json:"password_min_length"`

	RequireUppercase bool `json:"password_require_uppercase"`
	RequireLowercase bool `json:"password_require_lowercase"`
	RequireNumbers   bool `json:"password_require_numbers"`
	RequireSpecial   bool `json:"password_require_special"`

	// PasswordExpiry is the aging window. Zero disables expiry.
	PasswordExpiry time.Duration `json:"password_expiry"`

	// SessionTimeout bounds the lifetime of issued sessions. It is consumed
	// by the session collaborator, not by the credential core.
	SessionTimeout time.Duration `json:"session_timeout"`
}

// DefaultSecurityPolicyConfig returns the built-in policy with every
// character class required.
func DefaultSecurityPolicyConfig() SecurityPolicyConfig {
	return SecurityPolicyConfig{
		PBKDF2Iterations:     DefaultPBKDF2Iterations,
		PasswordHistoryCount: DefaultPasswordHistoryCount,
		MaxLoginAttempts:     DefaultMaxLoginAttempts,
		LockoutDuration:      DefaultLockoutDuration,
		PasswordMinLength:    DefaultPasswordMinLength,
		RequireUppercase:     true,
		RequireLowercase:     true,
		RequireNumbers:       true,
		RequireSpecial:       true,
		PasswordExpiry:       DefaultPasswordExpiry,
		SessionTimeout:       DefaultSessionTimeout,
	}
}
