// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the coarse permission group an account belongs to. Role checks are
// enforced by the transport layer; the credential core only carries the value.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}

// Account identifies a principal together with its credential state.
//
// The persistence layer owns the record. The credential core reads it and
// proposes updates (counters, lockout window, new hash) which the caller
// persists through the account store.
type Account struct {
	// ID is the internal surrogate key.
	ID int64 `json:"-"`

	// Identifier is the unique login used at the authentication boundary.
	Identifier string `json:"identifier"`

	// Role is the permission group of the account.
	Role Role `json:"role"`

	// PasswordHash is the PBKDF2 output for the current password.
	PasswordHash []byte `json:"-"`

	// PasswordSalt is the random per-account salt mixed into PasswordHash.
	// A fresh value is generated on creation and on every password change.
	PasswordSalt []byte `json:"-"`

	// Iterations is the PBKDF2 cost PasswordHash was derived with. It is
	// stored beside the hash so older hashes stay verifiable after the
	// configured default changes.
	Iterations int `json:"-"`

	// PasswordChangedAt is the moment the current password was set.
	PasswordChangedAt time.Time `json:"password_changed_at"`

	// FailedAttempts counts consecutive failed logins since the last success.
	FailedAttempts int `json:"failed_attempts"`

	// LockoutUntil is the end of the active lockout window, nil when the
	// account has never been locked or the window was cleared.
	LockoutUntil *time.Time `json:"lockout_until,omitempty"`

	// Version is the optimistic concurrency token checked on save.
	Version int64 `json:"-"`

	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table associated with Account.
func (a Account) TableName() string {
	return "accounts"
}

// LockoutState is the derived lock status of an account at a point in time.
type LockoutState int

const (
	// Active accounts accept authentication attempts.
	Active LockoutState = iota
	// Locked accounts refuse authentication until LockoutUntil passes.
	Locked
)

// String implements fmt.Stringer.
func (s LockoutState) String() string {
	switch s {
	case Locked:
		return "locked"
	default:
		return "active"
	}
}

// LockedAccount is the admin-facing view of an account inside a lockout window.
type LockedAccount struct {
	Identifier     string    `json:"identifier"`
	FailedAttempts int       `json:"failed_attempts"`
	LockoutUntil   time.Time `json:"lockout_until"`
}
