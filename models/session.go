package models

import "time"

// LoginResult is the outcome of a successful credential check.
type LoginResult struct {
	// Account is the authenticated account as persisted after the attempt.
	Account Account

	// PasswordExpired is set when the password has aged past the expiry
	// window. The login still succeeds; callers should force a change.
	PasswordExpired bool

	// Policy is the security policy snapshot the attempt was evaluated with.
	Policy SecurityPolicyConfig
}

// Session is an issued session token together with the login outcome.
type Session struct {
	Token           Token
	ExpiresAt       time.Time
	PasswordExpired bool
	Account         Account
}
