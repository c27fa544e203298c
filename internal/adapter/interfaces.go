// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the go-cred-guard HTTP API.
//
// [CredentialClient] decouples credctl from the wire protocol. Error values
// defined in errors.go are mapped from HTTP status codes by mapHTTPError so
// that callers can use [errors.Is] (e.g. [ErrAccountLocked] for 423,
// [ErrPolicyViolation] for 422).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-cred-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_client_mock.go -package=mock

// CredentialClient talks to a go-cred-guard server.
type CredentialClient interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" when none is set.
	Token() string

	// Login authenticates and stores the returned session token.
	Login(ctx context.Context, request models.LoginRequest) (models.LoginResponse, error)

	// ChangePassword replaces the password of the logged-in account.
	ChangePassword(ctx context.Context, request models.ChangePasswordRequest) error

	// RegisterAccount creates an account. Requires an admin session.
	RegisterAccount(ctx context.Context, request models.RegisterRequest) (models.Account, error)

	// ListLocked returns the accounts locked at request time.
	ListLocked(ctx context.Context) ([]models.LockedAccount, error)

	// Unlock clears the lockout of identifier.
	Unlock(ctx context.Context, identifier string) error

	// GetSecurityPolicy returns the policy in force.
	GetSecurityPolicy(ctx context.Context) (models.SecurityPolicyDocument, error)

	// PutSecurityPolicy replaces the stored policy.
	PutSecurityPolicy(ctx context.Context, policy models.SecurityPolicyDocument) (models.SecurityPolicyDocument, error)

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
