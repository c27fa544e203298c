package service

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown identifier and for a
	// wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountLocked is returned while the account is inside a lockout
	// window. The password is not checked.
	ErrAccountLocked = errors.New("account is locked")

	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidPolicy       = errors.New("invalid security policy")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
