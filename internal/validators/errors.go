package validators

import "errors"

// Password policy violations. A [PolicyError] wraps one or more of these.
var (
	ErrTooShort              = errors.New("password is too short")
	ErrMissingCharacterClass = errors.New("password is missing a required character class")
	ErrPasswordReused        = errors.New("password was used recently")
)
