package adapter

import (
	"errors"
	"strings"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrPolicyViolation     = errors.New("password rejected by policy")
	ErrAccountLocked       = errors.New("account is locked")
	ErrInternalServerError = errors.New("internal server error")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrEmptyBaseURL        = errors.New("empty base url")
)

// PolicyViolationError carries the rules a rejected password failed, as
// reported by the server.
type PolicyViolationError struct {
	Violations []string
}

func (e *PolicyViolationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrPolicyViolation.Error()
	}
	return ErrPolicyViolation.Error() + ": " + strings.Join(e.Violations, "; ")
}

func (e *PolicyViolationError) Is(target error) bool {
	return target == ErrPolicyViolation
}
