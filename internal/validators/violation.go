package validators

import (
	"fmt"
	"strings"
)

// CharacterClass is a family of characters a password may be required to
// contain.
type CharacterClass int

const (
	Uppercase CharacterClass = iota + 1
	Lowercase
	Digit
	Special
)

// String implements fmt.Stringer.
func (c CharacterClass) String() string {
	switch c {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	case Digit:
		return "digit"
	case Special:
		return "special"
	default:
		return "unknown"
	}
}

// Rule names the policy rule a [Violation] broke.
type Rule int

const (
	RuleTooShort Rule = iota + 1
	RuleMissingCharacterClass
	RulePasswordReused
)

// Violation is a single broken password rule.
type Violation struct {
	Rule Rule

	// Class is set for RuleMissingCharacterClass.
	Class CharacterClass

	// MinLength is set for RuleTooShort.
	MinLength int
}

// Error implements error with a message suitable for end users.
func (v Violation) Error() string {
	switch v.Rule {
	case RuleTooShort:
		return fmt.Sprintf("password must be at least %d characters long", v.MinLength)
	case RuleMissingCharacterClass:
		return fmt.Sprintf("password must include at least one %s character", v.Class)
	case RulePasswordReused:
		return "password matches one of the recently used passwords"
	default:
		return "password rejected"
	}
}

// Unwrap returns the sentinel matching the violated rule.
func (v Violation) Unwrap() error {
	switch v.Rule {
	case RuleTooShort:
		return ErrTooShort
	case RuleMissingCharacterClass:
		return ErrMissingCharacterClass
	case RulePasswordReused:
		return ErrPasswordReused
	default:
		return nil
	}
}

// ValidationResult is the outcome of a complexity check.
type ValidationResult struct {
	Violations []Violation
}

// OK reports whether no rule was violated.
func (r ValidationResult) OK() bool {
	return len(r.Violations) == 0
}

// Err returns nil when no rule was violated and a *PolicyError otherwise.
func (r ValidationResult) Err() error {
	return PolicyDecision{Violations: r.Violations}.Err()
}

// PolicyDecision is the outcome of [PasswordPolicy.IsAllowedChange].
// A decision without violations means Accepted.
type PolicyDecision struct {
	Violations []Violation
}

// Accepted reports whether the change may proceed.
func (d PolicyDecision) Accepted() bool {
	return len(d.Violations) == 0
}

// Err returns nil for an accepted decision and a *PolicyError otherwise.
func (d PolicyDecision) Err() error {
	if d.Accepted() {
		return nil
	}
	return &PolicyError{Violations: d.Violations}
}

// PolicyError reports a rejected password together with every rule it broke.
type PolicyError struct {
	Violations []Violation
}

// Error implements error.
func (e *PolicyError) Error() string {
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Error())
	}
	return "password rejected: " + strings.Join(messages, "; ")
}

// Unwrap exposes every violation to errors.Is and errors.As.
func (e *PolicyError) Unwrap() []error {
	errs := make([]error, 0, len(e.Violations))
	for _, v := range e.Violations {
		errs = append(errs, v)
	}
	return errs
}

// Messages returns the user-facing message of each violation.
func (e *PolicyError) Messages() []string {
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Error())
	}
	return messages
}
