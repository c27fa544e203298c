// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-cred-guard/internal/crypto"
	"github.com/MKhiriev/go-cred-guard/models"
)

// passwordPolicyEngine is the private implementation of [PasswordPolicy].
type passwordPolicyEngine struct {
	// hasher re-derives history entries when checking for reuse.
	hasher crypto.PasswordHasher
}

// NewPasswordPolicyEngine constructs a [PasswordPolicy] that compares
// candidates with retained hashes through hasher.
func NewPasswordPolicyEngine(hasher crypto.PasswordHasher) PasswordPolicy {
	return &passwordPolicyEngine{hasher: hasher}
}

// ValidateComplexity implements [PasswordPolicy]. Length is counted in
// runes, so multi-byte characters count once.
func (p *passwordPolicyEngine) ValidateComplexity(candidate string, cfg models.SecurityPolicyConfig) ValidationResult {
	var result ValidationResult

	if utf8.RuneCountInString(candidate) < cfg.PasswordMinLength {
		result.Violations = append(result.Violations, Violation{Rule: RuleTooShort, MinLength: cfg.PasswordMinLength})
	}

	present := characterClasses(candidate)
	required := []struct {
		enabled bool
		class   CharacterClass
	}{
		{cfg.RequireUppercase, Uppercase},
		{cfg.RequireLowercase, Lowercase},
		{cfg.RequireNumbers, Digit},
		{cfg.RequireSpecial, Special},
	}
	for _, r := range required {
		if r.enabled && !present[r.class] {
			result.Violations = append(result.Violations, Violation{Rule: RuleMissingCharacterClass, Class: r.class})
		}
	}

	return result
}

// CheckHistory implements [PasswordPolicy]. Every entry is re-derived even
// after a match is found.
func (p *passwordPolicyEngine) CheckHistory(candidate string, history []models.PasswordHistoryEntry) (bool, error) {
	reused := false
	for _, entry := range history {
		ok, err := p.hasher.Verify(candidate, entry.Salt, entry.Hash, entry.Iterations)
		if err != nil {
			return false, fmt.Errorf("error checking password history: %w", err)
		}
		reused = reused || ok
	}
	return reused, nil
}

// CheckExpiry implements [PasswordPolicy].
func (p *passwordPolicyEngine) CheckExpiry(lastChanged time.Time, expiry time.Duration, now time.Time) bool {
	if expiry <= 0 {
		return false
	}
	return now.Sub(lastChanged) >= expiry
}

// IsAllowedChange implements [PasswordPolicy].
//
// The account's current password counts as the newest history slot, and
// only the first cfg.PasswordHistoryCount entries of history are considered.
// A history count of zero turns reuse prevention off.
func (p *passwordPolicyEngine) IsAllowedChange(candidate string, account models.Account, history []models.PasswordHistoryEntry, cfg models.SecurityPolicyConfig, now time.Time) (PolicyDecision, error) {
	decision := PolicyDecision{Violations: p.ValidateComplexity(candidate, cfg).Violations}

	if cfg.PasswordHistoryCount <= 0 {
		return decision, nil
	}

	if len(history) > cfg.PasswordHistoryCount {
		history = history[:cfg.PasswordHistoryCount]
	}

	retained := make([]models.PasswordHistoryEntry, 0, len(history)+1)
	if len(account.PasswordHash) > 0 {
		retained = append(retained, models.PasswordHistoryEntry{
			AccountID:  account.ID,
			Hash:       account.PasswordHash,
			Salt:       account.PasswordSalt,
			Iterations: account.Iterations,
			CreatedAt:  account.PasswordChangedAt,
		})
	}
	retained = append(retained, history...)

	reused, err := p.CheckHistory(candidate, retained)
	if err != nil {
		return PolicyDecision{}, err
	}
	if reused {
		decision.Violations = append(decision.Violations, Violation{Rule: RulePasswordReused})
	}

	return decision, nil
}

// characterClasses reports which classes occur in s.
func characterClasses(s string) map[CharacterClass]bool {
	present := make(map[CharacterClass]bool, 4)
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			present[Uppercase] = true
		case unicode.IsLower(r):
			present[Lowercase] = true
		case unicode.IsDigit(r):
			present[Digit] = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			present[Special] = true
		}
	}
	return present
}
