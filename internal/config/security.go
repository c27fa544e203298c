package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-cred-guard/models"
)

// SecurityPolicy converts the configured security options into a
// [models.SecurityPolicyConfig], taking defaults for every unset option.
func (s Security) SecurityPolicy() models.SecurityPolicyConfig {
	cfg := models.DefaultSecurityPolicyConfig()

	if s.PBKDF2Iterations != nil {
		cfg.PBKDF2Iterations = *s.PBKDF2Iterations
	}
	if s.PasswordHistoryCount != nil {
		cfg.PasswordHistoryCount = *s.PasswordHistoryCount
	}
	if s.MaxLoginAttempts != nil {
		cfg.MaxLoginAttempts = *s.MaxLoginAttempts
	}
	if s.LockoutDurationMinutes != nil {
		cfg.LockoutDuration = time.Duration(*s.LockoutDurationMinutes) * time.Minute
	}
	if s.PasswordMinLength != nil {
		cfg.PasswordMinLength = *s.PasswordMinLength
	}
	if s.RequireUppercase != nil {
		cfg.RequireUppercase = *s.RequireUppercase
	}
	if s.RequireLowercase != nil {
		cfg.RequireLowercase = *s.RequireLowercase
	}
	if s.RequireNumbers != nil {
		cfg.RequireNumbers = *s.RequireNumbers
	}
	if s.RequireSpecial != nil {
		cfg.RequireSpecial = *s.RequireSpecial
	}
	if s.PasswordExpiryDays != nil {
		cfg.PasswordExpiry = time.Duration(*s.PasswordExpiryDays) * 24 * time.Hour
	}
	if s.SessionTimeoutMinutes != nil {
		cfg.SessionTimeout = time.Duration(*s.SessionTimeoutMinutes) * time.Minute
	}

	return cfg
}

// BootstrapAdmin reports the configured first admin credentials, if any.
func (s Security) BootstrapAdmin() (identifier, password string, ok bool) {
	if s.BootstrapAdminIdentifier == "" {
		return "", "", false
	}
	return s.BootstrapAdminIdentifier, s.BootstrapAdminPassword, true
}

// validate rejects negative counts and a non-positive iteration count. It
// also rejects an enabled lockout without a window and a half-configured
// bootstrap admin.
func (s Security) validate() error {
	if s.PBKDF2Iterations != nil && *s.PBKDF2Iterations < 1 {
		return ErrInvalidSecurityConfigs
	}

	for _, v := range []*int{
		s.PasswordHistoryCount,
		s.MaxLoginAttempts,
		s.LockoutDurationMinutes,
		s.PasswordMinLength,
		s.PasswordExpiryDays,
		s.SessionTimeoutMinutes,
	} {
		if v != nil && *v < 0 {
			return ErrInvalidSecurityConfigs
		}
	}

	if policy := s.SecurityPolicy(); policy.MaxLoginAttempts > 0 && policy.LockoutDuration == 0 {
		return fmt.Errorf("%w: lockout duration required when lockout is enabled", ErrInvalidSecurityConfigs)
	}

	if (s.BootstrapAdminIdentifier == "") != (s.BootstrapAdminPassword == "") {
		return fmt.Errorf("%w: bootstrap admin needs both identifier and password", ErrInvalidSecurityConfigs)
	}

	return nil
}
