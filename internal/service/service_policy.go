package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/store"
	"github.com/MKhiriev/go-cred-guard/models"
)

// policyService layers the stored security policy over the configured
// defaults. It implements [PolicyService] and therefore [PolicySource].
type policyService struct {
	repository store.PolicyRepository
	defaults   models.SecurityPolicyConfig
	logger     *logger.Logger
}

// NewPolicyService returns a [PolicyService] that serves defaults until an
// administrator stores a policy.
func NewPolicyService(repository store.PolicyRepository, defaults models.SecurityPolicyConfig, logger *logger.Logger) PolicyService {
	return &policyService{
		repository: repository,
		defaults:   defaults,
		logger:     logger,
	}
}

// LoadSecurityPolicyConfig returns the stored policy, or the defaults when
// none is stored.
func (s *policyService) LoadSecurityPolicyConfig(ctx context.Context) (models.SecurityPolicyConfig, error) {
	cfg, err := s.repository.GetSecurityPolicy(ctx)
	if errors.Is(err, store.ErrNoPolicyStored) {
		return s.defaults, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("error loading security policy")
		return models.SecurityPolicyConfig{}, fmt.Errorf("error loading security policy: %w", err)
	}

	return cfg, nil
}

// UpdateSecurityPolicy validates and stores cfg. Invalid values yield
// [ErrInvalidPolicy].
func (s *policyService) UpdateSecurityPolicy(ctx context.Context, cfg models.SecurityPolicyConfig) error {
	if err := validatePolicy(cfg); err != nil {
		return err
	}

	if err := s.repository.SaveSecurityPolicy(ctx, cfg); err != nil {
		return fmt.Errorf("error saving security policy: %w", err)
	}

	logger.FromContext(ctx).Info().
		Int("pbkdf2_iterations", cfg.PBKDF2Iterations).
		Int("max_login_attempts", cfg.MaxLoginAttempts).
		Int("password_history_count", cfg.PasswordHistoryCount).
		Msg("security policy replaced")
	return nil
}

func validatePolicy(cfg models.SecurityPolicyConfig) error {
	switch {
	case cfg.PBKDF2Iterations < 1:
		return fmt.Errorf("%w: pbkdf2 iterations must be positive", ErrInvalidPolicy)
	case cfg.PasswordHistoryCount < 0,
		cfg.MaxLoginAttempts < 0,
		cfg.PasswordMinLength < 0,
		cfg.LockoutDuration < 0,
		cfg.PasswordExpiry < 0,
		cfg.SessionTimeout < 0:
		return fmt.Errorf("%w: negative values are not allowed", ErrInvalidPolicy)
	case cfg.MaxLoginAttempts > 0 && cfg.LockoutDuration == 0:
		return fmt.Errorf("%w: lockout duration required when lockout is enabled", ErrInvalidPolicy)
	}

	return nil
}
