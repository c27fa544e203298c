package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/models"
)

// policyRepository stores the security policy as a single row.
type policyRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewPolicyRepository constructs a [PolicyRepository] backed by db.
func NewPolicyRepository(db *DB, logger *logger.Logger) PolicyRepository {
	logger.Debug().Msg("creating security policy repository")
	return &policyRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// GetSecurityPolicy returns the stored policy or [ErrNoPolicyStored].
func (r *policyRepository) GetSecurityPolicy(ctx context.Context) (models.SecurityPolicyConfig, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.selectSecurityPolicy()
	if err != nil {
		return models.SecurityPolicyConfig{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		cfg                                  models.SecurityPolicyConfig
		lockoutSecs, expirySecs, sessionSecs int64
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&cfg.PBKDF2Iterations,
		&cfg.PasswordHistoryCount,
		&cfg.MaxLoginAttempts,
		&lockoutSecs,
		&cfg.PasswordMinLength,
		&cfg.RequireUppercase,
		&cfg.RequireLowercase,
		&cfg.RequireNumbers,
		&cfg.RequireSpecial,
		&expirySecs,
		&sessionSecs,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SecurityPolicyConfig{}, ErrNoPolicyStored
	}
	if err != nil {
		log.Err(err).Str("func", "*policyRepository.GetSecurityPolicy").Msg("error selecting security policy")
		return models.SecurityPolicyConfig{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	cfg.LockoutDuration = time.Duration(lockoutSecs) * time.Second
	cfg.PasswordExpiry = time.Duration(expirySecs) * time.Second
	cfg.SessionTimeout = time.Duration(sessionSecs) * time.Second

	return cfg, nil
}

// SaveSecurityPolicy inserts or replaces the stored policy.
func (r *policyRepository) SaveSecurityPolicy(ctx context.Context, cfg models.SecurityPolicyConfig) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.upsertSecurityPolicy(cfg, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*policyRepository.SaveSecurityPolicy").Msg("error saving security policy")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Info().Str("func", "*policyRepository.SaveSecurityPolicy").Msg("security policy updated")
	return nil
}
