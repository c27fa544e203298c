package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cred-guard/internal/config"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/utils"
	"github.com/MKhiriev/go-cred-guard/models"
)

// accountByID is the lookup the session layer needs to resolve the owner of
// a token.
type accountByID interface {
	GetByID(ctx context.Context, id int64) (models.Account, error)
}

// authService is the concrete implementation of AuthService.
// It turns successful credential checks into signed session tokens and
// routes password changes through the credential core.
type authService struct {
	// credentials performs the actual password checks.
	credentials CredentialValidator

	// accounts resolves the account behind a session.
	accounts accountByID

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(credentials CredentialValidator, accounts accountByID, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		credentials:  credentials,
		accounts:     accounts,
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
		logger:       logger,
	}
}

// Login authenticates the request and issues a session token whose lifetime
// is the policy's session timeout.
//
// Returns ErrInvalidDataProvided for empty fields; credential errors
// (ErrInvalidCredentials, ErrAccountLocked) pass through unchanged.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.Session, error) {
	log := logger.FromContext(ctx)

	if request.Identifier == "" || request.Password == "" {
		log.Error().Str("identifier", request.Identifier).Msg("invalid login data provided")
		return models.Session{}, ErrInvalidDataProvided
	}

	result, err := a.credentials.Login(ctx, request.Identifier, request.Password)
	if err != nil {
		return models.Session{}, err
	}

	token, err := a.CreateToken(ctx, result.Account, result.Policy.SessionTimeout)
	if err != nil {
		log.Err(err).Str("identifier", request.Identifier).Msg("error creating session token")
		return models.Session{}, err
	}

	session := models.Session{
		Token:           token,
		PasswordExpired: result.PasswordExpired,
		Account:         result.Account,
	}
	if token.ExpiresAt != nil {
		session.ExpiresAt = token.ExpiresAt.Time
	}

	return session, nil
}

// ChangePassword confirms the current password of the session owner and then
// replaces it. The confirmation does not count as a login attempt.
func (a *authService) ChangePassword(ctx context.Context, accountID int64, request models.ChangePasswordRequest) error {
	if request.CurrentPassword == "" || request.NewPassword == "" {
		return ErrInvalidDataProvided
	}

	account, err := a.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	if _, err = a.credentials.Reauthenticate(ctx, account.Identifier, request.CurrentPassword); err != nil {
		return err
	}

	return a.credentials.ChangePassword(ctx, account.Identifier, request.NewPassword)
}

// CreateToken issues a signed JWT for account valid for ttl. A non-positive
// ttl falls back to the default session timeout.
func (a *authService) CreateToken(ctx context.Context, account models.Account, ttl time.Duration) (models.Token, error) {
	if ttl <= 0 {
		ttl = models.DefaultSessionTimeout
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, account.ID, account.Role, ttl, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
