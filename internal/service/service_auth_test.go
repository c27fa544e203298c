package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-cred-guard/internal/config"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/mock"
	"github.com/MKhiriev/go-cred-guard/internal/store"
	"github.com/MKhiriev/go-cred-guard/internal/utils"
	"github.com/MKhiriev/go-cred-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testAppConfig = config.App{TokenSignKey: "test-sign-key", TokenIssuer: "go-cred-guard-test"}

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (AuthService, *mock.MockCredentialValidator, *mock.MockAccountRepository) {
	t.Helper()

	credentials := mock.NewMockCredentialValidator(ctrl)
	accounts := mock.NewMockAccountRepository(ctrl)

	return NewAuthService(credentials, accounts, testAppConfig, logger.Nop()), credentials, accounts
}

func TestAuthService_Login_IssuesSessionForPolicyTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, credentials, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	policy := models.DefaultSecurityPolicyConfig()
	policy.SessionTimeout = 15 * time.Minute
	account := models.Account{ID: 42, Identifier: "alice", Role: models.RoleAdmin}

	credentials.EXPECT().Login(ctx, "alice", "CorrectPass1!").Return(models.LoginResult{
		Account:         account,
		PasswordExpired: true,
		Policy:          policy,
	}, nil)

	before := time.Now()
	session, err := svc.Login(ctx, models.LoginRequest{Identifier: "alice", Password: "CorrectPass1!"})
	require.NoError(t, err)

	assert.True(t, session.PasswordExpired)
	assert.Equal(t, account, session.Account)
	assert.WithinDuration(t, before.Add(15*time.Minute), session.ExpiresAt, 2*time.Second)

	parsed, err := utils.ValidateAndParseJWTToken(session.Token.SignedString, testAppConfig.TokenSignKey, testAppConfig.TokenIssuer)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.AccountID)
	assert.Equal(t, models.RoleAdmin, parsed.Role)
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	for _, req := range []models.LoginRequest{{}, {Identifier: "a"}, {Password: "p"}} {
		_, err := svc.Login(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	}
}

func TestAuthService_Login_CredentialErrorsPassThrough(t *testing.T) {
	for _, wantErr := range []error{ErrInvalidCredentials, ErrAccountLocked, store.ErrConflict} {
		t.Run(wantErr.Error(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, credentials, _ := newTestAuthSvc(t, ctrl)
			credentials.EXPECT().Login(gomock.Any(), "bob", "pw").Return(models.LoginResult{}, wantErr)

			_, err := svc.Login(context.Background(), models.LoginRequest{Identifier: "bob", Password: "pw"})
			require.ErrorIs(t, err, wantErr)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, credentials, accounts := newTestAuthSvc(t, ctrl)
	account := models.Account{ID: 7, Identifier: "carol"}

	gomock.InOrder(
		accounts.EXPECT().GetByID(gomock.Any(), int64(7)).Return(account, nil),
		credentials.EXPECT().Reauthenticate(gomock.Any(), "carol", "OldPass1!").Return(account, nil),
		credentials.EXPECT().ChangePassword(gomock.Any(), "carol", "NewPass1!").Return(nil),
	)

	err := svc.ChangePassword(context.Background(), 7, models.ChangePasswordRequest{CurrentPassword: "OldPass1!", NewPassword: "NewPass1!"})
	require.NoError(t, err)
}

func TestAuthService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, credentials, accounts := newTestAuthSvc(t, ctrl)
	account := models.Account{ID: 7, Identifier: "carol"}

	accounts.EXPECT().GetByID(gomock.Any(), int64(7)).Return(account, nil)
	credentials.EXPECT().Reauthenticate(gomock.Any(), "carol", "guess").Return(models.Account{}, ErrInvalidCredentials)

	err := svc.ChangePassword(context.Background(), 7, models.ChangePasswordRequest{CurrentPassword: "guess", NewPassword: "NewPass1!"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ChangePassword_EmptyInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	err := svc.ChangePassword(context.Background(), 7, models.ChangePasswordRequest{CurrentPassword: "x"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_CreateToken_DefaultTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	before := time.Now()
	token, err := svc.CreateToken(context.Background(), models.Account{ID: 1}, 0)
	require.NoError(t, err)
	require.NotNil(t, token.ExpiresAt)
	assert.WithinDuration(t, before.Add(models.DefaultSessionTimeout), token.ExpiresAt.Time, 2*time.Second)
}

func TestAuthService_CreateToken_MissingSignKey(t *testing.T) {
	svc := NewAuthService(nil, nil, config.App{TokenIssuer: "iss"}, logger.Nop())

	_, err := svc.CreateToken(context.Background(), models.Account{ID: 1}, time.Minute)
	require.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.Account{ID: 3, Role: models.RoleOperator}, time.Minute)
	require.NoError(t, err)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(3), parsed.AccountID)

	_, err = svc.ParseToken(ctx, token.SignedString+"x")
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	other := NewAuthService(nil, nil, config.App{TokenSignKey: "other", TokenIssuer: testAppConfig.TokenIssuer}, logger.Nop())
	_, err = other.ParseToken(ctx, token.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
