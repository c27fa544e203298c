package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-cred-guard/internal/crypto"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/mock"
	"github.com/MKhiriev/go-cred-guard/internal/store"
	"github.com/MKhiriev/go-cred-guard/internal/validators"
	"github.com/MKhiriev/go-cred-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// memStore is an in-memory AccountStore and HistoryStore with the same
// optimistic version check as the SQL repositories. ReplacePassword is all
// or nothing; failReplace makes it fail after the version check.
type memStore struct {
	mu          sync.Mutex
	accounts    map[string]models.Account
	history     map[int64][]models.PasswordHistoryEntry
	saves       int
	failReplace error
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]models.Account),
		history:  make(map[int64][]models.PasswordHistoryEntry),
	}
}

func (s *memStore) GetByIdentifier(_ context.Context, identifier string) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[identifier]
	if !ok {
		return models.Account{}, store.ErrAccountNotFound
	}
	return account, nil
}

func (s *memStore) Save(_ context.Context, account models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[account.Identifier]
	if !ok || stored.Version != account.Version {
		return models.Account{}, store.ErrConflict
	}
	account.Version++
	s.accounts[account.Identifier] = account
	s.saves++
	return account, nil
}

func (s *memStore) ListForAccount(_ context.Context, accountID int64) ([]models.PasswordHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.PasswordHistoryEntry(nil), s.history[accountID]...), nil
}

func (s *memStore) ReplacePassword(_ context.Context, account models.Account, retired models.PasswordHistoryEntry, historyLimit int) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[account.Identifier]
	if !ok || stored.Version != account.Version {
		return models.Account{}, store.ErrConflict
	}
	if s.failReplace != nil {
		return models.Account{}, s.failReplace
	}

	account.Version++
	s.accounts[account.Identifier] = account
	s.saves++

	history := append([]models.PasswordHistoryEntry{retired}, s.history[account.ID]...)
	if len(history) > historyLimit {
		history = history[:historyLimit]
	}
	s.history[account.ID] = history
	return account, nil
}

func (s *memStore) get(t *testing.T, identifier string) models.Account {
	t.Helper()
	account, err := s.GetByIdentifier(context.Background(), identifier)
	require.NoError(t, err)
	return account
}

type staticPolicy struct {
	cfg models.SecurityPolicyConfig
	err error
}

func (p staticPolicy) LoadSecurityPolicyConfig(context.Context) (models.SecurityPolicyConfig, error) {
	return p.cfg, p.err
}

// testClock is a settable clock for the verifier.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testPolicy(iterations int) models.SecurityPolicyConfig {
	cfg := models.DefaultSecurityPolicyConfig()
	cfg.PBKDF2Iterations = iterations
	cfg.PasswordMinLength = 8
	return cfg
}

// seedAccount stores an account whose password is plaintext, hashed at
// iterations.
func seedAccount(t *testing.T, s *memStore, identifier, plaintext string, iterations int, changedAt time.Time) models.Account {
	t.Helper()

	hasher := crypto.NewPasswordHasher()
	salt, err := hasher.NewSalt(crypto.MinSaltLength)
	require.NoError(t, err)
	hash, err := hasher.Derive(plaintext, salt, iterations)
	require.NoError(t, err)

	account := models.Account{
		ID:                int64(len(s.accounts) + 1),
		Identifier:        identifier,
		Role:              models.RoleOperator,
		PasswordHash:      hash,
		PasswordSalt:      salt,
		Iterations:        iterations,
		PasswordChangedAt: changedAt,
		Version:           1,
	}
	s.accounts[identifier] = account
	return account
}

func newTestVerifier(s *memStore, cfg models.SecurityPolicyConfig, clock *testClock) *CredentialVerifier {
	return NewCredentialVerifier(s, s, staticPolicy{cfg: cfg}, crypto.NewPasswordHasher(), logger.Nop(), WithClock(clock.Now))
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestCredentialVerifier_Login_CorrectThenWrongPassword(t *testing.T) {
	clock := &testClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	s := newMemStore()
	seedAccount(t, s, "alice", "CorrectPass1!", 100000, clock.now)
	v := newTestVerifier(s, testPolicy(100000), clock)
	ctx := context.Background()

	result, err := v.Login(ctx, "alice", "CorrectPass1!")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Account.Identifier)
	assert.Equal(t, 0, result.Account.FailedAttempts)
	assert.False(t, result.PasswordExpired)

	_, err = v.Login(ctx, "alice", "WrongPass1!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, s.get(t, "alice").FailedAttempts)
}

func TestCredentialVerifier_Login_LockoutAndLazyExpiry(t *testing.T) {
	clock := &testClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	s := newMemStore()
	seedAccount(t, s, "bob", "CorrectPass1!", 1000, clock.now)
	cfg := testPolicy(1000)
	cfg.MaxLoginAttempts = 5
	cfg.LockoutDuration = 30 * time.Minute
	v := newTestVerifier(s, cfg, clock)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := v.Login(ctx, "bob", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	locked := s.get(t, "bob")
	require.NotNil(t, locked.LockoutUntil)
	assert.Equal(t, 5, locked.FailedAttempts)
	assert.Equal(t, clock.now.Add(30*time.Minute), *locked.LockoutUntil)

	// the correct password is refused while the window is open
	_, err := v.Login(ctx, "bob", "CorrectPass1!")
	require.ErrorIs(t, err, ErrAccountLocked)
	assert.Equal(t, 5, s.get(t, "bob").FailedAttempts)

	clock.Advance(30 * time.Minute)

	result, err := v.Login(ctx, "bob", "CorrectPass1!")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Account.FailedAttempts)
	assert.Nil(t, result.Account.LockoutUntil)
}

func TestCredentialVerifier_Login_ElapsedLockoutCountsFreshFailure(t *testing.T) {
	clock := &testClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	s := newMemStore()
	account := seedAccount(t, s, "carol", "CorrectPass1!", 1000, clock.now)
	until := clock.now.Add(-time.Second)
	account.FailedAttempts = 5
	account.LockoutUntil = &until
	s.accounts["carol"] = account

	v := newTestVerifier(s, testPolicy(1000), clock)

	_, err := v.Login(context.Background(), "carol", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	stored := s.get(t, "carol")
	assert.Equal(t, 1, stored.FailedAttempts)
	assert.Nil(t, stored.LockoutUntil)
}

func TestCredentialVerifier_Login_UnknownIdentifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mock.NewMockAccountStore(ctrl)
	history := mock.NewMockHistoryStore(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	cfg := testPolicy(4242)

	gomock.InOrder(
		accounts.EXPECT().GetByIdentifier(gomock.Any(), "ghost").Return(models.Account{}, store.ErrAccountNotFound),
		hasher.EXPECT().Derive("secret", dummySalt, 4242).Return(make([]byte, crypto.KeyLength), nil),
	)

	v := NewCredentialVerifier(accounts, history, staticPolicy{cfg: cfg}, hasher, logger.Nop())

	_, err := v.Login(context.Background(), "ghost", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, store.ErrAccountNotFound)
}

func TestCredentialVerifier_Login_WrongPasswordOnCheapHashPaysFullCost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	account := models.Account{ID: 1, Identifier: "legacy", PasswordHash: []byte("h"), PasswordSalt: []byte("s"), Iterations: 1000, Version: 1}

	accounts := mock.NewMockAccountStore(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	gomock.InOrder(
		accounts.EXPECT().GetByIdentifier(gomock.Any(), "legacy").Return(account, nil),
		hasher.EXPECT().Verify("wrong", account.PasswordSalt, account.PasswordHash, 1000).Return(false, nil),
		hasher.EXPECT().Derive("wrong", dummySalt, 3242).Return(make([]byte, crypto.KeyLength), nil),
		accounts.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, a models.Account) (models.Account, error) {
				a.Version++
				return a, nil
			},
		),
	)

	v := NewCredentialVerifier(accounts, mock.NewMockHistoryStore(ctrl), staticPolicy{cfg: testPolicy(4242)}, hasher, logger.Nop())

	_, err := v.Login(context.Background(), "legacy", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCredentialVerifier_Login_UnknownIdentifierMatchesHighestStoredCost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	costly := models.Account{ID: 2, Identifier: "costly", PasswordHash: []byte("h"), PasswordSalt: []byte("s"), Iterations: 9000, Version: 1}

	accounts := mock.NewMockAccountStore(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	gomock.InOrder(
		accounts.EXPECT().GetByIdentifier(gomock.Any(), "costly").Return(costly, nil),
		hasher.EXPECT().Verify("pw", costly.PasswordSalt, costly.PasswordHash, 9000).Return(false, nil),
		accounts.EXPECT().Save(gomock.Any(), gomock.Any()).Return(costly, nil),
		accounts.EXPECT().GetByIdentifier(gomock.Any(), "ghost").Return(models.Account{}, store.ErrAccountNotFound),
		hasher.EXPECT().Derive("pw", dummySalt, 9000).Return(make([]byte, crypto.KeyLength), nil),
	)

	v := NewCredentialVerifier(accounts, mock.NewMockHistoryStore(ctrl), staticPolicy{cfg: testPolicy(4242)}, hasher, logger.Nop())

	_, err := v.Login(context.Background(), "costly", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = v.Login(context.Background(), "ghost", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCredentialVerifier_Login_SameErrorForUnknownAndWrong(t *testing.T) {
	clock := &testClock{now: time.Now()}
	s := newMemStore()
	seedAccount(t, s, "dave", "CorrectPass1!", 1000, clock.now)
	v := newTestVerifier(s, testPolicy(1000), clock)

	_, errUnknown := v.Login(context.Background(), "nobody", "CorrectPass1!")
	_, errWrong := v.Login(context.Background(), "dave", "WrongPass1!")

	require.Error(t, errUnknown)
	require.Error(t, errWrong)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestCredentialVerifier_Login_LockedSkipsHashCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(time.Minute)
	account := models.Account{ID: 1, Identifier: "erin", Iterations: 1000, FailedAttempts: 5, LockoutUntil: &until, Version: 3}

	accounts := mock.NewMockAccountStore(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	accounts.EXPECT().GetByIdentifier(gomock.Any(), "erin").Return(account, nil)
	// no Verify and no Save expected

	v := NewCredentialVerifier(accounts, mock.NewMockHistoryStore(ctrl), staticPolicy{cfg: testPolicy(1000)}, hasher, logger.Nop(),
		WithClock(func() time.Time { return now }))

	_, err := v.Login(context.Background(), "erin", "whatever")
	require.ErrorIs(t, err, ErrAccountLocked)
}

func TestCredentialVerifier_Login_ConflictPassesThrough(t *testing.T) {
	tests := []struct {
		name     string
		verified bool
	}{
		{"failed attempt", false},
		{"successful attempt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			account := models.Account{ID: 1, Identifier: "frank", PasswordHash: []byte("h"), PasswordSalt: []byte("s"), Iterations: 1000, Version: 7}

			accounts := mock.NewMockAccountStore(ctrl)
			hasher := mock.NewMockPasswordHasher(ctrl)
			accounts.EXPECT().GetByIdentifier(gomock.Any(), "frank").Return(account, nil)
			hasher.EXPECT().Verify("pw", account.PasswordSalt, account.PasswordHash, 1000).Return(tt.verified, nil)
			accounts.EXPECT().Save(gomock.Any(), gomock.Any()).Return(models.Account{}, store.ErrConflict)

			v := NewCredentialVerifier(accounts, mock.NewMockHistoryStore(ctrl), staticPolicy{cfg: testPolicy(1000)}, hasher, logger.Nop())

			_, err := v.Login(context.Background(), "frank", "pw")
			require.ErrorIs(t, err, store.ErrConflict)
		})
	}
}

func TestCredentialVerifier_Login_MalformedCredential(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	account := models.Account{ID: 1, Identifier: "gina", Iterations: 0}
	accounts := mock.NewMockAccountStore(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)
	accounts.EXPECT().GetByIdentifier(gomock.Any(), "gina").Return(account, nil)
	hasher.EXPECT().Verify("pw", gomock.Any(), gomock.Any(), 0).Return(false, crypto.ErrInvalidParameter)

	v := NewCredentialVerifier(accounts, mock.NewMockHistoryStore(ctrl), staticPolicy{cfg: testPolicy(1000)}, hasher, logger.Nop())

	_, err := v.Login(context.Background(), "gina", "pw")
	require.ErrorIs(t, err, crypto.ErrInvalidParameter)
}

func TestCredentialVerifier_Login_PolicyErrorPassesThrough(t *testing.T) {
	boom := errors.New("policy unavailable")
	v := NewCredentialVerifier(newMemStore(), newMemStore(), staticPolicy{err: boom}, crypto.NewPasswordHasher(), logger.Nop())

	_, err := v.Login(context.Background(), "any", "pw")
	require.ErrorIs(t, err, boom)
}

func TestCredentialVerifier_Login_UpgradesWeakHash(t *testing.T) {
	clock := &testClock{now: time.Now()}
	s := newMemStore()
	old := seedAccount(t, s, "hank", "CorrectPass1!", 1000, clock.now)
	v := newTestVerifier(s, testPolicy(2000), clock)

	result, err := v.Login(context.Background(), "hank", "CorrectPass1!")
	require.NoError(t, err)
	assert.Equal(t, 2000, result.Account.Iterations)
	assert.NotEqual(t, old.PasswordSalt, result.Account.PasswordSalt)

	ok, err := crypto.NewPasswordHasher().Verify("CorrectPass1!", result.Account.PasswordSalt, result.Account.PasswordHash, 2000)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = v.Login(context.Background(), "hank", "CorrectPass1!")
	require.NoError(t, err)
}

func TestCredentialVerifier_Login_ReportsExpiredPassword(t *testing.T) {
	clock := &testClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	s := newMemStore()
	seedAccount(t, s, "ivy", "CorrectPass1!", 1000, clock.now.Add(-91*24*time.Hour))
	cfg := testPolicy(1000)
	cfg.PasswordExpiry = 90 * 24 * time.Hour
	v := newTestVerifier(s, cfg, clock)

	result, err := v.Login(context.Background(), "ivy", "CorrectPass1!")
	require.NoError(t, err)
	assert.True(t, result.PasswordExpired)
	assert.Equal(t, cfg, result.Policy)
}

func TestCredentialVerifier_Login_LockoutDisabled(t *testing.T) {
	clock := &testClock{now: time.Now()}
	s := newMemStore()
	seedAccount(t, s, "jack", "CorrectPass1!", 1000, clock.now)
	cfg := testPolicy(1000)
	cfg.MaxLoginAttempts = 0
	v := newTestVerifier(s, cfg, clock)

	for i := 0; i < 8; i++ {
		_, err := v.Login(context.Background(), "jack", "nope")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	stored := s.get(t, "jack")
	assert.Equal(t, 8, stored.FailedAttempts)
	assert.Nil(t, stored.LockoutUntil)

	_, err := v.Login(context.Background(), "jack", "CorrectPass1!")
	require.NoError(t, err)
}

// ── Reauthenticate ───────────────────────────────────────────────────────────

func TestCredentialVerifier_Reauthenticate_DoesNotCount(t *testing.T) {
	clock := &testClock{now: time.Now()}
	s := newMemStore()
	seedAccount(t, s, "kate", "CorrectPass1!", 1000, clock.now)
	v := newTestVerifier(s, testPolicy(1000), clock)

	_, err := v.Reauthenticate(context.Background(), "kate", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 0, s.get(t, "kate").FailedAttempts)
	assert.Zero(t, s.saves)

	account, err := v.Reauthenticate(context.Background(), "kate", "CorrectPass1!")
	require.NoError(t, err)
	assert.Equal(t, "kate", account.Identifier)
}

func TestCredentialVerifier_Reauthenticate_Locked(t *testing.T) {
	clock := &testClock{now: time.Now()}
	s := newMemStore()
	account := seedAccount(t, s, "liam", "CorrectPass1!", 1000, clock.now)
	until := clock.now.Add(time.Hour)
	account.LockoutUntil = &until
	s.accounts["liam"] = account
	v := newTestVerifier(s, testPolicy(1000), clock)

	_, err := v.Reauthenticate(context.Background(), "liam", "CorrectPass1!")
	require.ErrorIs(t, err, ErrAccountLocked)
}

// ── ChangePassword ───────────────────────────────────────────────────────────

func TestCredentialVerifier_ChangePassword_Accepted(t *testing.T) {
	clock := &testClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	s := newMemStore()
	old := seedAccount(t, s, "mia", "CorrectPass1!", 1000, clock.now.Add(-time.Hour))
	v := newTestVerifier(s, testPolicy(1500), clock)
	ctx := context.Background()

	require.NoError(t, v.ChangePassword(ctx, "mia", "BrandNewPass2@"))

	updated := s.get(t, "mia")
	assert.Equal(t, 1500, updated.Iterations)
	assert.Equal(t, clock.now, updated.PasswordChangedAt)
	assert.NotEqual(t, old.PasswordSalt, updated.PasswordSalt)
	assert.Equal(t, old.Version+1, updated.Version)

	history := s.history[old.ID]
	require.Len(t, history, 1)
	assert.Equal(t, old.PasswordHash, history[0].Hash)
	assert.Equal(t, old.PasswordSalt, history[0].Salt)
	assert.Equal(t, 1000, history[0].Iterations)

	_, err := v.Login(ctx, "mia", "CorrectPass1!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = v.Login(ctx, "mia", "BrandNewPass2@")
	assert.NoError(t, err)
}

func TestCredentialVerifier_ChangePassword_RejectsEveryViolation(t *testing.T) {
	clock := &testClock{now: time.Now()}
	s := newMemStore()
	old := seedAccount(t, s, "noah", "CorrectPass1!", 1000, clock.now)
	v := newTestVerifier(s, testPolicy(1000), clock)

	err := v.ChangePassword(context.Background(), "noah", "short")
	require.Error(t, err)
	assert.ErrorIs(t, err, validators.ErrTooShort)
	assert.ErrorIs(t, err, validators.ErrMissingCharacterClass)

	var policyErr *validators.PolicyError
	require.ErrorAs(t, err, &policyErr)
	assert.Len(t, policyErr.Violations, 4) // too short, upper, digit, special

	assert.Equal(t, old.Version, s.get(t, "noah").Version)
	assert.Empty(t, s.history[old.ID])
}

func TestCredentialVerifier_ChangePassword_RejectsCurrentPassword(t *testing.T) {
	clock := &testClock{now: time.Now()}
	s := newMemStore()
	seedAccount(t, s, "olga", "CorrectPass1!", 1000, clock.now)
	v := newTestVerifier(s, testPolicy(1000), clock)

	err := v.ChangePassword(context.Background(), "olga", "CorrectPass1!")
	require.ErrorIs(t, err, validators.ErrPasswordReused)
}

func TestCredentialVerifier_ChangePassword_HistoryWindow(t *testing.T) {
	clock := &testClock{now: time.Now()}
	s := newMemStore()
	account := seedAccount(t, s, "paul", "Password0!aa", 1000, clock.now)
	cfg := testPolicy(1000)
	cfg.PasswordHistoryCount = 2
	v := newTestVerifier(s, cfg, clock)
	ctx := context.Background()

	for _, pw := range []string{"Password1!aa", "Password2!aa", "Password3!aa"} {
		clock.Advance(time.Minute)
		require.NoError(t, v.ChangePassword(ctx, "paul", pw))
	}

	// retained: current Password3, history Password2 and Password1
	assert.Len(t, s.history[account.ID], 2)

	assert.ErrorIs(t, v.ChangePassword(ctx, "paul", "Password3!aa"), validators.ErrPasswordReused)
	assert.ErrorIs(t, v.ChangePassword(ctx, "paul", "Password2!aa"), validators.ErrPasswordReused)
	assert.ErrorIs(t, v.ChangePassword(ctx, "paul", "Password1!aa"), validators.ErrPasswordReused)

	// evicted from the window
	assert.NoError(t, v.ChangePassword(ctx, "paul", "Password0!aa"))
}

func TestCredentialVerifier_ChangePassword_HistoryDisabled(t *testing.T) {
	clock := &testClock{now: time.Now()}
	s := newMemStore()
	account := seedAccount(t, s, "quinn", "CorrectPass1!", 1000, clock.now)
	cfg := testPolicy(1000)
	cfg.PasswordHistoryCount = 0
	v := newTestVerifier(s, cfg, clock)

	require.NoError(t, v.ChangePassword(context.Background(), "quinn", "CorrectPass1!"))
	assert.Empty(t, s.history[account.ID])
}

func TestCredentialVerifier_ChangePassword_ConflictSkipsHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	account := models.Account{ID: 9, Identifier: "rita", PasswordHash: []byte("old-hash"), PasswordSalt: []byte("old-salt"), Iterations: 1000, Version: 2}

	accounts := mock.NewMockAccountStore(ctrl)
	history := mock.NewMockHistoryStore(ctrl)
	hasher := mock.NewMockPasswordHasher(ctrl)

	accounts.EXPECT().GetByIdentifier(gomock.Any(), "rita").Return(account, nil)
	history.EXPECT().ListForAccount(gomock.Any(), int64(9)).Return(nil, nil)
	hasher.EXPECT().Verify("NewPassword1!", account.PasswordSalt, account.PasswordHash, 1000).Return(false, nil)
	hasher.EXPECT().NewSalt(crypto.MinSaltLength).Return([]byte("fresh-salt-16byt"), nil)
	hasher.EXPECT().Derive("NewPassword1!", []byte("fresh-salt-16byt"), 1000).Return([]byte("new-hash"), nil)
	accounts.EXPECT().ReplacePassword(gomock.Any(), gomock.Any(), gomock.Any(), 5).DoAndReturn(
		func(_ context.Context, a models.Account, retired models.PasswordHistoryEntry, _ int) (models.Account, error) {
			assert.Equal(t, []byte("new-hash"), a.PasswordHash)
			assert.Equal(t, int64(2), a.Version)
			assert.Equal(t, []byte("old-hash"), retired.Hash)
			return models.Account{}, store.ErrConflict
		},
	)

	v := NewCredentialVerifier(accounts, history, staticPolicy{cfg: testPolicy(1000)}, hasher, logger.Nop())

	err := v.ChangePassword(context.Background(), "rita", "NewPassword1!")
	require.ErrorIs(t, err, store.ErrConflict)
}

func TestCredentialVerifier_ChangePassword_UnknownAccount(t *testing.T) {
	v := newTestVerifier(newMemStore(), testPolicy(1000), &testClock{now: time.Now()})

	err := v.ChangePassword(context.Background(), "nobody", "NewPassword1!")
	require.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestCredentialVerifier_ChangePassword_FailedWriteKeepsOldPassword(t *testing.T) {
	clock := &testClock{now: time.Now()}
	s := newMemStore()
	old := seedAccount(t, s, "tess", "CorrectPass1!", 1000, clock.now.Add(-time.Hour))
	v := newTestVerifier(s, testPolicy(1000), clock)
	ctx := context.Background()

	boom := errors.New("history insert failed")
	s.failReplace = boom

	err := v.ChangePassword(ctx, "tess", "BrandNewPass2@")
	require.ErrorIs(t, err, boom)

	current := s.get(t, "tess")
	assert.Equal(t, old.PasswordHash, current.PasswordHash)
	assert.Equal(t, old.Version, current.Version)
	assert.Empty(t, s.history[old.ID])

	s.failReplace = nil
	_, err = v.Login(ctx, "tess", "CorrectPass1!")
	assert.NoError(t, err)
}

func TestCredentialVerifier_ConcurrentLoginsSerialisedByStore(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
	}{
		{name: "lockout disabled", maxAttempts: 0},
		{name: "lockout below attempts", maxAttempts: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &testClock{now: time.Now()}
			s := newMemStore()
			seedAccount(t, s, "sam", "CorrectPass1!", 1000, clock.now)
			cfg := testPolicy(1000)
			cfg.MaxLoginAttempts = tt.maxAttempts
			v := newTestVerifier(s, cfg, clock)

			const attempts = 8
			var wg sync.WaitGroup
			errs := make(chan error, attempts)
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := v.Login(context.Background(), "sam", "nope")
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)

			var invalid int
			for err := range errs {
				switch {
				case errors.Is(err, ErrInvalidCredentials):
					invalid++
				case errors.Is(err, store.ErrConflict):
				case errors.Is(err, ErrAccountLocked) && tt.maxAttempts > 0:
				default:
					t.Fatalf("unexpected error: %v", err)
				}
			}

			// every counted failure was persisted exactly once
			failed := s.get(t, "sam").FailedAttempts
			assert.Equal(t, invalid, failed)
			if tt.maxAttempts > 0 {
				assert.LessOrEqual(t, failed, tt.maxAttempts)
			}
		})
	}
}
