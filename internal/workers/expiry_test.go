package workers

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/mock"
	"github.com/MKhiriev/go-cred-guard/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newBufferedLogger(buf *bytes.Buffer) *logger.Logger {
	return &logger.Logger{Logger: zerolog.New(buf)}
}

func TestExpiryWorker_ScanLogsEveryAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountService(ctrl)

	changed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	accounts.EXPECT().ListExpiredPasswords(gomock.Any()).Return([]models.Account{
		{ID: 1, Identifier: "alice", PasswordChangedAt: changed},
		{ID: 2, Identifier: "bob", PasswordChangedAt: changed},
	}, nil)

	var buf bytes.Buffer
	w := NewExpiryWorker(accounts, time.Hour, newBufferedLogger(&buf))

	assert.Equal(t, 2, w.scan(context.Background()))
	assert.Contains(t, buf.String(), `"identifier":"alice"`)
	assert.Contains(t, buf.String(), `"identifier":"bob"`)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("password expired")))
}

func TestExpiryWorker_ScanError(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountService(ctrl)
	accounts.EXPECT().ListExpiredPasswords(gomock.Any()).Return(nil, errors.New("db down"))

	var buf bytes.Buffer
	w := NewExpiryWorker(accounts, time.Hour, newBufferedLogger(&buf))

	assert.Equal(t, 0, w.scan(context.Background()))
	assert.Contains(t, buf.String(), "db down")
}

func TestExpiryWorker_RunScansUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountService(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	scans := 0
	accounts.EXPECT().ListExpiredPasswords(gomock.Any()).DoAndReturn(func(context.Context) ([]models.Account, error) {
		scans++
		if scans == 3 {
			cancel()
		}
		return nil, nil
	}).Times(3)

	done := make(chan struct{})
	go func() {
		NewExpiryWorker(accounts, time.Millisecond, logger.Nop()).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
	assert.Equal(t, 3, scans)
}
