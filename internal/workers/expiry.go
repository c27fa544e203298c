// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/service"
)

// ExpiryWorker periodically lists accounts whose password is older than the
// expiry window and logs one warning per account.
type ExpiryWorker struct {
	accounts service.AccountService
	interval time.Duration
	logger   *logger.Logger
}

// NewExpiryWorker constructs an [ExpiryWorker] scanning every interval.
func NewExpiryWorker(accounts service.AccountService, interval time.Duration, logger *logger.Logger) *ExpiryWorker {
	return &ExpiryWorker{
		accounts: accounts,
		interval: interval,
		logger:   logger,
	}
}

// Run scans once immediately and then on every tick until ctx is done.
func (w *ExpiryWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("password expiry worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.scan(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("password expiry worker stopped")
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}
			w.scan(ctx)
		}
	}
}

// scan returns the number of accounts reported.
func (w *ExpiryWorker) scan(ctx context.Context) int {
	accounts, err := w.accounts.ListExpiredPasswords(ctx)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Msg("error listing accounts with expired passwords")
		}
		return 0
	}

	for _, account := range accounts {
		w.logger.Warn().
			Int64("account_id", account.ID).
			Str("identifier", account.Identifier).
			Time("password_changed_at", account.PasswordChangedAt).
			Msg("password expired")
	}

	return len(accounts)
}
