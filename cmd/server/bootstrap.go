package main

import (
	"context"

	"github.com/MKhiriev/go-cred-guard/internal/config"
	"github.com/MKhiriev/go-cred-guard/internal/service"
)

// bootstrapAdmin creates the configured first admin when the deployment has
// none. Without bootstrap credentials it does nothing.
func bootstrapAdmin(ctx context.Context, accounts service.AccountService, security config.Security) error {
	identifier, password, ok := security.BootstrapAdmin()
	if !ok {
		return nil
	}

	_, err := accounts.BootstrapAdmin(ctx, identifier, password)
	return err
}
