package service

import (
	"github.com/MKhiriev/go-cred-guard/internal/config"
	"github.com/MKhiriev/go-cred-guard/internal/crypto"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/store"
)

// Services aggregates every service of the application.
type Services struct {
	CredentialValidator CredentialValidator
	AuthService         AuthService
	AccountService      AccountService
	PolicyService       PolicyService
	AppInfoService      AppInfoService
}

// NewServices wires the services over storages. A missing app version is
// replaced by "dev".
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	hasher := crypto.NewPasswordHasher()
	policies := NewPolicyService(storages.PolicyRepository, cfg.Security.SecurityPolicy(), logger)
	credentials := NewCredentialVerifier(storages.AccountRepository, storages.HistoryRepository, policies, hasher, logger)

	appCfg := cfg.App
	if appCfg.Version == "" {
		appCfg.Version = "dev"
	}
	appInfo, _ := NewAppInfoService(appCfg, logger)

	return &Services{
		CredentialValidator: credentials,
		AuthService:         NewAuthService(credentials, storages.AccountRepository, cfg.App, logger),
		AccountService:      NewAccountService(storages.AccountRepository, policies, hasher, logger),
		PolicyService:       policies,
		AppInfoService:      appInfo,
	}
}
