package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

// build merges the collected configs in order, later non-zero fields
// overriding earlier ones, and validates the result.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		src := *cfg
		src.Security = Security{}
		if err := mergo.Merge(config, &src, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	config.Security = mergeSecurity(b.configs)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error parsing flags: %w", err))
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, jsonCfg)
	return b
}

// withDefaults prepends the built-in defaults so that every other source
// overrides them.
func (b *configBuilder) withDefaults() *configBuilder {
	defaults := &StructuredConfig{
		App: App{
			TokenIssuer: DefaultTokenIssuer,
			LogLevel:    DefaultLogLevel,
		},
		Storage: Storage{
			DB: DB{Driver: DriverPostgres},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			GRPCAddress:    DefaultGRPCAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			ExpiryScanInterval: DefaultExpiryScanInterval,
		},
	}

	b.configs = append([]*StructuredConfig{defaults}, b.configs...)
	return b
}

// mergeSecurity takes, field by field, the last option set by any source.
// mergo cannot override a set pointer with an explicit zero, so the
// security options are merged here instead.
func mergeSecurity(configs []*StructuredConfig) Security {
	var out Security
	for _, cfg := range configs {
		s := cfg.Security
		out.PBKDF2Iterations = lastSet(out.PBKDF2Iterations, s.PBKDF2Iterations)
		out.PasswordHistoryCount = lastSet(out.PasswordHistoryCount, s.PasswordHistoryCount)
		out.MaxLoginAttempts = lastSet(out.MaxLoginAttempts, s.MaxLoginAttempts)
		out.LockoutDurationMinutes = lastSet(out.LockoutDurationMinutes, s.LockoutDurationMinutes)
		out.PasswordMinLength = lastSet(out.PasswordMinLength, s.PasswordMinLength)
		out.RequireUppercase = lastSet(out.RequireUppercase, s.RequireUppercase)
		out.RequireLowercase = lastSet(out.RequireLowercase, s.RequireLowercase)
		out.RequireNumbers = lastSet(out.RequireNumbers, s.RequireNumbers)
		out.RequireSpecial = lastSet(out.RequireSpecial, s.RequireSpecial)
		out.PasswordExpiryDays = lastSet(out.PasswordExpiryDays, s.PasswordExpiryDays)
		out.SessionTimeoutMinutes = lastSet(out.SessionTimeoutMinutes, s.SessionTimeoutMinutes)

		if s.BootstrapAdminIdentifier != "" || s.BootstrapAdminPassword != "" {
			out.BootstrapAdminIdentifier = s.BootstrapAdminIdentifier
			out.BootstrapAdminPassword = s.BootstrapAdminPassword
		}
	}
	return out
}

func lastSet[T any](current, next *T) *T {
	if next != nil {
		v := *next
		return &v
	}
	return current
}
