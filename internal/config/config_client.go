package config

import (
	"fmt"
	"time"
)

// ClientConfig holds the settings of the credctl command-line client.
type ClientConfig struct {
	// BaseURL is the root URL of the go-cred-guard HTTP API.
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// Token is a session token for authenticated commands.
	// Env: CREDCTL_TOKEN
	Token string
}

type clientEnv struct {
	Adapter Adapter `envPrefix:"ADAPTER_"`
	Token   string  `env:"CREDCTL_TOKEN"`
}

// GetClientConfig builds and validates a client config from environment
// variables, letting the non-empty overrides (typically from credctl flags)
// win over them.
func GetClientConfig(overrides ClientConfig) (*ClientConfig, error) {
	var e clientEnv
	if err := parseEnv(&e); err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	cfg := &ClientConfig{
		BaseURL:        e.Adapter.BaseURL,
		RequestTimeout: e.Adapter.RequestTimeout,
		Token:          e.Token,
	}
	if overrides.BaseURL != "" {
		cfg.BaseURL = overrides.BaseURL
	}
	if overrides.RequestTimeout > 0 {
		cfg.RequestTimeout = overrides.RequestTimeout
	}
	if overrides.Token != "" {
		cfg.Token = overrides.Token
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	return cfg, cfg.validate()
}
