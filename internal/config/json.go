package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// configuration file. Durations accept Go duration strings ("30s").
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
		LogLevel     string `json:"log_level"`
		Version      string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Security struct {
		PBKDF2Iterations       *int  `json:"pbkdf2_iterations"`
		PasswordHistoryCount   *int  `json:"password_history_count"`
		MaxLoginAttempts       *int  `json:"max_login_attempts"`
		LockoutDurationMinutes *int  `json:"lockout_duration_minutes"`
		PasswordMinLength      *int  `json:"password_min_length"`
		RequireUppercase       *bool `json:"password_require_uppercase"`
		RequireLowercase       *bool `json:"password_require_lowercase"`
		RequireNumbers         *bool `json:"password_require_numbers"`
		RequireSpecial         *bool `json:"password_require_special"`
		PasswordExpiryDays     *int  `json:"password_expiry_days"`
		SessionTimeoutMinutes  *int  `json:"session_timeout_minutes"`
	} `json:"security,omitempty"`

	Adapter struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		ExpiryScanInterval Duration `json:"expiry_scan_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	sec := jsonCfg.Security
	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: jsonCfg.App.TokenSignKey,
			TokenIssuer:  jsonCfg.App.TokenIssuer,
			LogLevel:     jsonCfg.App.LogLevel,
			Version:      jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Security: Security{
			PBKDF2Iterations:       sec.PBKDF2Iterations,
			PasswordHistoryCount:   sec.PasswordHistoryCount,
			MaxLoginAttempts:       sec.MaxLoginAttempts,
			LockoutDurationMinutes: sec.LockoutDurationMinutes,
			PasswordMinLength:      sec.PasswordMinLength,
			RequireUppercase:       sec.RequireUppercase,
			RequireLowercase:       sec.RequireLowercase,
			RequireNumbers:         sec.RequireNumbers,
			RequireSpecial:         sec.RequireSpecial,
			PasswordExpiryDays:     sec.PasswordExpiryDays,
			SessionTimeoutMinutes:  sec.SessionTimeoutMinutes,
		},
		Adapter: Adapter{
			BaseURL:        jsonCfg.Adapter.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			ExpiryScanInterval: time.Duration(jsonCfg.Workers.ExpiryScanInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
