package models

import "time"

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// RegisterRequest is the body of POST /api/admin/accounts.
type RegisterRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Role       Role   `json:"role"`
}

// ChangePasswordRequest is the body of POST /api/auth/password.
// CurrentPassword re-authenticates the caller before the change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// LoginResponse is returned after a successful login. The session token is
// also sent in the Authorization header.
type LoginResponse struct {
	Token           string    `json:"token"`
	ExpiresAt       time.Time `json:"expires_at"`
	PasswordExpired bool      `json:"password_expired"`
}

// PolicyViolationResponse lists every password rule a candidate failed.
type PolicyViolationResponse struct {
	Violations []string `json:"violations"`
}

// SecurityPolicyDocument is the wire form of [SecurityPolicyConfig] used by
// the admin API and the JSON config file. Windows are expressed in the units
// operators configure them in.
type SecurityPolicyDocument struct {
	PBKDF2Iterations       int  `json:"pbkdf2_iterations"`
	PasswordHistoryCount   int  `json:"password_history_count"`
	MaxLoginAttempts       int  `json:"max_login_attempts"`
	LockoutDurationMinutes int  `json:"lockout_duration_minutes"`
	PasswordMinLength      int  `json:"password_min_length"`
	RequireUppercase       bool `json:"password_require_uppercase"`
	RequireLowercase       bool `json:"password_require_lowercase"`
	RequireNumbers         bool `json:"password_require_numbers"`
	RequireSpecial         bool `json:"password_require_special"`
	PasswordExpiryDays     int  `json:"password_expiry_days"`
	SessionTimeoutMinutes  int  `json:"session_timeout_minutes"`
}

// ToConfig converts the document into a [SecurityPolicyConfig].
func (d SecurityPolicyDocument) ToConfig() SecurityPolicyConfig {
	return SecurityPolicyConfig{
		PBKDF2Iterations:     d.PBKDF2Iterations,
		PasswordHistoryCount: d.PasswordHistoryCount,
		MaxLoginAttempts:     d.MaxLoginAttempts,
		LockoutDuration:      time.Duration(d.LockoutDurationMinutes) * time.Minute,
		PasswordMinLength:    d.PasswordMinLength,
		RequireUppercase:     d.RequireUppercase,
		RequireLowercase:     d.RequireLowercase,
		RequireNumbers:       d.RequireNumbers,
		RequireSpecial:       d.RequireSpecial,
		PasswordExpiry:       time.Duration(d.PasswordExpiryDays) * 24 * time.Hour,
		SessionTimeout:       time.Duration(d.SessionTimeoutMinutes) * time.Minute,
	}
}

// NewSecurityPolicyDocument converts cfg into its wire form.
func NewSecurityPolicyDocument(cfg SecurityPolicyConfig) SecurityPolicyDocument {
	return SecurityPolicyDocument{
		PBKDF2Iterations:       cfg.PBKDF2Iterations,
		PasswordHistoryCount:   cfg.PasswordHistoryCount,
		MaxLoginAttempts:       cfg.MaxLoginAttempts,
		LockoutDurationMinutes: int(cfg.LockoutDuration / time.Minute),
		PasswordMinLength:      cfg.PasswordMinLength,
		RequireUppercase:       cfg.RequireUppercase,
		RequireLowercase:       cfg.RequireLowercase,
		RequireNumbers:         cfg.RequireNumbers,
		RequireSpecial:         cfg.RequireSpecial,
		PasswordExpiryDays:     int(cfg.PasswordExpiry / (24 * time.Hour)),
		SessionTimeoutMinutes:  int(cfg.SessionTimeout / time.Minute),
	}
}
