package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/utils"
	"github.com/MKhiriev/go-cred-guard/models"
	"github.com/go-resty/resty/v2"
)

type httpCredentialClient struct {
	client *utils.HTTPClient
	token  string
	logger *logger.Logger
}

// NewHTTPCredentialClient constructs the HTTP implementation of
// [CredentialClient]. baseURL may omit the scheme, in which case http is
// assumed.
func NewHTTPCredentialClient(baseURL string, timeout time.Duration, logger *logger.Logger) (CredentialClient, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	return &httpCredentialClient{
		client: utils.NewHTTPClient(normalized, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyBaseURL
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpCredentialClient) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpCredentialClient) Token() string {
	return h.token
}

// Login POSTs to /api/auth/login and keeps the token from the Authorization
// response header.
func (h *httpCredentialClient) Login(ctx context.Context, request models.LoginRequest) (models.LoginResponse, error) {
	var response models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post("/api/auth/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	if response.PasswordExpired {
		h.logger.Warn().Str("identifier", request.Identifier).Msg("password expired, change it before continuing")
	}

	return response, nil
}

func (h *httpCredentialClient) ChangePassword(ctx context.Context, request models.ChangePasswordRequest) error {
	resp, err := h.authedRequest(ctx).
		SetBody(request).
		Post("/api/auth/password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpCredentialClient) RegisterAccount(ctx context.Context, request models.RegisterRequest) (models.Account, error) {
	var account models.Account

	resp, err := h.authedRequest(ctx).
		SetBody(request).
		SetResult(&account).
		Post("/api/admin/accounts")
	if err != nil {
		return models.Account{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Account{}, err
	}

	return account, nil
}

func (h *httpCredentialClient) ListLocked(ctx context.Context) ([]models.LockedAccount, error) {
	var locked []models.LockedAccount

	resp, err := h.authedRequest(ctx).
		SetResult(&locked).
		Get("/api/admin/accounts/locked")
	if err != nil {
		return nil, fmt.Errorf("list locked request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return locked, nil
}

func (h *httpCredentialClient) Unlock(ctx context.Context, identifier string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("identifier", identifier).
		Post("/api/admin/accounts/{identifier}/unlock")
	if err != nil {
		return fmt.Errorf("unlock request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpCredentialClient) GetSecurityPolicy(ctx context.Context) (models.SecurityPolicyDocument, error) {
	var policy models.SecurityPolicyDocument

	resp, err := h.authedRequest(ctx).
		SetResult(&policy).
		Get("/api/admin/security-policy")
	if err != nil {
		return models.SecurityPolicyDocument{}, fmt.Errorf("get security policy request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SecurityPolicyDocument{}, err
	}

	return policy, nil
}

func (h *httpCredentialClient) PutSecurityPolicy(ctx context.Context, policy models.SecurityPolicyDocument) (models.SecurityPolicyDocument, error) {
	var stored models.SecurityPolicyDocument

	resp, err := h.authedRequest(ctx).
		SetBody(policy).
		SetResult(&stored).
		Put("/api/admin/security-policy")
	if err != nil {
		return models.SecurityPolicyDocument{}, fmt.Errorf("put security policy request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SecurityPolicyDocument{}, err
	}

	return stored, nil
}

func (h *httpCredentialClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpCredentialClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req
}
