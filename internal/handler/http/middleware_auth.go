package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-cred-guard/internal/app"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/utils"
	"github.com/MKhiriev/go-cred-guard/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the account ID and role in
// the request context (see [utils.WithAccount]) before delegating to the next
// handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when the header
// is absent, malformed, or carries an expired or invalid token.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		ctx = utils.WithAccount(ctx, token.AccountID, token.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole lets the request through only when the authenticated account
// has one of roles. Must run after auth.
func requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := utils.GetRoleFromContext(r.Context())
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.FromRequest(r).Warn().Str("role", string(role)).Str("uri", r.RequestURI).Msg("access denied")
			http.Error(w, app.MsgAccessDenied, http.StatusForbidden)
		})
	}
}

// getTokenFromAuthHeader extracts the token from an
// "Authorization: Bearer <token>" header value.
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] if the scheme is not Bearer or the
//     value has the wrong shape.
//   - [ErrEmptyToken] if the scheme is present without a token.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(authHeader), "Bearer") {
		return "", ErrEmptyToken
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", ErrInvalidAuthorizationHeader
	}

	return token, nil
}
