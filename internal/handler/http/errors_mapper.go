package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-cred-guard/internal/app"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/service"
	"github.com/MKhiriev/go-cred-guard/internal/store"
	"github.com/MKhiriev/go-cred-guard/internal/utils"
	"github.com/MKhiriev/go-cred-guard/internal/validators"
	"github.com/MKhiriev/go-cred-guard/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidPolicy:           http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrAccountLocked:           http.StatusLocked,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrIdentifierAlreadyExists: http.StatusConflict,
	store.ErrConflict:                http.StatusConflict,
	store.ErrAccountNotFound:         http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	if store.IsRetryable(err) {
		return http.StatusServiceUnavailable
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and writes the matching response. Rejected passwords
// get 422 with every violation listed; server-side failures are reported
// without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var policyErr *validators.PolicyError
	if errors.As(err, &policyErr) {
		log.Info().Int("violations", len(policyErr.Violations)).Msg("password rejected by policy")
		utils.WriteJSON(w, models.PolicyViolationResponse{Violations: policyErr.Messages()}, http.StatusUnprocessableEntity)
		return
	}

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
		msg := app.MsgInternalServerError
		if status == http.StatusServiceUnavailable {
			msg = app.MsgServiceUnavailable
		}
		http.Error(w, msg, status)
		return
	}

	log.Warn().Err(err).Int("status", status).Send()
	http.Error(w, err.Error(), status)
}
