// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-cred-guard/internal/app"
	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/utils"
	"github.com/MKhiriev/go-cred-guard/models"
	"github.com/go-chi/chi/v5"
)

// registerAccount creates an account. Responds 201 with the account view.
func (h *Handler) registerAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	account, err := h.services.AccountService.RegisterAccount(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusCreated)
}

// listLockedAccounts lists accounts inside an open lockout window.
func (h *Handler) listLockedAccounts(w http.ResponseWriter, r *http.Request) {
	locked, err := h.services.AccountService.ListLocked(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, locked, http.StatusOK)
}

func (h *Handler) unlockAccount(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")

	if err := h.services.AccountService.Unlock(r.Context(), identifier); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("identifier", identifier).Msg("account unlocked by administrator")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSecurityPolicy(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.services.PolicyService.LoadSecurityPolicyConfig(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NewSecurityPolicyDocument(cfg), http.StatusOK)
}

// putSecurityPolicy replaces the whole policy. Omitted fields are zero.
func (h *Handler) putSecurityPolicy(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var document models.SecurityPolicyDocument
	if err := json.NewDecoder(r.Body).Decode(&document); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.PolicyService.UpdateSecurityPolicy(r.Context(), document.ToConfig()); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, document, http.StatusOK)
}
