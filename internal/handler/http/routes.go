package http

import (
	"github.com/MKhiriev/go-cred-guard/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	router.Get("/api/version/", h.getServerVersion)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
	})

	// routes for any authenticated account
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/auth/password", h.changePassword)
	})

	// administration
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(requireRole(models.RoleAdmin))
		r.Post("/api/admin/accounts", h.registerAccount)
		r.Get("/api/admin/accounts/locked", h.listLockedAccounts)
		r.Post("/api/admin/accounts/{identifier}/unlock", h.unlockAccount)
		r.Get("/api/admin/security-policy", h.getSecurityPolicy)
		r.Put("/api/admin/security-policy", h.putSecurityPolicy)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
