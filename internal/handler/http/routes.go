package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	// promhttp negotiates its own compression
	if h.metrics != nil {
		router.Handle("/metrics", h.metrics)
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/api/version/", h.getServerVersion)
		r.Get("/api/auth/login", h.login)
		r.Get("/api/auth/callback", h.callback)
	})

	// session token and authorization table membership required
	router.Group(func(r chi.Router) {
		r.Use(withGZip, h.auth, h.authorize)

		r.Get("/api/me", h.me)

		r.Get("/api/users", h.listUsers)
		r.Post("/api/users", h.addUser)
		r.Delete("/api/users/{email}", h.deleteUser)

		r.Get("/api/projects", h.listProjects)
		r.Post("/api/projects", h.createProject)
		r.Get("/api/projects/{id}", h.getProject)
		r.Delete("/api/projects/{id}", h.deleteProject)
		r.Post("/api/projects/{id}/toggle", h.toggleProject)

		r.Get("/api/beneficiaries", h.listBeneficiaries)
		r.Post("/api/beneficiaries", h.registerBeneficiary)

		r.Get("/api/dashboard", h.dashboard)

		r.Post("/api/cache/invalidate", h.invalidateCache)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
