package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.health)
		r.Get("/api/version", h.getServerVersion)

		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)

		// legacy paths kept for existing data loggers in the field
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	// routes requiring a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/users", h.listUsers)
		r.Post("/users/delete", h.deleteUser)
		r.Get("/sites", h.listSites)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
