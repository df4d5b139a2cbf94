package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes sets up the public read surface and the auth-gated write surface
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Post("/login", handlers.authHandler.login())

		// Public reads
		r.Get("/projects", handlers.projectHandler.listProjects())
		r.Get("/media", handlers.mediaHandler.listMedia())
		r.Get("/cv", handlers.cvHandler.downloadCV())
		r.Get("/cv/info", handlers.cvHandler.getCVInfo())
		r.Get("/github/stats", handlers.githubHandler.getStats())
		r.Handle("/uploads/*", handlers.mediaHandler.serveFiles())

		// Authenticated writes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

			r.Post("/uploads", handlers.mediaHandler.uploadImage())
			r.Delete("/media/{mediaID}", handlers.mediaHandler.deleteMedia())

			r.Post("/cv", handlers.cvHandler.setCV())
			r.Delete("/cv", handlers.cvHandler.clearCV())
		})
	})
}
