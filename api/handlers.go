package api

import (
	"github.com/rpupo63/site-content-backend/config"
	"github.com/rpupo63/site-content-backend/services"
	"github.com/rpupo63/site-content-backend/store"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(contentStore *store.Store, c map[string]string) *routeHandlers {
	githubClient := services.NewGitHubClient(
		config.GetString(c, "GITHUB_USERNAME", ""),
		config.GetString(c, "GITHUB_TOKEN", ""),
	)

	return &routeHandlers{
		projectHandler: newProjectHandler(contentStore.ProjectStore()),
		mediaHandler:   newMediaHandler(contentStore.MediaStore()),
		cvHandler:      newCVHandler(contentStore.CVStore(), contentStore.MediaStore()),
		authHandler: newAuthHandler(
			config.GetString(c, "ADMIN_PASSWORD_HASH", ""),
			config.GetString(c, "AUTH_TOKEN_SECRET", ""),
		),
		githubHandler: newGitHubHandler(githubClient),
	}
}
