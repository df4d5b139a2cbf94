package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/site-content-backend/errs"
	"github.com/rpupo63/site-content-backend/services"
)

type githubHandler struct {
	responder Responder
	logger    zerolog.Logger
	client    *services.GitHubClient
}

func newGitHubHandler(client *services.GitHubClient) githubHandler {
	logger := log.With().Str("handlerName", "githubHandler").Logger()

	return githubHandler{
		responder: NewResponder(logger),
		logger:    logger,
		client:    client,
	}
}

// getStats proxies aggregated GitHub profile statistics.
func (h githubHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.client.Stats(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to fetch GitHub stats")
			h.responder.WriteError(w, errs.NewApiErr(http.StatusBadGateway, "error fetching GitHub data"))
			return
		}

		w.Header().Set("Cache-Control", "no-store, max-age=0")
		h.responder.WriteJSON(w, stats)
	}
}
