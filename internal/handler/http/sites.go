package http

import (
	"net/http"

	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/internal/utils"
)

func (h *Handler) listSites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	sites, err := h.services.SiteService.ListSitesForUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("site listing failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, sites, http.StatusOK)
}
