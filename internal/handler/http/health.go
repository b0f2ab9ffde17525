package http

import (
	"net/http"

	"github.com/atpsolar/credential-service/internal/utils"
)

// healthResponse is the liveness payload served at the root path.
type healthResponse struct {
	Message string `json:"message"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, healthResponse{
		Message: "ATPsolar credential service is running",
	}, http.StatusOK)
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(h.version))
}
