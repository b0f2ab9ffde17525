package http

import (
	"encoding/json"
	"net/http"

	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/internal/utils"
	"github.com/atpsolar/credential-service/models"
)

// deleteUserRequest is the JSON body accepted by the user deletion endpoint.
type deleteUserRequest struct {
	Email string `json:"email"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	users, err := h.services.UserService.ListUsers(ctx)
	if err != nil {
		log.Err(err).Msg("user listing failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req deleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.UserService.DeleteUser(ctx, req.Email); err != nil {
		log.Err(err).Str("email", req.Email).Msg("user deletion failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	log.Info().Str("email", req.Email).Msg("user deleted")

	utils.WriteJSON(w, models.DeleteResponse{
		Status: "deleted",
		Email:  req.Email,
	}, http.StatusOK)
}
