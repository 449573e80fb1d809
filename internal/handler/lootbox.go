package handler

import (
	"net/http"

	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/lootbox"
)

// OpenContainerRequest represents the request to open a container.
type OpenContainerRequest struct {
	UserID      string `json:"user_id" validate:"required,max=64"`
	ContainerID string `json:"container_id" validate:"required,max=64"`
}

// HandleOpenContainer handles a container opening.
func HandleOpenContainer(lootboxService lootbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req OpenContainerRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Open container"); err != nil {
			return
		}

		result, err := lootboxService.Open(r.Context(), req.UserID, req.ContainerID)
		if err != nil {
			log.Error("Failed to open container", "error", err, "userID", req.UserID, "containerID", req.ContainerID)
			respondServiceError(w, err)
			return
		}

		msg := "You won a prize!"
		if result.Empty {
			msg = "The container was empty. Better luck next time!"
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: msg, Data: result})
	}
}

// HandleListContainers returns the container catalog.
func HandleListContainers(lootboxService lootbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: lootboxService.ListContainers(r.Context())})
	}
}
