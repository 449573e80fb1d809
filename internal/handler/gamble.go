package handler

import (
	"net/http"

	"github.com/coinverse/CoinverseBot_Go/internal/gamble"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
)

// PlaceBetRequest represents the request to place a bet.
type PlaceBetRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Game   string `json:"game" validate:"required,game"`
	Amount int64  `json:"amount" validate:"required,gt=0"`
}

// HandlePlaceBet handles a bet across all three games.
func HandlePlaceBet(gambleService gamble.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PlaceBetRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Place bet"); err != nil {
			return
		}

		result, err := gambleService.PlaceBet(r.Context(), req.UserID, req.Game, req.Amount)
		if err != nil {
			log.Error("Failed to place bet", "error", err, "userID", req.UserID, "game", req.Game)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}
