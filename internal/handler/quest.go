package handler

import (
	"net/http"

	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/quest"
	"github.com/coinverse/CoinverseBot_Go/internal/season"
)

// HandleGetQuests returns the daily quest list with today's progress.
func HandleGetQuests(questService quest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		statuses, err := questService.List(r.Context(), userID)
		if err != nil {
			log.Error("Failed to list quests", "error", err, "userID", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: statuses})
	}
}

// GrantXPRequest represents the admin request to grant season XP.
type GrantXPRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Amount int64  `json:"amount" validate:"required,gt=0"`
}

// HandleGrantSeasonXP grants season XP directly. Admin-only route.
func HandleGrantSeasonXP(seasonService season.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GrantXPRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Grant season XP"); err != nil {
			return
		}

		progress, err := seasonService.AddXP(r.Context(), req.UserID, req.Amount, "admin")
		if err != nil {
			log.Error("Failed to grant season XP", "error", err, "userID", req.UserID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: progress})
	}
}
