package handler

import (
	"net/http"

	"github.com/coinverse/CoinverseBot_Go/internal/economy"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
)

// ClaimBonusRequest represents the request to claim the daily bonus.
type ClaimBonusRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
}

// HandleClaimBonus handles a daily bonus claim.
func HandleClaimBonus(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ClaimBonusRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim bonus"); err != nil {
			return
		}

		result, err := economyService.ClaimDailyBonus(r.Context(), req.UserID)
		if err != nil {
			log.Error("Failed to claim bonus", "error", err, "userID", req.UserID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{
			Message: "Daily bonus claimed",
			Data:    result,
		})
	}
}

// ExchangeRequest represents the request to exchange stars and coins.
type ExchangeRequest struct {
	UserID    string `json:"user_id" validate:"required,max=64"`
	Direction string `json:"direction" validate:"required,oneof=sell buy"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
}

// HandleExchange handles a star exchange at the fixed rates.
func HandleExchange(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ExchangeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Exchange"); err != nil {
			return
		}

		result, err := economyService.Exchange(r.Context(), req.UserID, req.Direction, req.Amount)
		if err != nil {
			log.Error("Failed to exchange", "error", err, "userID", req.UserID, "direction", req.Direction)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}
