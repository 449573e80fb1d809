package handler

import (
	"net/http"

	"github.com/coinverse/CoinverseBot_Go/internal/admin"
	"github.com/coinverse/CoinverseBot_Go/internal/domain"
	"github.com/coinverse/CoinverseBot_Go/internal/economy"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
)

// CreditRequest represents the admin request to adjust a balance.
type CreditRequest struct {
	TargetID string `json:"target_id" validate:"required,max=64"`
	Currency string `json:"currency" validate:"required,currency"`
	Amount   int64  `json:"amount" validate:"required"`
}

// HandleAdminCredit adjusts a user's balance.
func HandleAdminCredit(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreditRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Admin credit"); err != nil {
			return
		}

		user, err := economyService.Credit(r.Context(), req.TargetID, domain.Currency(req.Currency), req.Amount)
		if err != nil {
			log.Error("Failed to credit balance", "error", err, "targetID", req.TargetID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{
			Message: "Balance adjusted",
			Data:    user,
		})
	}
}

// GrantItemRequest represents the admin request to adjust an item holding.
type GrantItemRequest struct {
	TargetID string `json:"target_id" validate:"required,max=64"`
	ItemID   string `json:"item_id" validate:"required,max=64"`
	Delta    int    `json:"delta" validate:"required"`
}

// HandleAdminGrantItem grants or removes items.
func HandleAdminGrantItem(adminService admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GrantItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Admin grant item"); err != nil {
			return
		}

		if err := adminService.GrantItem(r.Context(), req.TargetID, req.ItemID, req.Delta); err != nil {
			log.Error("Failed to adjust item", "error", err, "targetID", req.TargetID, "itemID", req.ItemID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Item adjusted"})
	}
}

// BroadcastRequest represents the admin request to message all users.
type BroadcastRequest struct {
	Message string `json:"message" validate:"required,max=4096"`
}

// HandleAdminBroadcast fans a message out to every registered user.
func HandleAdminBroadcast(adminService admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req BroadcastRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Admin broadcast"); err != nil {
			return
		}

		result, err := adminService.Broadcast(r.Context(), req.Message)
		if err != nil {
			log.Error("Failed to broadcast", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusAccepted, DataResponse{
			Message: "Broadcast enqueued",
			Data:    result,
		})
	}
}

// GiveawayRequest represents the admin request to credit every user.
type GiveawayRequest struct {
	Currency string `json:"currency" validate:"required,currency"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
}

// HandleAdminGiveaway credits all users the same amount.
func HandleAdminGiveaway(economyService economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GiveawayRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Admin giveaway"); err != nil {
			return
		}

		count, err := economyService.Giveaway(r.Context(), domain.Currency(req.Currency), req.Amount)
		if err != nil {
			log.Error("Failed to run giveaway", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{
			Message: "Giveaway applied",
			Data:    map[string]int64{"users": count},
		})
	}
}

// HandleAdminStats returns global economy aggregates.
func HandleAdminStats(adminService admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		stats, err := adminService.Stats(r.Context())
		if err != nil {
			log.Error("Failed to get stats", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: stats})
	}
}

// FeedbackRequest represents a user feedback submission.
type FeedbackRequest struct {
	UserID string `json:"user_id" validate:"required,max=64"`
	Text   string `json:"text" validate:"required,max=4096"`
}

// HandleFeedback relays user feedback to the operators.
func HandleFeedback(adminService admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req FeedbackRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Feedback"); err != nil {
			return
		}

		if err := adminService.Feedback(r.Context(), req.UserID, req.Text); err != nil {
			log.Error("Failed to relay feedback", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Thanks for the feedback!"})
	}
}
