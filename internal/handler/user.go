package handler

import (
	"net/http"
	"strconv"

	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/user"
)

// RegisterUserRequest represents the request to register a user.
type RegisterUserRequest struct {
	UserID     string  `json:"user_id" validate:"required,max=64"`
	Username   string  `json:"username" validate:"required,max=64"`
	ReferrerID *string `json:"referrer_id,omitempty" validate:"omitempty,max=64"`
}

// HandleRegisterUser handles user registration.
func HandleRegisterUser(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		result, err := userService.Register(r.Context(), req.UserID, req.Username, req.ReferrerID)
		if err != nil {
			log.Error("Failed to register user", "error", err, "userID", req.UserID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{
			Message: "User registered successfully",
			Data:    result,
		})
	}
}

// HandleGetProfile returns the user's account summary.
func HandleGetProfile(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		profile, err := userService.Profile(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get profile", "error", err, "userID", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: profile})
	}
}

// HandleGetInventory returns the user's items grouped by type.
func HandleGetInventory(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		view, err := userService.Inventory(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get inventory", "error", err, "userID", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: view})
	}
}

// HandleGetReferral returns the user's referral invite payload.
func HandleGetReferral(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		info, err := userService.ReferralInfo(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get referral info", "error", err, "userID", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: info})
	}
}

// HandleGetLeaderboard returns the top users by lifetime earnings.
func HandleGetLeaderboard(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		limit := 10
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				respondError(w, http.StatusBadRequest, "Invalid limit parameter")
				return
			}
			limit = parsed
		}

		entries, err := userService.Leaderboard(r.Context(), limit)
		if err != nil {
			log.Error("Failed to get leaderboard", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: entries})
	}
}
