package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coinverse/CoinverseBot_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to a pooled buffer first; headers are already sent, so an encode
	// failure can only be logged.
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgUserNotFoundError      = "User not found"
	ErrMsgUserAlreadyExistsError = "User is already registered"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgInsufficientItemsErr   = "Not enough items"

	ErrMsgNotEnoughCoinsError      = "Not enough funds"
	ErrMsgNotEnoughMaterialsError  = "Not enough materials"
	ErrMsgMissingKeyError          = "You need a key to open that"
	ErrMsgBonusAlreadyClaimedError = "Daily bonus already claimed today"
	ErrMsgBetBelowMinimumError     = "Bet is below the minimum"
	ErrMsgContainerNotFoundError   = "Container not found"
	ErrMsgRecipeNotFoundError      = "Recipe not found"
	ErrMsgQuestNotFoundError       = "Quest not found"
	ErrMsgUnknownGameError         = "Unknown game"
	ErrMsgInvalidInputError        = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Internal detail stays out of the client payload.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict, ErrMsgUserAlreadyExistsError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgInsufficientItemsErr
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCoinsError
	case errors.Is(err, domain.ErrInsufficientMaterials):
		return http.StatusBadRequest, ErrMsgNotEnoughMaterialsError
	case errors.Is(err, domain.ErrMissingKeyItem):
		return http.StatusBadRequest, ErrMsgMissingKeyError
	case errors.Is(err, domain.ErrBonusAlreadyClaimed):
		return http.StatusConflict, ErrMsgBonusAlreadyClaimedError
	case errors.Is(err, domain.ErrBetBelowMinimum):
		return http.StatusBadRequest, ErrMsgBetBelowMinimumError
	case errors.Is(err, domain.ErrContainerNotFound):
		return http.StatusBadRequest, ErrMsgContainerNotFoundError
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusBadRequest, ErrMsgRecipeNotFoundError
	case errors.Is(err, domain.ErrQuestNotFound):
		return http.StatusBadRequest, ErrMsgQuestNotFoundError
	case errors.Is(err, domain.ErrUnknownGame):
		return http.StatusBadRequest, ErrMsgUnknownGameError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	// Wrapped errors with a domain error somewhere down the chain
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError maps err and writes the error response.
func respondServiceError(w http.ResponseWriter, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}
