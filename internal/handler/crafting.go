package handler

import (
	"net/http"

	"github.com/coinverse/CoinverseBot_Go/internal/crafting"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
)

// CraftRequest represents the request to craft an item.
type CraftRequest struct {
	UserID   string `json:"user_id" validate:"required,max=64"`
	RecipeID string `json:"recipe_id" validate:"required,max=64"`
}

// HandleCraft handles a craft operation.
func HandleCraft(craftingService crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CraftRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Craft"); err != nil {
			return
		}

		result, err := craftingService.Craft(r.Context(), req.UserID, req.RecipeID)
		if err != nil {
			log.Error("Failed to craft", "error", err, "userID", req.UserID, "recipeID", req.RecipeID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{
			Message: "Item crafted",
			Data:    result,
		})
	}
}

// HandleListRecipes returns the recipe catalog.
func HandleListRecipes(craftingService crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: craftingService.ListRecipes(r.Context())})
	}
}
