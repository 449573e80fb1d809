package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound      = "user not found"
	ErrMsgUserAlreadyExists = "user already exists"

	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Inventory errors
	ErrMsgInsufficientQuantity = "insufficient quantity"

	// Economy errors
	ErrMsgInsufficientFunds     = "insufficient funds"
	ErrMsgInsufficientMaterials = "insufficient materials"
	ErrMsgMissingKeyItem        = "missing key item"
	ErrMsgBonusAlreadyClaimed   = "daily bonus already claimed"
	ErrMsgBetBelowMinimum       = "bet below minimum"

	// Catalog errors
	ErrMsgContainerNotFound = "container not found"
	ErrMsgRecipeNotFound    = "recipe not found"
	ErrMsgQuestNotFound     = "quest not found"
	ErrMsgUnknownGame       = "unknown game"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)
	ErrUserAlreadyExists = errors.New(ErrMsgUserAlreadyExists)

	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Inventory errors
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)

	// Economy errors
	ErrInsufficientFunds     = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientMaterials = errors.New(ErrMsgInsufficientMaterials)
	ErrMissingKeyItem        = errors.New(ErrMsgMissingKeyItem)
	ErrBonusAlreadyClaimed   = errors.New(ErrMsgBonusAlreadyClaimed)
	ErrBetBelowMinimum       = errors.New(ErrMsgBetBelowMinimum)

	// Catalog errors
	ErrContainerNotFound = errors.New(ErrMsgContainerNotFound)
	ErrRecipeNotFound    = errors.New(ErrMsgRecipeNotFound)
	ErrQuestNotFound     = errors.New(ErrMsgQuestNotFound)
	ErrUnknownGame       = errors.New(ErrMsgUnknownGame)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
