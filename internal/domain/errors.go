package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInternalError       = errors.New("internal error")
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category has transactions and cannot be deleted")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidType         = errors.New("type must be income or expense")
	ErrInvalidIcon         = errors.New("icon is not a known identifier")
	ErrInvalidColor        = errors.New("color is not in the palette")
	ErrDescriptionTooLong  = errors.New("description exceeds maximum length")
)

// Validation constants
const (
	MaxCategoryNameLength   = 100
	MaxDescriptionLength    = 500
	MaxProfileNameLength    = 255
)
