package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrEntryNotFound       = errors.New("budget entry not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrCategoryRequired    = errors.New("category is required")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidCategoryType = errors.New("invalid category type")
	ErrInvalidEntryField   = errors.New("field is not editable")
	ErrInvalidDate         = errors.New("invalid date")
	ErrWrongConfirmation   = errors.New("wrong confirmation phrase")
)

// Validation constants
const (
	MaxNameLength = 255
)
