package usecase

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// ValidationError is a store-level constraint violation or malformed write
// input. It carries the submitted arguments so the client can react
// programmatically instead of parsing a message string.
type ValidationError struct {
	Message string
	Args    map[string]any
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, args map[string]any) *ValidationError {
	return &ValidationError{Message: message, Args: args}
}
