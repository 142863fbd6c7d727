package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeProfileNotFound = "PRF001"
)

// Errors
var (
	ErrProfileNotFound = errors.New("profile not found")
)

// ProfileError custom error type
type ProfileError struct {
	Code    string
	Message string
	Err     error
}

func (e *ProfileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProfileError) Unwrap() error {
	return e.Err
}

func NewProfileNotFoundError(username string) *ProfileError {
	return &ProfileError{
		Code:    ErrCodeProfileNotFound,
		Message: fmt.Sprintf("No profile found with username: %s", username),
		Err:     ErrProfileNotFound,
	}
}
