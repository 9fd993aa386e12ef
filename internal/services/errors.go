package services

import (
	"errors"
	"fmt"
)

// ValidationError reports the first failing validation rule's message
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an absent entity by resource name
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ErrForbidden is returned when the caller is authenticated but does not own the entity
var ErrForbidden = errors.New("you don't have permission to do that")

// ErrInvalidCredentials is returned on login with an unknown username or wrong password
var ErrInvalidCredentials = errors.New("incorrect username or password")
