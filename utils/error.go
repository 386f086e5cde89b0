package utils

import (
	"errors"
	"fmt"
)

var (
	ErrorRecordNotFound    = errors.New("record not found")
	ErrorCompanyRequired   = errors.New("company is required")
	ErrorStorageNotEnabled = errors.New("storage provider is not configured")
	ErrorDatabaseNotReady  = errors.New("database is not connected")
)

// ValidationError is a precondition failure shown to the user as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
