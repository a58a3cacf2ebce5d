package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Backend interaction errors
	ErrCodeNetworkFailure    ErrorCode = "NETWORK_FAILURE"
	ErrCodeServerError       ErrorCode = "SERVER_ERROR"
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"

	// Navigation and move errors
	ErrCodeValidationRejected ErrorCode = "VALIDATION_REJECTED"
	ErrCodeInvalidPath        ErrorCode = "INVALID_PATH"
	ErrCodeItemNotFound       ErrorCode = "ITEM_NOT_FOUND"
	ErrCodeItemExists         ErrorCode = "ITEM_EXISTS"

	// UI wiring errors
	ErrCodeBindingTargetMissing ErrorCode = "BINDING_TARGET_MISSING"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// PictorError represents a structured error with context
type PictorError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *PictorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PictorError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *PictorError) WithDetail(key string, value interface{}) *PictorError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *PictorError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new PictorError
func New(code ErrorCode, message string) *PictorError {
	return &PictorError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a PictorError
func Wrap(err error, code ErrorCode, message string) *PictorError {
	return &PictorError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific PictorError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	pictorErr, ok := err.(*PictorError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return pictorErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	pictorErr, ok := err.(*PictorError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return pictorErr.Code
}

// GetMessage extracts the human-readable message from an error, without the
// code prefix Error() adds. Falls back to Error() for plain errors.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	if pictorErr, ok := err.(*PictorError); ok {
		return pictorErr.Message
	}
	return err.Error()
}
