package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *PictorError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *PictorError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// NetworkFailure creates a network failure error for a request that could not complete
func NetworkFailure(endpoint string, err error) *PictorError {
	return Wrap(err, ErrCodeNetworkFailure, fmt.Sprintf("request to %s failed", endpoint)).
		WithDetail("endpoint", endpoint)
}

// ServerError creates an error for a non-success server response
func ServerError(endpoint string, status int) *PictorError {
	return New(ErrCodeServerError, fmt.Sprintf("server returned status %d for %s", status, endpoint)).
		WithDetail("endpoint", endpoint).
		WithDetail("status", status)
}

// MalformedResponse creates an error for a response missing expected fields
func MalformedResponse(reason string) *PictorError {
	return New(ErrCodeMalformedResponse, fmt.Sprintf("malformed response: %s", reason))
}

// MoveRejected creates a client-side move validation error
func MoveRejected(reason string) *PictorError {
	return New(ErrCodeValidationRejected, reason)
}

// InvalidPath creates an error for an unsafe or unparseable path
func InvalidPath(path string) *PictorError {
	return New(ErrCodeInvalidPath, fmt.Sprintf("invalid path: %q", path)).
		WithDetail("path", path)
}

// ItemNotFound creates an error for a missing collection item
func ItemNotFound(path string) *PictorError {
	return New(ErrCodeItemNotFound, fmt.Sprintf("item not found: %s", path)).
		WithDetail("path", path)
}

// ItemExists creates an error for a name collision
func ItemExists(path string) *PictorError {
	return New(ErrCodeItemExists, fmt.Sprintf("an item already exists at %s", path)).
		WithDetail("path", path)
}

// BindingTargetMissing creates a non-fatal error for an absent UI hook
func BindingTargetMissing(target string) *PictorError {
	return New(ErrCodeBindingTargetMissing, fmt.Sprintf("binding target missing: %s", target)).
		WithDetail("target", target)
}
