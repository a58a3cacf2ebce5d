package errors

import (
	"fmt"
	"testing"
)

func TestPictorError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeItemNotFound, "item not found")
	if err.Code != ErrCodeItemNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeItemNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeNetworkFailure, "request failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeNetworkFailure) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeItemNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("path", "photos/x.jpg").WithDetail("status", 404)
	if detailed.Details["path"] != "photos/x.jpg" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test ServerError
	err := ServerError("/api/collections", 500)
	if err.Code != ErrCodeServerError {
		t.Errorf("expected code %s, got %s", ErrCodeServerError, err.Code)
	}
	if err.Details["status"] != 500 {
		t.Error("ServerError should include status detail")
	}

	// Test MoveRejected
	err = MoveRejected("cannot move a folder into itself")
	if err.Code != ErrCodeValidationRejected {
		t.Errorf("expected code %s, got %s", ErrCodeValidationRejected, err.Code)
	}

	// Test InvalidPath
	err = InvalidPath("../../etc")
	if err.Code != ErrCodeInvalidPath {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidPath, err.Code)
	}
	if err.Details["path"] != "../../etc" {
		t.Error("InvalidPath should include path detail")
	}
}
