package cli

import (
	"fmt"
	"os"

	"github.com/pictorlabs/pictor/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No pictor.yml found. Create one or pass --config to point at your collection root.\n")
		return err

	case errors.ErrCodeNetworkFailure:
		fmt.Fprintf(os.Stderr, "❌ Could not reach the pictor server.\n")
		fmt.Fprintf(os.Stderr, "Check the server URL in pictor.yml, or unset it to browse local collections.\n")
		return err

	case errors.ErrCodeItemNotFound:
		if pictorErr, ok := err.(*errors.PictorError); ok {
			fmt.Fprintf(os.Stderr, "❌ Item '%v' not found\n", pictorErr.Details["path"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ Item not found\n")
		}
		return err

	case errors.ErrCodeItemExists:
		if pictorErr, ok := err.(*errors.PictorError); ok {
			fmt.Fprintf(os.Stderr, "❌ An item named '%v' already exists there\n", pictorErr.Details["path"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ An item with that name already exists at the destination\n")
		}
		return err

	case errors.ErrCodeValidationRejected:
		fmt.Fprintf(os.Stderr, "❌ %s\n", errors.GetMessage(err))
		return err

	case errors.ErrCodeInvalidPath:
		fmt.Fprintf(os.Stderr, "❌ Invalid path: %s\n", errors.GetMessage(err))
		return err

	default:
		// Generic error handling
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if pictorErr, ok := err.(*errors.PictorError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", pictorErr.ToJSON())
			}
		}
		return err
	}
}
