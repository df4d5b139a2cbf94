package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Store error taxonomy. Every error the store packages return wraps one of
// these sentinels so the HTTP layer can map them to status codes with
// errors.Is instead of string matching.
var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrInvalidType    = errors.New("invalid content type")
	ErrStoreIO        = errors.New("store io failure")
	ErrPartialFailure = errors.New("partial failure")
)

// NewValidationError reports a missing or malformed record field.
func NewValidationError(field, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidation,
		Details:    fmt.Sprintf("Invalid field %s: %s", field, reason),
		Field:      field,
	}
}

// NewInvalidTypeError reports a disallowed mime type or size on upload.
func NewInvalidTypeError(contentType string, allowed []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidType,
		Details:    fmt.Sprintf("Content type %q is not allowed. Allowed: %v", contentType, allowed),
		Field:      "content_type",
	}
}

// NewFileTooLargeError reports an upload over the configured size ceiling.
func NewFileTooLargeError(size, maxBytes int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidType,
		Details:    fmt.Sprintf("File of %d bytes exceeds maximum of %d bytes", size, maxBytes),
		Field:      "file_size",
	}
}

// NewStoreIOError wraps an underlying persistence failure. The operation is
// reported; no partial state is exposed to the caller.
func NewStoreIOError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStoreIO,
		Details:    fmt.Sprintf("Failed to %s", operation),
		Cause:      cause,
	}
}

// NewPartialFailureError records that a primary operation succeeded but a
// dependent cleanup step did not. It is logged, never surfaced as a failure
// of the primary operation.
func NewPartialFailureError(operation, target string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrPartialFailure,
		Details:    fmt.Sprintf("Failed to %s %s during cleanup", operation, target),
		Cause:      cause,
	}
}

// Store Error Type Checkers
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsInvalidType(err error) bool {
	return errors.Is(err, ErrInvalidType)
}

func IsStoreIO(err error) bool {
	return errors.Is(err, ErrStoreIO)
}

func IsPartialFailure(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}
