package errors

import "fmt"

// ErrorCode represents a zvonar error code.
type ErrorCode string

const (
	ErrEmptyInput     ErrorCode = "EMPTY_INPUT"     // 422
	ErrEmptyFragment  ErrorCode = "EMPTY_FRAGMENT"  // 422
	ErrMarkerMismatch ErrorCode = "MARKER_MISMATCH" // 409
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"  // 404
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// Error represents a structured error with code, status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewEmptyInput creates a 422 error for when there is no text to process.
func NewEmptyInput() *Error {
	return &Error{
		Code:    ErrEmptyInput,
		Status:  422,
		Message: "no schedule text to process",
	}
}

// NewEmptyFragment creates a 422 error for a blank patch fragment.
func NewEmptyFragment() *Error {
	return &Error{
		Code:    ErrEmptyFragment,
		Status:  422,
		Message: "refusing to patch with an empty fragment",
	}
}

// NewMarkerMismatch creates a 409 error for an ambiguous or missing
// insertion point. A valid target contains the marker exactly twice.
func NewMarkerMismatch(path string, found int) *Error {
	return &Error{
		Code:    ErrMarkerMismatch,
		Status:  409,
		Message: fmt.Sprintf("target must contain the schedule marker exactly twice, found %d", found),
		Details: map[string]any{"path": path, "found": found},
	}
}

// NewFileNotFound creates a 404 error for a missing target or source file.
func NewFileNotFound(path string) *Error {
	return &Error{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewInvalidRequest creates a 400 error for invalid operation parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a zvonar Error with the given code.
func Is(err error, code ErrorCode) bool {
	if zErr, ok := err.(*Error); ok {
		return zErr.Code == code
	}
	return false
}
