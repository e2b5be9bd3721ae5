package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents an iconforge error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrFileNotFound      ErrorCode = "FILE_NOT_FOUND"     // 404
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT" // 415
	ErrMalformedDocument ErrorCode = "MALFORMED_DOCUMENT" // 422
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// ForgeError represents a structured error with code, status, and details.
type ForgeError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ForgeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ForgeError {
	return &ForgeError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewFileNotFound creates a 404 error for a missing input file.
func NewFileNotFound(path string) *ForgeError {
	return &ForgeError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewNotFound creates a 404 error for when a catalog entry cannot be found.
func NewNotFound(name string) *ForgeError {
	return &ForgeError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("entry not found: %s", name),
		Details: map[string]any{"name": name},
	}
}

// NewUnsupportedFormat creates a 415 error for input files with an unknown extension.
func NewUnsupportedFormat(path string) *ForgeError {
	return &ForgeError{
		Code:    ErrUnsupportedFormat,
		Status:  415,
		Message: "input file must be a .css or .json file",
		Details: map[string]any{"path": path},
	}
}

// NewMalformedDocument creates a 422 error for structured input that cannot be decoded.
func NewMalformedDocument(source string, err error) *ForgeError {
	msg := fmt.Sprintf("could not decode %s", source)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &ForgeError{
		Code:    ErrMalformedDocument,
		Status:  422,
		Message: msg,
		Details: map[string]any{"source": source},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ForgeError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ForgeError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is (or wraps) a ForgeError with the given code.
func Is(err error, code ErrorCode) bool {
	var fErr *ForgeError
	if stderrors.As(err, &fErr) {
		return fErr.Code == code
	}
	return false
}
