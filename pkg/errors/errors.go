package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Environment errors, detected during preflight
	ErrEnvShell   ErrorCode = "ENV_SHELL"
	ErrEnvHome    ErrorCode = "ENV_HOME"
	ErrEnvPayload ErrorCode = "ENV_PAYLOAD"

	// Collaborator errors
	ErrCollabMissing    ErrorCode = "COLLAB_MISSING"
	ErrCollabIncomplete ErrorCode = "COLLAB_INCOMPLETE"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCopy     ErrorCode = "FILE_COPY"
	ErrDirCreate    ErrorCode = "DIR_CREATE"

	// Backup errors
	ErrNoBackup ErrorCode = "NO_BACKUP"
	ErrRestore  ErrorCode = "RESTORE"
)

// DotbashError represents a structured error with code and details
type DotbashError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotbashError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotbashError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DotbashError) Is(target error) bool {
	var targetErr *DotbashError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithDetail attaches a named detail to the error and returns it
func (e *DotbashError) WithDetail(key string, value interface{}) *DotbashError {
	e.Details[key] = value
	return e
}

// New creates a new DotbashError with the given code and message
func New(code ErrorCode, message string) *DotbashError {
	return &DotbashError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotbashError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotbashError {
	return &DotbashError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotbashError
func Wrap(err error, code ErrorCode, message string) *DotbashError {
	if err == nil {
		return nil
	}
	return &DotbashError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotbashError {
	if err == nil {
		return nil
	}
	return &DotbashError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// IsCode reports whether err carries the given error code anywhere in its chain
func IsCode(err error, code ErrorCode) bool {
	var derr *DotbashError
	if errors.As(err, &derr) {
		return derr.Code == code
	}
	return false
}

// Code extracts the error code from err, or ErrUnknown for foreign errors
func Code(err error) ErrorCode {
	var derr *DotbashError
	if errors.As(err, &derr) {
		return derr.Code
	}
	return ErrUnknown
}
