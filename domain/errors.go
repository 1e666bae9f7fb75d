package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeInvalid  ErrorCode = "INVALID"
	ErrCodeConflict ErrorCode = "CONFLICT"
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Invalid builds a validation failure with a formatted message.
func Invalid(format string, args ...interface{}) *Error {
	return NewError(ErrCodeInvalid, fmt.Sprintf(format, args...))
}

// Common domain errors.
var (
	ErrTaskNotFound      = NewError(ErrCodeNotFound, "task not found")
	ErrProjectNotFound   = NewError(ErrCodeNotFound, "project not found")
	ErrDeveloperNotFound = NewError(ErrCodeNotFound, "developer not found")
	ErrInvalidPayload    = NewError(ErrCodeInvalid, "invalid payload")

	ErrTitleRequired        = NewError(ErrCodeInvalid, "title is required")
	ErrInvalidStatus        = NewError(ErrCodeInvalid, "status must be one of: ToDo, InProgress, Blocked, Completed")
	ErrInvalidPriority      = NewError(ErrCodeInvalid, "priority must be one of: Low, Medium, High")
	ErrInvalidComplexity    = NewError(ErrCodeInvalid, "estimatedComplexity must be between 1 and 5")
	ErrDueDateRequired      = NewError(ErrCodeInvalid, "dueDate is required")
	ErrInvalidProjectStatus = NewError(ErrCodeInvalid, "project status must be one of: Planned, InProgress, Completed")
	ErrInvalidPage          = NewError(ErrCodeInvalid, "page must be a positive integer")
	ErrInvalidPageSize      = NewError(ErrCodeInvalid, "pageSize must be a positive integer")
	ErrPageOutOfRange       = NewError(ErrCodeInvalid, "page is out of range")
)

// ProjectMissing reports a task referencing a project that does not exist.
func ProjectMissing(id int64) *Error {
	return Invalid("project %d does not exist", id)
}

// AssigneeUnavailable reports a task assigned to an unknown or inactive developer.
func AssigneeUnavailable(id int64) *Error {
	return Invalid("assignee %d does not exist or is not active", id)
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
