// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for the wsession library.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrNilRequestURI   = fmt.Errorf("request URI cannot be nil")
	ErrAlreadyOpen     = fmt.Errorf("session already open")
	ErrNotOpen         = fmt.Errorf("session has not been opened yet")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMessageTooLarge = fmt.Errorf("message exceeds maximum size")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeIllegalState
	ErrCodeMessageTooLarge
	ErrCodeInputClosed
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf extracts the ErrorCode from err, or ErrCodeInternal for errors
// not produced by this library. A nil err maps to ErrCodeOK.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// IsIllegalState reports whether err carries ErrCodeIllegalState.
func IsIllegalState(err error) bool {
	return CodeOf(err) == ErrCodeIllegalState
}
