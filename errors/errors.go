// Package errors provides the coded domain errors used across wardrobe.
//
// Usage:
//
//	// In the engine - return typed errors
//	if len(items) == 0 {
//	    return errors.EmptyCategory("no Shirts in the wardrobe")
//	}
//
//	// In the UI - check with errors.Is
//	if errors.Is(err, errors.ErrNotFound) {
//	    m.errorMessage = err.Error()
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is = errors.Is
	As = errors.As
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeInvalidCategory     Code = "INVALID_CATEGORY"
	CodeValidation          Code = "VALIDATION"
	CodeNotFound            Code = "NOT_FOUND"
	CodeEmptyCategory       Code = "EMPTY_CATEGORY"
	CodeNoMatch             Code = "NO_MATCH"
	CodeUnknownColor        Code = "UNKNOWN_COLOR"
	CodeCannotComposeOutfit Code = "CANNOT_COMPOSE_OUTFIT"
	CodeWeatherUnavailable  Code = "WEATHER_UNAVAILABLE"
	CodePersistence         Code = "PERSISTENCE"
)

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code
	Message string
	Details any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, cause: e.cause}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

// Sentinel errors for use with errors.Is().
var (
	ErrInvalidCategory     = &Error{Code: CodeInvalidCategory, Message: "invalid category"}
	ErrValidation          = &Error{Code: CodeValidation, Message: "validation error"}
	ErrNotFound            = &Error{Code: CodeNotFound, Message: "not found"}
	ErrEmptyCategory       = &Error{Code: CodeEmptyCategory, Message: "empty category"}
	ErrNoMatch             = &Error{Code: CodeNoMatch, Message: "no matching garment"}
	ErrUnknownColor        = &Error{Code: CodeUnknownColor, Message: "unknown color"}
	ErrCannotComposeOutfit = &Error{Code: CodeCannotComposeOutfit, Message: "cannot compose outfit"}
	ErrWeatherUnavailable  = &Error{Code: CodeWeatherUnavailable, Message: "weather unavailable"}
	ErrPersistence         = &Error{Code: CodePersistence, Message: "persistence error"}
)

// Constructor functions for creating errors with custom messages.

// InvalidCategory creates an invalid category error.
func InvalidCategory(msg string) *Error {
	return &Error{Code: CodeInvalidCategory, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with field-level details.
func ValidationWithDetails(msg string, details map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// EmptyCategory creates an empty category error.
func EmptyCategory(msg string) *Error {
	return &Error{Code: CodeEmptyCategory, Message: msg}
}

// NoMatch creates a no match error.
func NoMatch(msg string) *Error {
	return &Error{Code: CodeNoMatch, Message: msg}
}

// UnknownColor creates an unknown color error.
func UnknownColor(msg string) *Error {
	return &Error{Code: CodeUnknownColor, Message: msg}
}

// CannotComposeOutfit creates an outfit composition error.
func CannotComposeOutfit(msg string) *Error {
	return &Error{Code: CodeCannotComposeOutfit, Message: msg}
}

// WeatherUnavailable creates a weather lookup error.
func WeatherUnavailable(msg string) *Error {
	return &Error{Code: CodeWeatherUnavailable, Message: msg}
}

// Persistence creates a persistence error.
func Persistence(msg string) *Error {
	return &Error{Code: CodePersistence, Message: msg}
}
