// Package errors provides the base sentinels every domain error wraps. Callers
// map them to HTTP status codes or CLI exit codes.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates the process configuration is unusable.
	// Configuration errors are fatal at construction time.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Kind returns an error that reads as message alone but matches base with Is.
// Domain sentinels use it so rendered errors do not repeat the base text.
func Kind(base error, message string) error {
	return &kindError{message: message, base: base}
}

type kindError struct {
	message string
	base    error
}

func (e *kindError) Error() string { return e.message }

func (e *kindError) Unwrap() error { return e.base }

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the message with the given arguments.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
