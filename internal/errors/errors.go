// Package errors defines the coded error taxonomy shared by every stage of the
// inactivity report pipeline.
package errors

import (
	"errors"
	"fmt"
)

// Standard error codes for the application.
const (
	CodeUnknown  = "UNKNOWN"
	CodeConfig   = "CONFIG"
	CodeFetch    = "FETCH"
	CodeParse    = "PARSE"
	CodeDelivery = "DELIVERY"
)

// ApplicationError is the interface that all our custom errors implement.
type ApplicationError interface {
	error
	Code() string
	Unwrap() error
}

// Error represents a basic application error.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the code of the first ApplicationError in err's chain,
// or CodeUnknown if it doesn't.
func Code(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return CodeUnknown
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return err != nil && Code(err) == code
}

// NewConfigError reports missing or invalid configuration detected at startup.
func NewConfigError(message string, cause error) error {
	return &Error{code: CodeConfig, message: message, err: cause}
}

// NewFetchError reports a failed member-list request: transport, status or decoding.
func NewFetchError(message string, cause error) error {
	return &Error{code: CodeFetch, message: message, err: cause}
}

// NewParseError reports a member record whose timestamp could not be read.
func NewParseError(message string, cause error) error {
	return &Error{code: CodeParse, message: message, err: cause}
}

// NewDeliveryError reports a notification that could not be delivered.
func NewDeliveryError(message string, cause error) error {
	return &Error{code: CodeDelivery, message: message, err: cause}
}
